package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_DURATION_MIN", "")
	t.Setenv("LEMBRETE_INTERVALO", "")
	t.Setenv("RETENCAO_DIAS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.TokenDurationMin != 480 {
		t.Errorf("TokenDurationMin = %d, want 480", cfg.TokenDurationMin)
	}
	if cfg.LembreteIntervalo != 60 {
		t.Errorf("LembreteIntervalo = %d, want 60", cfg.LembreteIntervalo)
	}
	if cfg.RetencaoDias != 90 {
		t.Errorf("RetencaoDias = %d, want 90", cfg.RetencaoDias)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_DURATION_MIN", "60")
	t.Setenv("ENABLE_EMAIL_LEMBRETE", "true")
	t.Setenv("LEMBRETE_ANTECEDENCIA", "nao-numerico") // inválido cai no default

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.TokenDurationMin != 60 {
		t.Errorf("TokenDurationMin = %d, want 60", cfg.TokenDurationMin)
	}
	if !cfg.EnableEmailLembrete {
		t.Error("EnableEmailLembrete = false, want true")
	}
	if cfg.LembreteAntecedencia != 30 {
		t.Errorf("LembreteAntecedencia = %d, want 30", cfg.LembreteAntecedencia)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost/agenda", JWTSecret: "s"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() err = %v", err)
	}

	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() sem DATABASE_URL deveria falhar")
	}

	cfg.DatabaseURL = "postgres://localhost/agenda"
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() sem JWT_SECRET deveria falhar")
	}
}
