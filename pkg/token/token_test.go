package token

import (
	"errors"
	"testing"
	"time"

	"lopes-agenda/pkg/adminaccess"
)

func newTestManager(t *testing.T, duration time.Duration) *Manager {
	t.Helper()

	m, err := NewManager("segredo-de-teste", duration)
	if err != nil {
		t.Fatalf("NewManager() err = %v", err)
	}
	return m
}

func TestNewManagerSemSecret(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Error("NewManager(\"\") deveria falhar")
	}
}

func TestGenerateValidate(t *testing.T) {
	m := newTestManager(t, time.Hour)

	signed, err := m.Generate("Lopes", "lopes@barbearia.com", true, 9)
	if err != nil {
		t.Fatalf("Generate() err = %v", err)
	}

	claims, err := m.Validate(signed)
	if err != nil {
		t.Fatalf("Validate() err = %v", err)
	}

	if claims["email"] != "lopes@barbearia.com" {
		t.Errorf("claims[email] = %v", claims["email"])
	}
	if claims["isAdmin"] != true {
		t.Errorf("claims[isAdmin] = %v, want true", claims["isAdmin"])
	}
	// json numbers viram float64 no mapa
	if claims["nivelAcesso"] != float64(9) {
		t.Errorf("claims[nivelAcesso] = %v, want 9", claims["nivelAcesso"])
	}
	if claims["jti"] == "" || claims["jti"] == nil {
		t.Error("claims[jti] vazio")
	}

	// As claims emitidas aqui têm que satisfazer o avaliador de admin.
	if !adminaccess.IsClaimsAdmin(claims) {
		t.Error("IsClaimsAdmin(claims de admin) = false")
	}
}

func TestValidateClaimsDeUsuarioComum(t *testing.T) {
	m := newTestManager(t, time.Hour)

	signed, err := m.Generate("Cliente", "cliente@exemplo.com", false, 1)
	if err != nil {
		t.Fatalf("Generate() err = %v", err)
	}

	claims, err := m.Validate(signed)
	if err != nil {
		t.Fatalf("Validate() err = %v", err)
	}

	if adminaccess.IsClaimsAdmin(claims) {
		t.Error("IsClaimsAdmin(claims de usuário comum) = true")
	}
}

func TestValidateTokenInvalido(t *testing.T) {
	m := newTestManager(t, time.Hour)

	for _, token := range []string{"", "lixo", "a.b.c"} {
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate(%q) err = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestValidateAssinaturaDeOutroSecret(t *testing.T) {
	m := newTestManager(t, time.Hour)

	outro, err := NewManager("outro-segredo", time.Hour)
	if err != nil {
		t.Fatalf("NewManager() err = %v", err)
	}

	signed, err := outro.Generate("Lopes", "lopes@barbearia.com", true, 9)
	if err != nil {
		t.Fatalf("Generate() err = %v", err)
	}

	if _, err := m.Validate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(token de outro secret) err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenExpirado(t *testing.T) {
	m := newTestManager(t, -time.Minute)

	signed, err := m.Generate("Lopes", "lopes@barbearia.com", true, 9)
	if err != nil {
		t.Fatalf("Generate() err = %v", err)
	}

	if _, err := m.Validate(signed); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Validate(token expirado) err = %v, want ErrTokenExpired", err)
	}
}
