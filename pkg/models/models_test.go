package models

import (
	"encoding/json"
	"testing"
)

func TestAgendamentoUnmarshalVariantes(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantID      string
		wantHorario string
	}{
		{"campos canonicos", `{"id":"7","nome":"João","horario":"09:00"}`, "7", "09:00"},
		{"id numerico", `{"id":7,"horario":"09:00"}`, "7", "09:00"},
		{"id como _id", `{"_id":"abc123","horario":"10:00"}`, "abc123", "10:00"},
		{"id como agendamento_id", `{"agendamento_id":42,"hora":"11:00"}`, "42", "11:00"},
		{"id como codigo", `{"codigo":"X9","hora":"12:00"}`, "X9", "12:00"},
		{"horario como hora", `{"id":"1","hora":"14:00"}`, "1", "14:00"},
		{"horario tem precedencia sobre hora", `{"id":"1","horario":"14:00","hora":"15:00"}`, "1", "14:00"},
		{"sem id", `{"nome":"João"}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ag Agendamento
			if err := json.Unmarshal([]byte(tt.body), &ag); err != nil {
				t.Fatalf("Unmarshal() err = %v", err)
			}
			if ag.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", ag.ID, tt.wantID)
			}
			if ag.Horario != tt.wantHorario {
				t.Errorf("Horario = %q, want %q", ag.Horario, tt.wantHorario)
			}
		})
	}
}

func TestUsuarioPreservaExtra(t *testing.T) {
	body := `{"id":"1","nome":"Lopes","email":"lopes@barbearia.com","nivelAcesso":7,"cargo":"dono"}`

	var u Usuario
	if err := json.Unmarshal([]byte(body), &u); err != nil {
		t.Fatalf("Unmarshal() err = %v", err)
	}

	if u.Nome != "Lopes" || u.Email != "lopes@barbearia.com" {
		t.Errorf("campos tipados = %q / %q", u.Nome, u.Email)
	}
	if u.Extra["nivelAcesso"] != float64(7) {
		t.Errorf("Extra[nivelAcesso] = %v, want 7", u.Extra["nivelAcesso"])
	}
	if u.Extra["cargo"] != "dono" {
		t.Errorf("Extra[cargo] = %v, want dono", u.Extra["cargo"])
	}

	// Roundtrip mantém os campos extras e o isAdmin estampado.
	u.IsAdmin = true
	out, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal() err = %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("Unmarshal(roundtrip) err = %v", err)
	}
	if raw["cargo"] != "dono" {
		t.Errorf("roundtrip perdeu cargo: %v", raw)
	}
	if raw["isAdmin"] != true {
		t.Errorf("roundtrip isAdmin = %v, want true", raw["isAdmin"])
	}
}

func TestServicoValido(t *testing.T) {
	tests := []struct {
		servico string
		want    bool
	}{
		{"corte", true},
		{"barba", true},
		{"CORTE", true},
		{"  barba  ", true},
		{"manicure", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ServicoValido(tt.servico); got != tt.want {
			t.Errorf("ServicoValido(%q) = %v, want %v", tt.servico, got, tt.want)
		}
	}
}
