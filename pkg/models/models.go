package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Agendamento é o formato trocado com a API. O backend já expôs o id sob
// vários nomes (id, _id, agendamento_id, id_agendamento, codigo) e o horário
// também já chegou como "hora", então o unmarshal tolera todos.
type Agendamento struct {
	ID       string `json:"id,omitempty"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Servico  string `json:"servico"`
	Data     string `json:"data"`    // YYYY-MM-DD na API, DD/MM/YYYY na exibição
	Horario  string `json:"horario"` // HH:MM
}

func (a *Agendamento) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.ID = firstString(raw, "id", "_id", "agendamento_id", "id_agendamento", "codigo")
	a.Nome = firstString(raw, "nome")
	a.Telefone = firstString(raw, "telefone")
	a.Servico = firstString(raw, "servico")
	a.Data = firstString(raw, "data")
	a.Horario = firstString(raw, "horario", "hora")

	return nil
}

// firstString devolve o primeiro campo presente, aceitando string ou número.
func firstString(raw map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}

		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if s != "" {
				return s
			}
			continue
		}

		var n json.Number
		if err := json.Unmarshal(v, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

// Usuario é a visão tipada do usuário autenticado. Extra guarda o objeto
// bruto como veio do servidor: a avaliação de admin trabalha em cima dele,
// não do esquema fixo.
type Usuario struct {
	ID      string
	Nome    string
	Email   string
	IsAdmin bool

	Extra map[string]interface{}
}

func (u *Usuario) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.Extra = raw
	u.ID = stringField(raw, "id", "_id")
	u.Nome = stringField(raw, "nome", "name")
	u.Email = stringField(raw, "email")

	if b, ok := raw["isAdmin"].(bool); ok {
		u.IsAdmin = b
	}

	return nil
}

func (u Usuario) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(u.Extra)+1)
	for k, v := range u.Extra {
		out[k] = v
	}
	if u.ID != "" {
		out["id"] = u.ID
	}
	if u.Nome != "" {
		out["nome"] = u.Nome
	}
	if u.Email != "" {
		out["email"] = u.Email
	}
	out["isAdmin"] = u.IsAdmin
	return json.Marshal(out)
}

func stringField(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// ApiResponse é o envelope padrão das respostas da API.
type ApiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ServicosValidos são as categorias oferecidas no formulário de agendamento.
var ServicosValidos = []string{"corte", "barba"}

// ServicoValido aceita qualquer categoria conhecida, sem diferenciar caixa.
func ServicoValido(servico string) bool {
	s := strings.ToLower(strings.TrimSpace(servico))
	for _, v := range ServicosValidos {
		if s == v {
			return true
		}
	}
	return false
}
