package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lopes-agenda/pkg/models"
)

func agendamentoTeste() models.Agendamento {
	return models.Agendamento{
		Nome:     "João",
		Telefone: "(11) 99999-8888",
		Servico:  "corte",
		Data:     "2025-06-10",
		Horario:  "10:00",
	}
}

func servidorFixo(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginExtracaoVariantes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNome  string
		wantToken string
	}{
		{
			name:      "usuario e token no topo",
			body:      `{"usuario":{"nome":"Lopes"},"token":"t1"}`,
			wantNome:  "Lopes",
			wantToken: "t1",
		},
		{
			name:      "user e accessToken",
			body:      `{"user":{"nome":"Lopes"},"accessToken":"t2"}`,
			wantNome:  "Lopes",
			wantToken: "t2",
		},
		{
			name:      "aninhado em data",
			body:      `{"data":{"usuario":{"nome":"Lopes"},"token":"t3"}}`,
			wantNome:  "Lopes",
			wantToken: "t3",
		},
		{
			name:      "user dentro de data com access_token fora",
			body:      `{"data":{"user":{"nome":"Lopes"}},"access_token":"t4"}`,
			wantNome:  "Lopes",
			wantToken: "t4",
		},
		{
			name:      "o proprio data e o usuario",
			body:      `{"data":{"nome":"Lopes","email":"l@b.com"},"token":"t5"}`,
			wantNome:  "Lopes",
			wantToken: "t5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := servidorFixo(t, http.StatusOK, tt.body)
			c := New(srv.URL)

			usuario, token, err := c.Login(context.Background(), "l@b.com", "123")
			if err != nil {
				t.Fatalf("Login() err = %v", err)
			}
			if usuario.Nome != tt.wantNome {
				t.Errorf("usuario.Nome = %q, want %q", usuario.Nome, tt.wantNome)
			}
			if token != tt.wantToken {
				t.Errorf("token = %q, want %q", token, tt.wantToken)
			}
		})
	}
}

func TestLoginCamposAusentes(t *testing.T) {
	t.Run("sem usuario", func(t *testing.T) {
		srv := servidorFixo(t, http.StatusOK, `{"token":"t1"}`)
		c := New(srv.URL)

		_, _, err := c.Login(context.Background(), "l@b.com", "123")
		if !errors.Is(err, ErrUsuarioAusente) {
			t.Errorf("Login() err = %v, want ErrUsuarioAusente", err)
		}
	})

	t.Run("sem token", func(t *testing.T) {
		srv := servidorFixo(t, http.StatusOK, `{"usuario":{"nome":"Lopes"}}`)
		c := New(srv.URL)

		_, _, err := c.Login(context.Background(), "l@b.com", "123")
		if !errors.Is(err, ErrTokenAusente) {
			t.Errorf("Login() err = %v, want ErrTokenAusente", err)
		}
	})

	t.Run("usuario null nao conta como presente", func(t *testing.T) {
		srv := servidorFixo(t, http.StatusOK, `{"usuario":null,"token":"t1"}`)
		c := New(srv.URL)

		_, _, err := c.Login(context.Background(), "l@b.com", "123")
		if !errors.Is(err, ErrUsuarioAusente) {
			t.Errorf("Login() err = %v, want ErrUsuarioAusente", err)
		}
	})
}

func TestTaxonomiaDeErros(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "mensagem do servidor tem precedencia",
			status:     http.StatusInternalServerError,
			body:       `{"success":false,"message":"quebrou aqui"}`,
			wantStatus: 500,
			wantMsg:    "quebrou aqui",
		},
		{
			name:       "404 sem mensagem",
			status:     http.StatusNotFound,
			body:       `{}`,
			wantStatus: 404,
			wantMsg:    "Servidor não encontrado. Verifique se o backend está rodando.",
		},
		{
			name:       "500 sem mensagem",
			status:     http.StatusInternalServerError,
			body:       ``,
			wantStatus: 500,
			wantMsg:    "Erro interno do servidor. Tente novamente mais tarde.",
		},
		{
			name:       "400 sem mensagem",
			status:     http.StatusBadRequest,
			body:       `{}`,
			wantStatus: 400,
			wantMsg:    "Dados inválidos enviados.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := servidorFixo(t, tt.status, tt.body)
			c := New(srv.URL)

			_, err := c.ListarAgendamentos(context.Background())

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestErroDeConexao(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // derruba antes da chamada

	c := New(url)
	_, err := c.ListarAgendamentos(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("Status = %d, want 0", apiErr.Status)
	}
	if apiErr.Message != "Erro de conexão. Verifique sua internet." {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestBearerAnexado(t *testing.T) {
	var recebido string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recebido = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	c.TokenFunc = func() string { return "meu-token" }

	if _, err := c.ListarAgendamentos(context.Background()); err != nil {
		t.Fatalf("ListarAgendamentos() err = %v", err)
	}
	if recebido != "Bearer meu-token" {
		t.Errorf("Authorization = %q, want Bearer meu-token", recebido)
	}

	// Sem token, nenhum header é enviado.
	c.TokenFunc = func() string { return "" }
	if _, err := c.ListarAgendamentos(context.Background()); err != nil {
		t.Fatalf("ListarAgendamentos() err = %v", err)
	}
	if recebido != "" {
		t.Errorf("Authorization = %q, want vazio", recebido)
	}
}

func TestListarAgendamentosDecodificacao(t *testing.T) {
	body := `{"success":true,"data":[
		{"id":1,"nome":"João","data":"2025-06-10","horario":"09:00"},
		{"_id":"abc","nome":"Pedro","data":"2025-06-10","hora":"14:00"}
	]}`
	srv := servidorFixo(t, http.StatusOK, body)

	c := New(srv.URL)
	lista, err := c.ListarAgendamentos(context.Background())
	if err != nil {
		t.Fatalf("ListarAgendamentos() err = %v", err)
	}

	if len(lista) != 2 {
		t.Fatalf("len(lista) = %d, want 2", len(lista))
	}
	if lista[0].ID != "1" || lista[0].Horario != "09:00" {
		t.Errorf("lista[0] = %+v", lista[0])
	}
	if lista[1].ID != "abc" || lista[1].Horario != "14:00" {
		t.Errorf("lista[1] = %+v", lista[1])
	}
}

func TestAtualizarEDeletarExigemID(t *testing.T) {
	c := New("http://irrelevante")

	if err := c.AtualizarAgendamento(context.Background(), "", agendamentoTeste()); err == nil {
		t.Error("AtualizarAgendamento(\"\") deveria falhar")
	}
	if err := c.DeletarAgendamento(context.Background(), ""); err == nil {
		t.Error("DeletarAgendamento(\"\") deveria falhar")
	}
}

func TestCriarAgendamentoEnviaCorpo(t *testing.T) {
	var corpo map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&corpo)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	err := c.CriarAgendamento(context.Background(), agendamentoTeste())
	if err != nil {
		t.Fatalf("CriarAgendamento() err = %v", err)
	}
	if corpo["nome"] != "João" || corpo["horario"] != "10:00" {
		t.Errorf("corpo enviado = %v", corpo)
	}
}
