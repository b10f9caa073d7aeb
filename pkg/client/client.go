// Package client fala com a API da agenda em nome do painel administrativo.
// Falha de validação nunca chega aqui; falha de rede vira uma mensagem única
// de conectividade e falha reportada pelo servidor usa a mensagem dele quando
// existir. Nenhuma chamada é repetida automaticamente: retry é ação do usuário.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lopes-agenda/pkg/models"
)

// Rotas consumidas (contrato fixado pelo backend).
const (
	rotaLogin        = "/auterota/login"
	rotaAgendamentos = "/auterota/agendamentos"
)

var (
	ErrUsuarioAusente = errors.New("Usuário não encontrado na resposta do servidor")
	ErrTokenAusente   = errors.New("Token não encontrado na resposta do servidor")
)

// APIError é um erro com status HTTP. Status 0 significa que nenhuma resposta
// foi obtida (falha de transporte).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func errConexao() *APIError {
	return &APIError{Status: 0, Message: "Erro de conexão. Verifique sua internet."}
}

// Client acessa a API remota. TokenFunc fornece o token persistido
// localmente; quando devolve vazio a chamada segue sem autenticação e o
// servidor rejeita se for o caso.
type Client struct {
	BaseURL   string
	TokenFunc func() string

	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) request(ctx context.Context, method, endpoint string, body interface{}) (*models.ApiResponse, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.TokenFunc != nil {
		if token := c.TokenFunc(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errConexao()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeErro(resp)
	}

	var api models.ApiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return nil, errConexao()
	}

	return &api, nil
}

// decodeErro monta a mensagem de erro de uma resposta não-2xx: mensagem do
// servidor quando presente, senão texto específico para 404/5xx.
func decodeErro(resp *http.Response) *APIError {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	message := body.Message
	if message == "" {
		switch {
		case resp.StatusCode == http.StatusNotFound:
			message = "Servidor não encontrado. Verifique se o backend está rodando."
		case resp.StatusCode >= 500:
			message = "Erro interno do servidor. Tente novamente mais tarde."
		case resp.StatusCode >= 400:
			message = "Dados inválidos enviados."
		default:
			message = fmt.Sprintf("Erro HTTP %d", resp.StatusCode)
		}
	}

	return &APIError{Status: resp.StatusCode, Message: message}
}

// Login autentica e extrai usuário e token da resposta. O backend já devolveu
// esses campos sob nomes diferentes ao longo do tempo, então todas as formas
// conhecidas são tentadas antes de desistir, com erro distinto para cada
// ausência.
func (c *Client) Login(ctx context.Context, email, senha string) (*models.Usuario, string, error) {
	payload := map[string]string{"email": email, "password": senha}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+rotaLogin, bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", errConexao()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", decodeErro(resp)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, "", errConexao()
	}

	usuarioRaw := extrairUsuario(raw)
	if usuarioRaw == nil {
		return nil, "", ErrUsuarioAusente
	}

	token := extrairToken(raw)
	if token == "" {
		return nil, "", ErrTokenAusente
	}

	var usuario models.Usuario
	if err := json.Unmarshal(usuarioRaw, &usuario); err != nil {
		return nil, "", ErrUsuarioAusente
	}

	return &usuario, token, nil
}

func extrairUsuario(raw map[string]json.RawMessage) json.RawMessage {
	if v, ok := raw["usuario"]; ok && !vazio(v) {
		return v
	}
	if v, ok := raw["user"]; ok && !vazio(v) {
		return v
	}

	if data, ok := raw["data"]; ok && !vazio(data) {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(data, &nested); err == nil {
			if v, ok := nested["usuario"]; ok && !vazio(v) {
				return v
			}
			if v, ok := nested["user"]; ok && !vazio(v) {
				return v
			}
			// último recurso: o próprio data é o usuário
			return data
		}
	}

	return nil
}

func extrairToken(raw map[string]json.RawMessage) string {
	if s := rawString(raw["token"]); s != "" {
		return s
	}

	if data, ok := raw["data"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(data, &nested); err == nil {
			if s := rawString(nested["token"]); s != "" {
				return s
			}
		}
	}

	if s := rawString(raw["accessToken"]); s != "" {
		return s
	}
	return rawString(raw["access_token"])
}

func rawString(v json.RawMessage) string {
	if v == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

func vazio(v json.RawMessage) bool {
	s := string(bytes.TrimSpace(v))
	return s == "" || s == "null"
}

// ListarAgendamentos busca a lista completa; a agenda nunca é cacheada como
// fonte de verdade no dispositivo.
func (c *Client) ListarAgendamentos(ctx context.Context) ([]models.Agendamento, error) {
	resp, err := c.request(ctx, http.MethodGet, rotaAgendamentos, nil)
	if err != nil {
		return nil, err
	}

	var lista []models.Agendamento
	if resp.Data != nil {
		if err := json.Unmarshal(resp.Data, &lista); err != nil {
			return nil, fmt.Errorf("failed to decode agendamentos: %w", err)
		}
	}
	return lista, nil
}

func (c *Client) CriarAgendamento(ctx context.Context, ag models.Agendamento) error {
	_, err := c.request(ctx, http.MethodPost, rotaAgendamentos, ag)
	return err
}

func (c *Client) AtualizarAgendamento(ctx context.Context, id string, ag models.Agendamento) error {
	if id == "" {
		return errors.New("ID do agendamento não encontrado")
	}
	_, err := c.request(ctx, http.MethodPut, rotaAgendamentos+"/"+id, ag)
	return err
}

func (c *Client) DeletarAgendamento(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("ID do agendamento não encontrado")
	}
	_, err := c.request(ctx, http.MethodDelete, rotaAgendamentos+"/"+id, nil)
	return err
}
