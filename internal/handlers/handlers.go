// Package handlers expõe as rotas da API da agenda (/auterota/...).
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"lopes-agenda/internal/database"
	"lopes-agenda/pkg/token"
)

// AgendaStore é o que os handlers precisam do banco. *database.DB implementa.
type AgendaStore interface {
	ListAgendamentos() ([]database.Agendamento, error)
	GetAgendamento(id int64) (*database.Agendamento, error)
	CreateAgendamento(nome, telefone, servico string, data time.Time, horario string) (int64, error)
	UpdateAgendamento(id int64, nome, telefone, servico string, data time.Time, horario string) error
	DeleteAgendamento(id int64) error
	HorariosOcupados(data time.Time, excluirID int64) ([]string, error)
	GetUsuarioByEmail(email string) (*database.Usuario, error)
}

// Broadcaster publica eventos de agenda para os painéis conectados.
type Broadcaster interface {
	Broadcast(tipo string, data interface{})
}

// Confirmador envia a confirmação de agendamento por email.
type Confirmador interface {
	EnviarConfirmacaoAgendamento(nome, servico, data, horario string) error
}

type Handler struct {
	store  AgendaStore
	tokens *token.Manager
	hub    Broadcaster // opcional
	email  Confirmador // opcional
}

func New(store AgendaStore, tokens *token.Manager, hub Broadcaster, email Confirmador) *Handler {
	return &Handler{
		store:  store,
		tokens: tokens,
		hub:    hub,
		email:  email,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondErro escreve o envelope de erro padrão. O campo message é usado
// verbatim pelo app, então o texto é voltado ao usuário final.
func respondErro(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
