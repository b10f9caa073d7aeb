package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"lopes-agenda/internal/database"
	"lopes-agenda/pkg/formatters"
	"lopes-agenda/pkg/horarios"
	"lopes-agenda/pkg/models"

	"github.com/gorilla/mux"
)

func toAPI(a database.Agendamento) models.Agendamento {
	return models.Agendamento{
		ID:       strconv.FormatInt(a.ID, 10),
		Nome:     a.Nome,
		Telefone: a.Telefone,
		Servico:  a.Servico,
		Data:     a.Data.Format("2006-01-02"),
		Horario:  a.Horario,
	}
}

// Listar devolve todos os agendamentos, ordenados por data e horário.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	lista, err := h.store.ListAgendamentos()
	if err != nil {
		log.Printf("❌ Erro ao listar agendamentos: %v", err)
		respondErro(w, http.StatusInternalServerError, "Erro ao buscar agendamentos")
		return
	}

	out := make([]models.Agendamento, 0, len(lista))
	for _, a := range lista {
		out = append(out, toAPI(a))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    out,
	})
}

// validar aplica no servidor as mesmas regras do formulário do app. A data
// chega em ISO (YYYY-MM-DD); a validação trabalha sobre a forma de exibição.
// excluirID > 0 tira o próprio registro do conjunto de ocupados (edição).
func (h *Handler) validar(ag models.Agendamento, excluirID int64) (int, error) {
	dataParsed, ok := formatters.ParseDate(ag.Data)
	if !ok {
		return http.StatusBadRequest, horarios.ErrDataFormato
	}

	if !models.ServicoValido(ag.Servico) {
		return http.StatusBadRequest, errors.New("Serviço inválido")
	}

	valido := false
	for _, slot := range horarios.GerarHorarios() {
		if slot == ag.Horario {
			valido = true
			break
		}
	}
	if !valido {
		return http.StatusBadRequest, errors.New("Horário inválido")
	}

	ocupados, err := h.store.HorariosOcupados(dataParsed, excluirID)
	if err != nil {
		log.Printf("❌ Erro ao consultar horários: %v", err)
		return http.StatusInternalServerError, errors.New("Erro ao verificar disponibilidade")
	}

	form := horarios.Formulario{
		Nome:     ag.Nome,
		Telefone: ag.Telefone,
		Servico:  ag.Servico,
		Data:     formatters.FromISO(ag.Data),
		Horario:  ag.Horario,
	}

	if err := horarios.ValidarFormulario(form, ocupados, false); err != nil {
		if errors.Is(err, horarios.ErrHorarioOcupado) {
			return http.StatusConflict, err
		}
		return http.StatusBadRequest, err
	}

	return http.StatusOK, nil
}

// Criar insere um agendamento novo. Conflito de horário responde 409.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var ag models.Agendamento
	if err := json.NewDecoder(r.Body).Decode(&ag); err != nil {
		respondErro(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	if status, err := h.validar(ag, 0); err != nil {
		respondErro(w, status, err.Error())
		return
	}

	dataParsed, _ := formatters.ParseDate(ag.Data)
	telefone := formatters.OnlyDigits(ag.Telefone)

	id, err := h.store.CreateAgendamento(ag.Nome, telefone, ag.Servico, dataParsed, ag.Horario)
	if err != nil {
		log.Printf("❌ Erro ao criar agendamento: %v", err)
		respondErro(w, http.StatusInternalServerError, "Erro ao criar agendamento")
		return
	}

	ag.ID = strconv.FormatInt(id, 10)
	ag.Telefone = telefone

	log.Printf("📅 Agendamento criado: %s %s (%s)", ag.Data, ag.Horario, ag.Nome)
	h.notificar("agendamento_criado", ag)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    ag,
	})
}

// Atualizar altera um agendamento existente. O conflito de horário ignora o
// próprio registro, senão mover um agendamento para o slot dele mesmo falharia.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondErro(w, http.StatusBadRequest, "ID do agendamento inválido")
		return
	}

	var ag models.Agendamento
	if err := json.NewDecoder(r.Body).Decode(&ag); err != nil {
		respondErro(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	if status, err := h.validar(ag, id); err != nil {
		respondErro(w, status, err.Error())
		return
	}

	dataParsed, _ := formatters.ParseDate(ag.Data)
	telefone := formatters.OnlyDigits(ag.Telefone)

	if err := h.store.UpdateAgendamento(id, ag.Nome, telefone, ag.Servico, dataParsed, ag.Horario); err != nil {
		if errors.Is(err, database.ErrNaoEncontrado) {
			respondErro(w, http.StatusNotFound, "Agendamento não encontrado")
			return
		}
		log.Printf("❌ Erro ao atualizar agendamento %d: %v", id, err)
		respondErro(w, http.StatusInternalServerError, "Erro ao atualizar agendamento")
		return
	}

	ag.ID = strconv.FormatInt(id, 10)
	ag.Telefone = telefone

	log.Printf("✏️  Agendamento atualizado: %d", id)
	h.notificar("agendamento_atualizado", ag)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    ag,
	})
}

// Deletar remove um agendamento.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondErro(w, http.StatusBadRequest, "ID do agendamento inválido")
		return
	}

	if err := h.store.DeleteAgendamento(id); err != nil {
		if errors.Is(err, database.ErrNaoEncontrado) {
			respondErro(w, http.StatusNotFound, "Agendamento não encontrado")
			return
		}
		log.Printf("❌ Erro ao deletar agendamento %d: %v", id, err)
		respondErro(w, http.StatusInternalServerError, "Erro ao deletar agendamento")
		return
	}

	log.Printf("🗑️  Agendamento removido: %d", id)
	h.notificar("agendamento_removido", models.Agendamento{ID: strconv.FormatInt(id, 10)})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// notificar publica o evento no hub e dispara o email de confirmação, quando
// configurados. Nenhum dos dois falha a requisição.
func (h *Handler) notificar(tipo string, ag models.Agendamento) {
	if h.hub != nil {
		h.hub.Broadcast(tipo, ag)
	}

	if h.email != nil && tipo == "agendamento_criado" {
		go func() {
			if err := h.email.EnviarConfirmacaoAgendamento(ag.Nome, ag.Servico, formatters.FromISO(ag.Data), ag.Horario); err != nil {
				log.Printf("⚠️ Erro ao enviar email de confirmação: %v", err)
			}
		}()
	}
}
