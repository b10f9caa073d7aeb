// Package horarios mantém o catálogo fixo de horários da agenda (1h em 1h,
// das 9h às 20h) e as regras de disponibilidade e validação do formulário.
package horarios

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"lopes-agenda/pkg/formatters"
	"lopes-agenda/pkg/models"
)

// Mensagens exibidas ao usuário, uma por regra violada.
var (
	ErrNomeObrigatorio     = errors.New("Nome é obrigatório")
	ErrTelefoneObrigatorio = errors.New("Telefone é obrigatório")
	ErrDataObrigatoria     = errors.New("Data é obrigatória")
	ErrDataFormato         = errors.New("Data deve estar no formato DD/MM/AAAA")
	ErrDataPassada         = errors.New("Não é possível agendar para datas passadas")
	ErrHorarioPassado      = errors.New("Não é possível agendar para horários passados")
	ErrHorarioOcupado      = errors.New("Este horário já está ocupado. Escolha outro horário.")

	// ErrSemHorarios sinaliza explicitamente o estado "nenhum horário
	// disponível", para a UI não renderizar uma lista vazia ambígua.
	ErrSemHorarios = errors.New("Nenhum horário disponível para esta data")
)

var dataRegex = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// GerarHorarios devolve o catálogo fixo de 12 horários (09:00 até 20:00).
// Nunca é persistido; é regenerado sob demanda.
func GerarHorarios() []string {
	slots := make([]string, 0, 12)
	for hora := 9; hora <= 20; hora++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hora))
	}
	return slots
}

// HorariosOcupados extrai os horários já tomados entre os agendamentos da
// data informada (formato ISO YYYY-MM-DD). Quando se está editando um
// agendamento, o horário atual dele é retirado do conjunto — o próprio dono
// não deve ver seu horário como "ocupado por outra pessoa".
func HorariosOcupados(agendamentos []models.Agendamento, dataISO, horarioEdicao string) []string {
	var ocupados []string
	for _, ag := range agendamentos {
		if ag.Data != dataISO {
			continue
		}
		if horarioEdicao != "" && ag.Horario == horarioEdicao {
			continue
		}
		ocupados = append(ocupados, ag.Horario)
	}
	return ocupados
}

// HorariosDisponiveis calcula catálogo menos ocupados, preservando a ordem.
func HorariosDisponiveis(ocupados []string) []string {
	tomado := make(map[string]bool, len(ocupados))
	for _, h := range ocupados {
		tomado[h] = true
	}

	var disponiveis []string
	for _, h := range GerarHorarios() {
		if !tomado[h] {
			disponiveis = append(disponiveis, h)
		}
	}
	return disponiveis
}

// PrimeiroDisponivel implementa a reseleção automática do formulário: se o
// horário atual continua disponível, fica; senão cai para o primeiro livre.
// Com zero horários livres devolve ErrSemHorarios.
func PrimeiroDisponivel(disponiveis []string, atual string) (string, error) {
	if len(disponiveis) == 0 {
		return "", ErrSemHorarios
	}
	for _, h := range disponiveis {
		if h == atual {
			return atual, nil
		}
	}
	return disponiveis[0], nil
}

// Formulario é o estado submetido pelo formulário de agendamento.
// Data chega no formato de exibição DD/MM/YYYY.
type Formulario struct {
	Nome     string
	Telefone string
	Servico  string
	Data     string
	Horario  string
}

// ValidarFormulario aplica as regras pré-submissão, na ordem, parando na
// primeira violada. A checagem de conflito (última regra) só vale para
// agendamento novo: na edição o horário do próprio registro já foi retirado
// dos ocupados.
//
// Observação: a data só é validada contra o padrão DD/MM/AAAA e os limites
// 1-12 / 1-31; não há checagem de dias por mês nem bissexto (ver ParseDate).
func ValidarFormulario(f Formulario, ocupados []string, editando bool) error {
	if strings.TrimSpace(f.Nome) == "" {
		return ErrNomeObrigatorio
	}

	if strings.TrimSpace(f.Telefone) == "" {
		return ErrTelefoneObrigatorio
	}

	if strings.TrimSpace(f.Data) == "" {
		return ErrDataObrigatoria
	}

	if !dataRegex.MatchString(f.Data) {
		return ErrDataFormato
	}

	if formatters.IsDateInPast(f.Data) {
		return ErrDataPassada
	}

	if formatters.IsTimeInPast(f.Data, f.Horario) {
		return ErrHorarioPassado
	}

	if !editando {
		for _, h := range ocupados {
			if h == f.Horario {
				return ErrHorarioOcupado
			}
		}
	}

	return nil
}
