package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNaoEncontrado indica que o agendamento não existe (mapeado para 404).
var ErrNaoEncontrado = errors.New("agendamento não encontrado")

type Agendamento struct {
	ID              int64
	Nome            string
	Telefone        string
	Servico         string
	Data            time.Time // só a parte de calendário é relevante
	Horario         string    // HH:MM
	LembreteEnviado bool
	CriadoEm        time.Time
	AtualizadoEm    time.Time
}

type Usuario struct {
	ID          int64
	Nome        string
	Email       string
	SenhaHash   string
	IsAdmin     bool
	NivelAcesso int
	DeviceToken sql.NullString
	Ativo       bool
}

func (db *DB) ListAgendamentos() ([]Agendamento, error) {
	query := `
		SELECT id, nome, telefone, servico, data, horario, lembrete_enviado, criado_em, atualizado_em
		FROM agendamentos
		ORDER BY data ASC, horario ASC
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query agendamentos: %w", err)
	}
	defer rows.Close()

	var agendamentos []Agendamento
	for rows.Next() {
		var a Agendamento
		err := rows.Scan(
			&a.ID, &a.Nome, &a.Telefone, &a.Servico, &a.Data, &a.Horario,
			&a.LembreteEnviado, &a.CriadoEm, &a.AtualizadoEm,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		agendamentos = append(agendamentos, a)
	}

	return agendamentos, rows.Err()
}

func (db *DB) GetAgendamento(id int64) (*Agendamento, error) {
	query := `
		SELECT id, nome, telefone, servico, data, horario, lembrete_enviado, criado_em, atualizado_em
		FROM agendamentos
		WHERE id = $1
	`

	var a Agendamento
	err := db.conn.QueryRow(query, id).Scan(
		&a.ID, &a.Nome, &a.Telefone, &a.Servico, &a.Data, &a.Horario,
		&a.LembreteEnviado, &a.CriadoEm, &a.AtualizadoEm,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNaoEncontrado
		}
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return &a, nil
}

func (db *DB) CreateAgendamento(nome, telefone, servico string, data time.Time, horario string) (int64, error) {
	query := `
		INSERT INTO agendamentos (nome, telefone, servico, data, horario, lembrete_enviado, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, false, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id
	`

	var id int64
	err := db.conn.QueryRow(query, nome, telefone, servico, data, horario).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert agendamento: %w", err)
	}

	return id, nil
}

func (db *DB) UpdateAgendamento(id int64, nome, telefone, servico string, data time.Time, horario string) error {
	query := `
		UPDATE agendamentos
		SET nome = $1, telefone = $2, servico = $3, data = $4, horario = $5, atualizado_em = CURRENT_TIMESTAMP
		WHERE id = $6
	`

	result, err := db.conn.Exec(query, nome, telefone, servico, data, horario, id)
	if err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNaoEncontrado
	}

	return nil
}

func (db *DB) DeleteAgendamento(id int64) error {
	result, err := db.conn.Exec(`DELETE FROM agendamentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNaoEncontrado
	}

	return nil
}

// HorariosOcupados lista os horários já tomados numa data. excluirID > 0
// retira o próprio agendamento da conta, para a edição não conflitar consigo
// mesma.
func (db *DB) HorariosOcupados(data time.Time, excluirID int64) ([]string, error) {
	query := `
		SELECT horario FROM agendamentos
		WHERE data = $1 AND ($2 <= 0 OR id <> $2)
		ORDER BY horario ASC
	`

	rows, err := db.conn.Query(query, data, excluirID)
	if err != nil {
		return nil, fmt.Errorf("failed to query horarios: %w", err)
	}
	defer rows.Close()

	var horarios []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		horarios = append(horarios, h)
	}

	return horarios, rows.Err()
}

func (db *DB) GetUsuarioByEmail(email string) (*Usuario, error) {
	query := `
		SELECT id, nome, email, senha_hash, is_admin, nivel_acesso, device_token, ativo
		FROM usuarios
		WHERE LOWER(email) = LOWER($1)
	`

	var u Usuario
	err := db.conn.QueryRow(query, email).Scan(
		&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.IsAdmin, &u.NivelAcesso,
		&u.DeviceToken, &u.Ativo,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("usuário não encontrado: %s", email)
		}
		return nil, fmt.Errorf("failed to query usuario: %w", err)
	}

	return &u, nil
}

// GetAgendamentosParaLembrete busca agendamentos de hoje cujo horário cai
// dentro da janela de antecedência e que ainda não foram lembrados.
func (db *DB) GetAgendamentosParaLembrete(antecedenciaMin int) ([]Agendamento, error) {
	query := `
		SELECT id, nome, telefone, servico, data, horario, lembrete_enviado, criado_em, atualizado_em
		FROM agendamentos
		WHERE lembrete_enviado = false
		  AND data = CURRENT_DATE
		  AND (data + horario::time) >= NOW()
		  AND (data + horario::time) <= NOW() + ($1 * INTERVAL '1 minute')
		ORDER BY horario ASC
	`

	rows, err := db.conn.Query(query, antecedenciaMin)
	if err != nil {
		return nil, fmt.Errorf("failed to query lembretes: %w", err)
	}
	defer rows.Close()

	var agendamentos []Agendamento
	for rows.Next() {
		var a Agendamento
		err := rows.Scan(
			&a.ID, &a.Nome, &a.Telefone, &a.Servico, &a.Data, &a.Horario,
			&a.LembreteEnviado, &a.CriadoEm, &a.AtualizadoEm,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		agendamentos = append(agendamentos, a)
	}

	return agendamentos, rows.Err()
}

func (db *DB) MarkLembreteEnviado(id int64) error {
	_, err := db.conn.Exec(`
		UPDATE agendamentos
		SET lembrete_enviado = true, atualizado_em = CURRENT_TIMESTAMP
		WHERE id = $1
	`, id)

	if err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}
	return nil
}

// PurgeAgendamentosAntigos remove agendamentos passados além da retenção.
func (db *DB) PurgeAgendamentosAntigos(retencaoDias int) (int64, error) {
	result, err := db.conn.Exec(`
		DELETE FROM agendamentos
		WHERE data < CURRENT_DATE - ($1 * INTERVAL '1 day')
	`, retencaoDias)

	if err != nil {
		return 0, fmt.Errorf("failed to purge: %w", err)
	}

	return result.RowsAffected()
}

// GetAdminDeviceTokens devolve os device tokens dos administradores ativos,
// destino dos lembretes por push.
func (db *DB) GetAdminDeviceTokens() ([]string, error) {
	query := `
		SELECT device_token FROM usuarios
		WHERE is_admin = true AND ativo = true
		  AND device_token IS NOT NULL AND device_token <> ''
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		tokens = append(tokens, t)
	}

	return tokens, rows.Err()
}
