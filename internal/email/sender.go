package email

import "fmt"

// EnviarConfirmacaoAgendamento manda a confirmação de agendamento novo para o
// email do administrador configurado.
func (s *EmailService) EnviarConfirmacaoAgendamento(nome, servico, data, horario string) error {
	if s.cfg.EmailAdmin == "" {
		return fmt.Errorf("EMAIL_ADMIN not configured")
	}

	subject := fmt.Sprintf("Novo agendamento: %s às %s", data, horario)
	return s.SendEmail(s.cfg.EmailAdmin, subject, templateConfirmacao(nome, servico, data, horario))
}

// EnviarLembreteAgendamento manda o lembrete de horário próximo.
func (s *EmailService) EnviarLembreteAgendamento(nome, servico, horario string) error {
	if s.cfg.EmailAdmin == "" {
		return fmt.Errorf("EMAIL_ADMIN not configured")
	}

	subject := fmt.Sprintf("Cliente às %s: %s", horario, nome)
	return s.SendEmail(s.cfg.EmailAdmin, subject, templateLembrete(nome, servico, horario))
}
