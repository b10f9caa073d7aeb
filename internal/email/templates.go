package email

import "fmt"

// templateConfirmacao é o email enviado ao administrador quando um
// agendamento novo entra na agenda.
func templateConfirmacao(nome, servico, data, horario string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2 style="color: #007AFF;">💈 Novo agendamento</h2>
	<table style="border-collapse: collapse;">
		<tr><td style="padding: 4px 12px 4px 0;"><b>Cliente</b></td><td>%s</td></tr>
		<tr><td style="padding: 4px 12px 4px 0;"><b>Serviço</b></td><td>%s</td></tr>
		<tr><td style="padding: 4px 12px 4px 0;"><b>Data</b></td><td>%s</td></tr>
		<tr><td style="padding: 4px 12px 4px 0;"><b>Horário</b></td><td>%s</td></tr>
	</table>
	<p style="color: #888; font-size: 12px;">Agenda Lopes — mensagem automática, não responda.</p>
</body>
</html>`, nome, servico, data, horario)
}

// templateLembrete é o email de lembrete enviado pouco antes do horário.
func templateLembrete(nome, servico, horario string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2 style="color: #34C759;">⏰ Cliente chegando</h2>
	<p><b>%s</b> tem horário às <b>%s</b> (%s).</p>
	<p style="color: #888; font-size: 12px;">Agenda Lopes — mensagem automática, não responda.</p>
</body>
</html>`, nome, horario, servico)
}
