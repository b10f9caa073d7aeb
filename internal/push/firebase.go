// Package push entrega lembretes de agendamento nos dispositivos dos
// administradores via FCM.
package push

import (
	"context"
	"fmt"
	"log"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type FirebaseService struct {
	client *messaging.Client
	ctx    context.Context
}

func NewFirebaseService(credentialsPath string) (*FirebaseService, error) {
	ctx := context.Background()

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}

	log.Println("✅ Push de lembretes inicializado")

	return &FirebaseService{client: client, ctx: ctx}, nil
}

// SendLembreteAgendamento avisa o dispositivo do administrador que um cliente
// chega em breve.
func (s *FirebaseService) SendLembreteAgendamento(deviceToken, nomeCliente, servico, horario string) error {
	if deviceToken == "" {
		return fmt.Errorf("device token is empty")
	}

	message := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: "💈 Próximo agendamento",
			Body:  fmt.Sprintf("%s às %s — %s", nomeCliente, horario, servico),
		},
		Data: map[string]string{
			"type":      "lembrete_agendamento",
			"horario":   horario,
			"servico":   servico,
			"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				Priority:     messaging.PriorityHigh,
				ChannelID:    "agenda_lembretes",
				DefaultSound: true,
			},
		},
	}

	if _, err := s.client.Send(s.ctx, message); err != nil {
		return fmt.Errorf("error sending reminder push: %w", err)
	}

	log.Printf("📲 Lembrete enviado: %s às %s", nomeCliente, horario)
	return nil
}

// SendLembreteMultiplos envia o lembrete para cada device token e devolve
// quantos envios deram certo. Tokens que o FCM reporta como não registrados
// (app desinstalado, token trocado) são logados à parte para facilitar a
// limpeza manual na tabela de usuários.
func (s *FirebaseService) SendLembreteMultiplos(tokens []string, nomeCliente, servico, horario string) int {
	enviados := 0
	for _, token := range tokens {
		err := s.SendLembreteAgendamento(token, nomeCliente, servico, horario)
		if err == nil {
			enviados++
			continue
		}

		if isTokenInvalido(err) {
			log.Printf("🗑️  Device token não registrado, remover do cadastro: %v", err)
		} else {
			log.Printf("❌ Falha ao enviar lembrete push: %v", err)
		}
	}
	return enviados
}

func isTokenInvalido(err error) bool {
	return messaging.IsRegistrationTokenNotRegistered(err) || messaging.IsSenderIDMismatch(err)
}
