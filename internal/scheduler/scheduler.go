package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"lopes-agenda/internal/config"
	"lopes-agenda/internal/database"
	"lopes-agenda/internal/email"
	"lopes-agenda/internal/push"
)

// Scheduler varre a agenda e dispara lembretes dos horários que estão para
// começar. Push e email são ambos opcionais; sem nenhum dos dois o scheduler
// nem é criado.
type Scheduler struct {
	cfg          *config.Config
	db           *database.DB
	pushService  *push.FirebaseService
	emailService *email.EmailService
	stopChan     chan struct{}
}

func NewScheduler(cfg *config.Config, db *database.DB) (*Scheduler, error) {
	var pushService *push.FirebaseService
	var err error

	if cfg.EnablePushLembrete {
		pushService, err = push.NewFirebaseService(cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Printf("⚠️ Push service not configured: %v", err)
			pushService = nil
		}
	}

	var emailService *email.EmailService
	if cfg.EnableEmailLembrete {
		emailService, err = email.NewEmailService(cfg)
		if err != nil {
			log.Printf("⚠️ Email service not configured: %v", err)
			emailService = nil
		} else {
			log.Println("✅ Email service initialized")
		}
	}

	if pushService == nil && emailService == nil {
		return nil, fmt.Errorf("nenhum canal de lembrete configurado")
	}

	return &Scheduler{
		cfg:          cfg,
		db:           db,
		pushService:  pushService,
		emailService: emailService,
		stopChan:     make(chan struct{}),
	}, nil
}

func (s *Scheduler) Start(ctx context.Context) {
	intervalo := time.Duration(s.cfg.LembreteIntervalo) * time.Second
	ticker := time.NewTicker(intervalo)
	defer ticker.Stop()

	log.Printf("⏰ Scheduler de lembretes iniciado (verifica a cada %v, antecedência %dmin)",
		intervalo, s.cfg.LembreteAntecedencia)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.verificarLembretes()
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stopChan)
}

func (s *Scheduler) verificarLembretes() {
	agendamentos, err := s.db.GetAgendamentosParaLembrete(s.cfg.LembreteAntecedencia)
	if err != nil {
		log.Printf("❌ Erro ao buscar lembretes: %v", err)
		return
	}

	if len(agendamentos) == 0 {
		return
	}

	var tokens []string
	if s.pushService != nil {
		tokens, err = s.db.GetAdminDeviceTokens()
		if err != nil {
			log.Printf("⚠️ Erro ao buscar device tokens: %v", err)
		}
	}

	for _, ag := range agendamentos {
		entregue := false

		if s.pushService != nil && len(tokens) > 0 {
			if enviados := s.pushService.SendLembreteMultiplos(tokens, ag.Nome, ag.Servico, ag.Horario); enviados > 0 {
				entregue = true
			}
		}

		if s.emailService != nil {
			if err := s.emailService.EnviarLembreteAgendamento(ag.Nome, ag.Servico, ag.Horario); err != nil {
				log.Printf("⚠️ Erro ao enviar lembrete por email: %v", err)
			} else {
				entregue = true
			}
		}

		if !entregue {
			// Nada saiu; tenta de novo na próxima varredura.
			continue
		}

		if err := s.db.MarkLembreteEnviado(ag.ID); err != nil {
			log.Printf("⚠️ Erro ao marcar lembrete %d: %v", ag.ID, err)
			continue
		}

		log.Printf("⏰ Lembrete processado: %s às %s", ag.Nome, ag.Horario)
	}
}
