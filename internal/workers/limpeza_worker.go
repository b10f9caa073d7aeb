package workers

import (
	"context"
	"log"
	"time"

	"lopes-agenda/internal/database"
)

// LimpezaWorker remove agendamentos passados além da janela de retenção.
// A agenda é só operacional; histórico antigo não tem uso e só engorda a lista.
type LimpezaWorker struct {
	db       *database.DB
	retencao int // dias
	interval time.Duration
}

func NewLimpezaWorker(db *database.DB, retencaoDias, intervaloHoras int) *LimpezaWorker {
	return &LimpezaWorker{
		db:       db,
		retencao: retencaoDias,
		interval: time.Duration(intervaloHoras) * time.Hour,
	}
}

func (w *LimpezaWorker) Name() string            { return "limpeza_agendamentos" }
func (w *LimpezaWorker) Interval() time.Duration { return w.interval }

func (w *LimpezaWorker) Run(ctx context.Context) error {
	removidos, err := w.db.PurgeAgendamentosAntigos(w.retencao)
	if err != nil {
		return err
	}

	if removidos > 0 {
		log.Printf("🧹 Limpeza: %d agendamento(s) com mais de %d dias removidos", removidos, w.retencao)
	}
	return nil
}
