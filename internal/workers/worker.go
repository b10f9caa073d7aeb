// Package workers roda as tarefas de fundo da agenda em intervalos fixos.
package workers

import (
	"context"
	"log"
	"sync"
	"time"
)

// Worker é uma tarefa periódica registrada no manager.
type Worker interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context) error
}

type WorkerManager struct {
	workers  []Worker
	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

func NewWorkerManager() *WorkerManager {
	return &WorkerManager{
		stopChan: make(chan struct{}),
	}
}

func (wm *WorkerManager) RegisterWorker(w Worker) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	wm.workers = append(wm.workers, w)
	log.Printf("✅ Worker '%s' registrado (intervalo: %v)", w.Name(), w.Interval())
}

// Start dispara uma goroutine por worker registrado. Cada worker executa uma
// vez de imediato e depois a cada intervalo, até Stop.
func (wm *WorkerManager) Start() {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	log.Printf("🚀 Iniciando %d worker(s)...", len(wm.workers))

	for _, w := range wm.workers {
		wm.wg.Add(1)
		go wm.loop(w)
	}
}

func (wm *WorkerManager) loop(w Worker) {
	defer wm.wg.Done()

	ticker := time.NewTicker(w.Interval())
	defer ticker.Stop()

	wm.executar(w)

	for {
		select {
		case <-ticker.C:
			wm.executar(w)

		case <-wm.stopChan:
			log.Printf("🛑 Worker '%s' parado", w.Name())
			return
		}
	}
}

// executar roda uma iteração com timeout próprio; erro não derruba o loop.
func (wm *WorkerManager) executar(w Worker) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := w.Run(ctx); err != nil {
		log.Printf("❌ Erro no worker '%s': %v", w.Name(), err)
	}
}

// Stop encerra todos os loops e espera as iterações em andamento.
func (wm *WorkerManager) Stop() {
	close(wm.stopChan)
	wm.wg.Wait()
}

// WorkerNames lista os workers registrados, para o endpoint de stats.
func (wm *WorkerManager) WorkerNames() []string {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	names := make([]string, len(wm.workers))
	for i, w := range wm.workers {
		names[i] = w.Name()
	}
	return names
}
