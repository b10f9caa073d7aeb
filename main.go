package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"lopes-agenda/internal/config"
	"lopes-agenda/internal/database"
	"lopes-agenda/internal/email"
	"lopes-agenda/internal/handlers"
	"lopes-agenda/internal/middleware"
	"lopes-agenda/internal/scheduler"
	"lopes-agenda/internal/signaling"
	"lopes-agenda/internal/workers"
	"lopes-agenda/pkg/token"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
)

var (
	db            *database.DB
	hub           *signaling.Hub
	workerManager *workers.WorkerManager
	startTime     time.Time
	serverLogs    []string
	logsMutex     sync.RWMutex
)

const maxLogs = 100

type logWriter struct{}

func (lw logWriter) Write(p []byte) (n int, err error) {
	logsMutex.Lock()
	defer logsMutex.Unlock()

	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}

	timestamp := time.Now().Format("15:04:05")
	logEntry := fmt.Sprintf("[%s] %s", timestamp, msg)

	serverLogs = append(serverLogs, logEntry)
	if len(serverLogs) > maxLogs {
		serverLogs = serverLogs[1:]
	}

	// Imprimir no console também
	fmt.Println(logEntry)

	return len(p), nil
}

func main() {
	log.SetFlags(0)
	log.SetOutput(logWriter{})

	startTime = time.Now()
	log.Println("🚀 Iniciando Servidor Agenda Lopes...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erro config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Erro config: %v", err)
	}

	db, err = database.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Erro DB: %v", err)
	}
	defer db.Close()

	tokens, err := token.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenDurationMin)*time.Minute)
	if err != nil {
		log.Fatalf("❌ Erro JWT: %v", err)
	}

	hub = signaling.NewHub()

	var emailService *email.EmailService
	emailService, err = email.NewEmailService(cfg)
	if err != nil {
		log.Printf("⚠️ Aviso: email desabilitado: %v", err)
		emailService = nil
	}

	sch, err := scheduler.NewScheduler(cfg, db)
	if err != nil {
		log.Printf("⚠️ Scheduler de lembretes desabilitado: %v", err)
	} else {
		go sch.Start(context.Background())
		log.Println("✅ Scheduler iniciado")
	}

	workerManager = workers.NewWorkerManager()
	workerManager.RegisterWorker(workers.NewLimpezaWorker(db, cfg.RetencaoDias, cfg.LimpezaIntervalo))
	workerManager.Start()
	defer workerManager.Stop()

	// Interface nil de verdade quando o serviço não subiu, senão o handler
	// acharia que tem email configurado.
	var confirmador handlers.Confirmador
	if emailService != nil {
		confirmador = emailService
	}

	handler := handlers.New(db, tokens, hub, confirmador)
	authMw := middleware.NewAuthMiddleware(tokens)

	router := mux.NewRouter()
	router.HandleFunc("/ws", hub.HandleWebSocket)

	router.HandleFunc("/auterota/login", handler.Login).Methods("POST")

	agenda := router.PathPrefix("/auterota/agendamentos").Subrouter()
	agenda.Use(authMw.RequireAdmin)
	agenda.HandleFunc("", handler.Listar).Methods("GET")
	agenda.HandleFunc("", handler.Criar).Methods("POST")
	agenda.HandleFunc("/{id}", handler.Atualizar).Methods("PUT")
	agenda.HandleFunc("/{id}", handler.Deletar).Methods("DELETE")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats", statsHandler).Methods("GET")
	api.HandleFunc("/health", healthCheckHandler).Methods("GET")
	api.HandleFunc("/logs", logsHandler).Methods("GET")

	log.Printf("✅ Servidor pronto na porta %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsMiddleware(router)))
}

// --- API HANDLERS ---

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept")

		// Responde preflight imediatamente
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func statsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	dbStatus := false
	if db != nil && db.GetConnection() != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := db.GetConnection().PingContext(ctx); err == nil {
			dbStatus = true
		}
	}

	response := map[string]interface{}{
		"paineis_conectados": hub.ClientesAtivos(),
		"workers":            workerManager.WorkerNames(),
		"uptime":             formatDuration(time.Since(startTime)),
		"db_status":          dbStatus,
		"timestamp":          time.Now().Unix(),
	}

	json.NewEncoder(w).Encode(response)
}

func logsHandler(w http.ResponseWriter, r *http.Request) {
	logsMutex.RLock()
	defer logsMutex.RUnlock()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(map[string]interface{}{
		"logs": serverLogs,
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "healthy"
	httpStatus := http.StatusOK

	if err := db.GetConnection().Ping(); err != nil {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
