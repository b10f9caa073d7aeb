package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// Auth
	JWTSecret        string
	TokenDurationMin int // Validade do token de acesso (minutos)

	// Lembretes
	LembreteIntervalo    int  // Intervalo de varredura do scheduler (segundos)
	LembreteAntecedencia int  // Quanto tempo antes do horário avisar (minutos)
	EnablePushLembrete   bool // Habilitar lembrete por push
	EnableEmailLembrete  bool // Habilitar lembrete por email

	// Retenção
	RetencaoDias     int // Agendamentos passados mais velhos que isso são removidos
	LimpezaIntervalo int // Intervalo do worker de limpeza (horas)

	// Firebase
	FirebaseCredentialsPath string

	// SMTP Configuration
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string
	EmailAdmin    string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️  Info: Ficheiro .env não encontrado ou não pôde ser carregado. Lendo variáveis de ambiente do sistema.")
	}

	return &Config{
		// Server
		Port:        getEnvWithDefault("PORT", "5000"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Auth
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenDurationMin: getEnvInt("TOKEN_DURATION_MIN", 480),

		// Lembretes
		LembreteIntervalo:    getEnvInt("LEMBRETE_INTERVALO", 60),
		LembreteAntecedencia: getEnvInt("LEMBRETE_ANTECEDENCIA", 30),
		EnablePushLembrete:   getEnvBool("ENABLE_PUSH_LEMBRETE", false),
		EnableEmailLembrete:  getEnvBool("ENABLE_EMAIL_LEMBRETE", false),

		// Retenção
		RetencaoDias:     getEnvInt("RETENCAO_DIAS", 90),
		LimpezaIntervalo: getEnvInt("LIMPEZA_INTERVALO", 24),

		// Firebase
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),

		// SMTP
		SMTPHost:      getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnvInt("SMTP_PORT", 587),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  getEnvWithDefault("SMTP_FROM_NAME", "Agenda Lopes"),
		SMTPFromEmail: getEnvWithDefault("SMTP_FROM_EMAIL", "agenda@lopesclub.com.br"),
		EmailAdmin:    os.Getenv("EMAIL_ADMIN"),
	}, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

// Validate valida se todas as configurações obrigatórias estão presentes
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.EnablePushLembrete && c.FirebaseCredentialsPath == "" {
		log.Println("⚠️  Lembrete por push habilitado mas FIREBASE_CREDENTIALS_PATH não configurado")
	}

	if c.EnableEmailLembrete && (c.SMTPUsername == "" || c.SMTPPassword == "") {
		log.Println("⚠️  Lembrete por email habilitado mas credenciais SMTP não configuradas")
	}

	return nil
}
