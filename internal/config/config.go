package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	BackendURL string
	ChatbotURL string
	SessionDSN string
	LogFile    string
}

func Load() Config {
	// .env is for local development; real environments set variables
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, reading environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	backend := os.Getenv("BACKEND_URL")
	if backend == "" {
		backend = "http://localhost:8080"
	}
	chatbot := os.Getenv("CHATBOT_URL")
	if chatbot == "" {
		// The assistant runs as its own service, apart from the marketplace
		// backend.
		chatbot = "http://localhost:8000"
	}
	dsn := os.Getenv("SESSION_DSN")
	if dsn == "" {
		dsn = "campusmarket.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./campusmarket.log"
	}

	cfg := Config{Port: port, BackendURL: backend, ChatbotURL: chatbot, SessionDSN: dsn, LogFile: logFile}
	log.Printf("[config] PORT=%s BACKEND_URL=%s CHATBOT_URL=%s SESSION_DSN=%s LOG_FILE=%s", cfg.Port, cfg.BackendURL, cfg.ChatbotURL, cfg.SessionDSN, cfg.LogFile)
	return cfg
}
