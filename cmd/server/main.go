package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-backend/cmd"
	"chat-backend/internal/api"
	"chat-backend/internal/chat"
	"chat-backend/internal/database"
	"chat-backend/internal/generator"
	"chat-backend/internal/history"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"./data/chat.db"`
	Generator   string `env:"GENERATOR" envDefault:"rules"` // "rules" or "ollama"
	OllamaURL   string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	AIModel     string `env:"AI_MODEL" envDefault:"gemma:2b"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"../frontend"`
}

func createResponder(cfg Config) generator.Responder {
	switch cfg.Generator {
	case "ollama":
		log.Printf("using ollama responder at %s with model %s", cfg.OllamaURL, cfg.AIModel)
		return generator.NewOllama(cfg.OllamaURL, cfg.AIModel)
	case "rules":
		log.Printf("using rule-based responder")
		return generator.NewRules()
	default:
		log.Fatalf("unknown generator %q, expected 'rules' or 'ollama'", cfg.Generator)
		return nil
	}
}

func main() {
	log.Println("Starting chat server...")

	cmd.LoadEnvFile()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	store := history.NewStore(db)
	chatHandler := api.NewChatService(
		chat.NewService(store, createResponder(cfg)),
		chat.NewDirectory(store),
	)

	// --- Chi Router Setup ---
	r := chi.NewRouter()

	// Middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)                    // Log requests
	r.Use(middleware.Recoverer)                 // Recover from panics
	r.Use(middleware.Timeout(60 * time.Second)) // Set request timeout

	r.Route("/api", func(r chi.Router) {
		chatHandler.AddRoutes(r)
	})

	// Serve the frontend if the static dir exists.
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("Chat server listening on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.Port, err)
	}

	log.Println("Server stopped.")
}
