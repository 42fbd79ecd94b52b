package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"budgetlens/internal/analysis"
	"budgetlens/internal/api"
	"budgetlens/internal/chat"
	"budgetlens/internal/config"
	"budgetlens/internal/llm"
	"budgetlens/internal/search"
	"budgetlens/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// A failed load is fatal: no dashboard can render without the tables.
	var loader store.Loader
	switch cfg.Store.Source {
	case "postgres":
		loader = store.NewPostgresLoader(cfg.Store.DSN, cfg.Years)
	default:
		loader = store.NewCSVLoader(cfg.Store.DataDir, cfg.Years)
	}
	st, err := loader.Load()
	if err != nil {
		slog.Error("failed to load budget tables", "source", cfg.Store.Source, "error", err)
		os.Exit(1)
	}

	// Initialize services
	completer := llm.New(llm.Config{
		APIKey:   cfg.APIKey(),
		Model:    cfg.Gemini.Model,
		Endpoint: cfg.Gemini.Endpoint,
		Timeout:  time.Duration(cfg.Gemini.TimeoutSecs) * time.Second,
	})
	analysisService := analysis.New(st, cfg.TopMinistries)
	searchService := search.New(st)
	bot := chat.NewBot(st, analysisService, searchService, completer)

	handler := api.NewHandler(st, analysisService, searchService, bot)

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// CORS for the dashboard frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5000", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handler.RegisterRoutes(r)

	slog.Info("starting budget backend",
		"port", cfg.Port,
		"first_year", cfg.Years.First,
		"last_year", cfg.Years.Last,
		"store_source", cfg.Store.Source)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
