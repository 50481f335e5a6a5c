package main

import (
	"encoding/json"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/username/saathi/backend/src/ai"
	"github.com/username/saathi/backend/src/config"
	"github.com/username/saathi/backend/src/database"
	"github.com/username/saathi/backend/src/handlers"
	"github.com/username/saathi/backend/src/logger"
	"github.com/username/saathi/backend/src/sampledata"
	"github.com/username/saathi/backend/src/session"
	"github.com/username/saathi/backend/src/store"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-Session-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Session-ID, Content-Disposition")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// buildProvider selects the insight backend. When auto selection finds no
// credentials the dashboard still comes up, running on the mock provider,
// unless AI_REQUIRE_LIVE demands a live backend.
func buildProvider(cfg *config.AppConfig) ai.Provider {
	provider, err := ai.NewProvider(ai.Config{
		Provider:      cfg.AIProvider,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		ForceMock:     cfg.AIForceMock,
		RequireLive:   cfg.AIRequireLive,
		Timeout:       cfg.AITimeout,
		Logger:        logger.L,
	})
	if err != nil {
		if cfg.AIRequireLive {
			logger.L.Error("AI provider selection failed and AI_REQUIRE_LIVE is set", "error", err)
			os.Exit(1)
		}
		if errors.Is(err, ai.ErrNoCredentials) {
			logger.L.Warn("No AI credentials found, insights will use mock output")
		} else {
			logger.L.Error("AI provider selection failed, falling back to mock", "error", err)
		}
		return ai.NewMockProvider()
	}

	status := provider.AvailabilityStatus()
	logger.L.Info("AI provider ready", "provider", status.Provider, "live", !status.UsingMock)
	return provider
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Saathi backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	logger.L.Info("Ensuring sample data...", "dir", config.Cfg.SampleDataDir)
	if err := sampledata.EnsureSampleData(config.Cfg.SampleDataDir); err != nil {
		logger.L.Error("Failed to generate sample data", "error", err)
	}

	provider := buildProvider(config.Cfg)

	sessions := session.NewStore(2*time.Hour, 30*time.Minute)
	datasets := store.NewDatasetStore(database.DB)

	dashboard := handlers.NewDashboardHandler(sessions, datasets, provider, config.Cfg)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Saathi Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", dashboard.HandleUpload)
		r.Post("/sample/{scenario}", dashboard.HandleLoadSample)
		r.Delete("/data", dashboard.HandleClearData)

		r.Get("/transactions", dashboard.HandleGetTransactions)
		r.Post("/transactions/manual", dashboard.HandleAddTransaction)
		r.Get("/kpis", dashboard.HandleGetKPIs)
		r.Get("/breakdowns", dashboard.HandleGetBreakdowns)

		r.Post("/insights", dashboard.HandleGenerateInsights)
		r.Post("/transcribe", dashboard.HandleTranscribe)
		r.Get("/ai/status", dashboard.HandleAIStatus)

		r.Get("/export/csv", dashboard.HandleExportCSV)
		r.Get("/export/xlsx", dashboard.HandleExportXLSX)
		r.Get("/export/pdf", dashboard.HandleExportPDF)
		r.Get("/charts/top-products", dashboard.HandleTopProductsChart)
		r.Get("/charts/daily-revenue", dashboard.HandleDailyRevenueChart)

		r.Get("/datasets", dashboard.HandleListDatasets)
		r.Post("/datasets/{id}/load", dashboard.HandleLoadDataset)
		r.Delete("/datasets/{id}", dashboard.HandleDeleteDataset)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
		}
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
