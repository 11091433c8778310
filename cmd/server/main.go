// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/agrisense/agri-gateway/internal/config"
	"github.com/agrisense/agri-gateway/internal/domain"
	"github.com/agrisense/agri-gateway/internal/handlers"
	"github.com/agrisense/agri-gateway/internal/middleware"
	chatrepo "github.com/agrisense/agri-gateway/internal/repository/chat"
	"github.com/agrisense/agri-gateway/internal/services"
	"github.com/agrisense/agri-gateway/internal/services/gemini"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("agri_gateway")

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.Chat{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	chatRepository := chatrepo.NewChatRepository(db)

	// --- Gemini client ---
	geminiConfig := gemini.DefaultConfig()
	geminiConfig.APIKey = cfg.GeminiAPIKey
	geminiConfig.BaseURL = cfg.GeminiBaseURL
	if cfg.GeminiMaxRetries > 0 {
		geminiConfig.MaxAttempts = cfg.GeminiMaxRetries
	}
	if err := geminiConfig.Validate(); err != nil {
		if strings.ToLower(cfg.Environment) == "production" {
			log.Fatalf("FATAL: invalid Gemini configuration: %v", err)
		}
		logger.Warn("incomplete Gemini configuration", "error", err)
	}
	geminiClient := gemini.NewRetryClient(gemini.NewHTTPClient(geminiConfig), geminiConfig, logger)

	// --- Services ---
	chatService, err := services.NewChatService(chatRepository, geminiClient, cfg.TextModel, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}
	analysisService, err := services.NewAnalysisService(geminiClient, cfg.TextModel, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Analysis Service: %v", err)
	}
	recommendationService, err := services.NewRecommendationService(chatRepository, geminiClient, cfg.TextModel, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Recommendation Service: %v", err)
	}

	// --- Handlers ---
	chatHandler := handlers.NewChatHandler(chatService, logger)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, logger)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, logger)
	pageHandler := handlers.NewPageHandler(cfg.StaticDir)

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic(logger))
	r.Use(middleware.Logging(logger))

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")
	r.HandleFunc("/", pageHandler.ShowPlantIdentifierPage).Methods("GET")
	r.HandleFunc("/chat", pageHandler.ShowAssistantPage).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/analyze-plant", analysisHandler.AnalyzePlant).Methods("POST")
	api.HandleFunc("/chats", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chats", chatHandler.DeleteAllChats).Methods("DELETE")
	api.HandleFunc("/chats/{chatId}/messages", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/chats/{chatId}", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/recommendations", recommendationHandler.GetRecommendations).Methods("GET")

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	logger.Info("server starting", "port", cfg.ServerPort)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
