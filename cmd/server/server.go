package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"snapquiz/config"
	"snapquiz/db"
	"snapquiz/handlers"
	"snapquiz/services"
	"snapquiz/services/extract"
	"snapquiz/services/quiz"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}

	topicRepo, err := db.NewPostgresTopicRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize topic database: %v", err)
	}
	defer topicRepo.Close()

	quizRepo, err := db.NewPostgresQuizRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize quiz database: %v", err)
	}
	defer quizRepo.Close()

	ctx := context.Background()

	extractService, err := extract.NewService(ctx, cfg.OCRLanguages)
	if err != nil {
		log.Fatalf("Failed to initialize extraction service: %v", err)
	}
	defer extractService.Close()

	identityService := services.NewIdentityService()
	taxonomyService := services.NewTaxonomyService(topicRepo)

	quizService, err := quiz.NewService(ctx, taxonomyService, quizRepo, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize quiz service: %v", err)
	}

	queryService := services.NewQuizQueryService(quizRepo)
	submissionService := services.NewSubmissionService(quizRepo)

	analyzeHandler := handlers.NewAnalyzeHandler(quizService, extractService, identityService)
	quizHandler := handlers.NewQuizHandler(queryService, submissionService, identityService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	analyzeHandler.RegisterRoutes(router)
	quizHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
