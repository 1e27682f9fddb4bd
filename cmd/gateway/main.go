package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/questbank/questbank/internal/ai"
	api "github.com/questbank/questbank/internal/api/http"
	"github.com/questbank/questbank/internal/auth"
	"github.com/questbank/questbank/internal/config"
	"github.com/questbank/questbank/internal/db"
	"github.com/questbank/questbank/internal/eventlog"
	"github.com/questbank/questbank/internal/exam"
	"github.com/questbank/questbank/internal/grading"
	"github.com/questbank/questbank/internal/question"
	"github.com/questbank/questbank/internal/rbac"
	"github.com/questbank/questbank/internal/similarity"
	"github.com/questbank/questbank/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	bank := question.NewSQLStore(dbh, cfg.DBDriver)
	attempts := exam.NewSQLStore(dbh)
	events := eventlog.NewRepo(dbh)

	simCfg := similarity.Config{
		Threshold: cfg.SimilarityThreshold,
		MinLen:    cfg.SimilarityMinLen,
	}
	grader := grading.NewGrader()
	examSvc := exam.NewService(attempts, bank, grader, events)
	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AITimeout)

	blobs, err := storage.NewFSStore(cfg.ExportBasePath)
	if err != nil {
		log.Fatalf("export store: %v", err)
	}

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	gate := auth.AdminGate{User: cfg.AdminUser, PassHash: cfg.AdminPassHash}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "X-Export-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, gate))

	// Protected API (JWT → subject+role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("question:list")).
			Get("/questions", api.ListQuestionsHandler(bank, simCfg))
		pr.With(rbac.Require("question:view")).
			Get("/questions/{questionID}", api.GetQuestionHandler(bank))
		pr.With(rbac.Require("question:create")).
			Post("/questions", api.CreateQuestionHandler(bank, events))
		pr.With(rbac.Require("question:delete")).
			Delete("/questions/{questionID}", api.DeleteQuestionHandler(bank, events))

		pr.With(rbac.Require("question:similar")).
			Get("/questions/{questionID}/similar", api.SimilarQuestionsHandler(bank, simCfg))
		pr.With(rbac.Require("ai:explain")).
			Post("/questions/{questionID}/explain", api.ExplainQuestionHandler(bank, aiClient))

		// Exam flow
		pr.With(rbac.Require("attempt:create")).
			Post("/attempts", api.CreateAttemptHandler(examSvc, bank, simCfg))
		pr.With(rbac.Require("attempt:save")).
			Post("/attempts/{attemptID}/responses", api.SaveResponsesHandler(examSvc))
		pr.With(rbac.Require("attempt:submit")).
			Post("/attempts/{attemptID}/submit", api.SubmitAttemptHandler(examSvc))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts/{attemptID}", api.GetAttemptHandler(examSvc))

		pr.With(rbac.Require("export:run")).
			Get("/export", api.ExportHandler(bank, simCfg, blobs, events))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
