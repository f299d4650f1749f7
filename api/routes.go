package api

import (
	"github.com/gorilla/mux"

	"github.com/prepmate/mockview/internal/config"
	"github.com/prepmate/mockview/internal/db"
	"github.com/prepmate/mockview/internal/interview"
	"github.com/prepmate/mockview/internal/repository/sqlite"
	"github.com/prepmate/mockview/internal/scoring"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and services
	repo := sqlite.New(database, nil)
	scorer := scoring.NewClient(cfg.Scorer, nil)
	svc := interview.NewService(repo, repo, repo, scorer)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	questionsHandler := NewQuestionsHandler(repo)
	answersHandler := NewAnswersHandler(svc)

	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	apiRouter := r.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	// the browser client hit login under several paths; keep all of them
	apiRouter.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	apiRouter.HandleFunc("/login", authHandler.Login).Methods("POST")
	apiRouter.HandleFunc("/users/signin", authHandler.Login).Methods("POST")

	apiRouter.HandleFunc("/roles", questionsHandler.ListRoles).Methods("GET")
	apiRouter.HandleFunc("/questions", questionsHandler.ListQuestions).Methods("GET")

	apiRouter.HandleFunc("/answers", answersHandler.SubmitAnswer).Methods("POST")
	apiRouter.HandleFunc("/history/{email}", answersHandler.History).Methods("GET")
	apiRouter.HandleFunc("/dashboard/{email}", answersHandler.Dashboard).Methods("GET")

	return r
}
