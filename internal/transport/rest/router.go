package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/seokkiyoon07-sys/omrsheet/internal/repository"
	"github.com/seokkiyoon07-sys/omrsheet/internal/service"
	"github.com/seokkiyoon07-sys/omrsheet/internal/transport/rest/handler"
	"github.com/seokkiyoon07-sys/omrsheet/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	SessionService   *service.SessionService
	LayoutService    *service.LayoutService
	GradeService     *service.GradeService
	AnswerKeyService *service.AnswerKeyService
	TemplateRepo     repository.TemplateRepo
	Engine           service.Engine
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(c.SessionService, c.Engine)
	layoutHandler := handler.NewLayoutHandler(c.LayoutService)
	editorHandler := handler.NewEditorHandler()
	gradeHandler := handler.NewGradeHandler(c.GradeService)
	answerKeyHandler := handler.NewAnswerKeyHandler(c.AnswerKeyService)
	templateHandler := handler.NewTemplateHandler(c.TemplateRepo, c.Engine)

	r.Use(corsMiddleware)
	r.Use(middleware.RequestLogging)

	api := r.PathPrefix("/api").Subrouter()

	// Document ingestion and session lifecycle
	api.HandleFunc("/upload", sessionHandler.Upload).Methods("POST", "OPTIONS")
	api.HandleFunc("/preview", sessionHandler.Preview).Methods("GET")
	api.HandleFunc("/session", sessionHandler.Get).Methods("GET")
	api.HandleFunc("/session/navigate", sessionHandler.Navigate).Methods("POST", "OPTIONS")
	api.HandleFunc("/session/reset", sessionHandler.Reset).Methods("POST", "OPTIONS")

	// Layout persistence and editing
	api.HandleFunc("/layout", layoutHandler.Save).Methods("POST", "OPTIONS")
	api.HandleFunc("/layout", layoutHandler.Load).Methods("GET")
	api.HandleFunc("/layout/export", layoutHandler.Export).Methods("GET")
	api.HandleFunc("/editor/apply", editorHandler.Apply).Methods("POST", "OPTIONS")

	// Templates and diagnostic files
	api.HandleFunc("/templates", templateHandler.List).Methods("GET")
	api.HandleFunc("/templates/{filename}", templateHandler.Get).Methods("GET")
	api.HandleFunc("/files/{path:.*}", templateHandler.File).Methods("GET")

	// Grading
	api.HandleFunc("/grade", gradeHandler.Grade).Methods("POST", "OPTIONS")
	api.HandleFunc("/grade/correct-names", gradeHandler.CorrectNames).Methods("POST", "OPTIONS")
	api.HandleFunc("/grade/history", gradeHandler.History).Methods("GET")

	// Answer keys
	api.HandleFunc("/exams/answer-keys", answerKeyHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/exams/answer-keys/fetch", answerKeyHandler.Fetch).Methods("POST", "OPTIONS")
	api.HandleFunc("/exams/answer-keys/list", answerKeyHandler.List).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
