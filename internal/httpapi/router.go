package httpapi

import (
	"net/http"

	"quizdeck/internal/auth"
	"quizdeck/internal/generate"
	"quizdeck/internal/quiz"
)

func NewRouter(authService *auth.Service, quizService *quiz.Service, generator *generate.Generator) http.Handler {
	api := NewAPI(authService, quizService, generator)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", api.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", api.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", api.requireAuth(api.HandleLogout))

	mux.HandleFunc("GET /api/quiz/topics", api.HandleTopics)
	mux.HandleFunc("POST /api/quiz/generate", api.requireAuth(api.HandleGenerateQuiz))
	mux.HandleFunc("POST /api/quiz", api.requireAuth(api.HandleSaveQuiz))
	mux.HandleFunc("GET /api/quiz", api.requireAuth(api.HandleListQuizzes))
	mux.HandleFunc("POST /api/quiz/attempt", api.requireAuth(api.HandleRecordAttempt))
	mux.HandleFunc("GET /api/quiz/attempts", api.requireAuth(api.HandleListAttempts))
	mux.HandleFunc("GET /api/quiz/stats", api.requireAuth(api.HandleStats))

	return mux
}
