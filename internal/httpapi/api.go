// Package httpapi exposes the quiz application's REST surface: registration
// and login, quiz generation and persistence, attempt recording, and user
// statistics, all JSON over bearer-token auth.
package httpapi

import (
	"quizdeck/internal/auth"
	"quizdeck/internal/generate"
	"quizdeck/internal/quiz"
)

type API struct {
	auth      *auth.Service
	quizzes   *quiz.Service
	generator *generate.Generator
}

func NewAPI(authService *auth.Service, quizService *quiz.Service, generator *generate.Generator) *API {
	if generator == nil {
		generator = generate.NewGenerator(nil)
	}
	return &API{
		auth:      authService,
		quizzes:   quizService,
		generator: generator,
	}
}
