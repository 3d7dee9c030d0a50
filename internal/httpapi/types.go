package httpapi

import (
	"quizdeck/internal/auth"
	"quizdeck/internal/quiz"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

type generateQuizRequest struct {
	Topic         string `json:"topic"`
	QuestionCount int    `json:"questionCount"`
	TimeLimit     int    `json:"timeLimit"`
	Difficulty    string `json:"difficulty"`
}

type generatedQuizResponse struct {
	Topic     string          `json:"topic"`
	Questions []quiz.Question `json:"questions"`
	TimeLimit int             `json:"timeLimit"`
}

type saveQuizRequest struct {
	Topic     string          `json:"topic" validate:"required"`
	Questions []quiz.Question `json:"questions" validate:"required,min=1"`
	TimeLimit int             `json:"timeLimit" validate:"gt=0"`
}

type attemptRequest struct {
	QuizID         string `json:"quizId" validate:"required"`
	Topic          string `json:"topic" validate:"required"`
	Answers        []int  `json:"answers" validate:"required"`
	Score          int    `json:"score" validate:"gte=0"`
	TotalQuestions int    `json:"totalQuestions" validate:"gt=0"`
	TimeTaken      int    `json:"timeTaken" validate:"gte=0"`
	Difficulty     string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// attemptQuizRef mirrors the populated quiz reference of the attempts
// listing: present only while the quiz row still exists.
type attemptQuizRef struct {
	ID            string `json:"id"`
	Topic         string `json:"topic"`
	QuestionCount int    `json:"questionCount"`
}

type attemptRecord struct {
	quiz.Attempt
	Quiz *attemptQuizRef `json:"quiz,omitempty"`
}

type topicsResponse struct {
	Topics []string `json:"topics"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// apiError is the failure envelope: Message always set, Error carrying the
// underlying cause for 500s.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
