package quiz

import (
	"context"
	"errors"
)

var (
	ErrQuizNotFound  = errors.New("quiz not found")
	ErrInvalidConfig = errors.New("invalid quiz config")
	ErrInvalidQuiz   = errors.New("invalid quiz")
)

type QuizRepository interface {
	CreateQuiz(ctx context.Context, q Quiz) error
	GetQuiz(ctx context.Context, quizID string) (Quiz, error)
	ListQuizzesByUser(ctx context.Context, userID string) ([]Quiz, error)
}

type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt Attempt) error
	// ListAttemptsByUser returns the user's attempts ordered by completion
	// time descending.
	ListAttemptsByUser(ctx context.Context, userID string) ([]Attempt, error)
}
