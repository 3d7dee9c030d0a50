package quiz

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const optionsPerQuestion = 4

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is immutable once created. CorrectAnswer indexes into Options.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Valid reports whether the question satisfies the shape every consumer
// assumes: exactly four options and an in-range correct index.
func (q Question) Valid() bool {
	return len(q.Options) == optionsPerQuestion &&
		q.CorrectAnswer >= 0 &&
		q.CorrectAnswer < len(q.Options)
}

// Quiz is owned by exactly one user and has no edit operation.
type Quiz struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
	TimeLimit int        `json:"timeLimit"` // minutes
	CreatedAt time.Time  `json:"createdAt"`
}

// Config parameterizes quiz generation. It is transient and never persisted.
// The option sets are fixed; out-of-set values are rejected at construction.
type Config struct {
	Topic         string `json:"topic" validate:"required"`
	QuestionCount int    `json:"questionCount" validate:"oneof=5 10 15 20"`
	TimeLimit     int    `json:"timeLimit" validate:"oneof=5 10 15 20 30"`
	Difficulty    string `json:"difficulty" validate:"oneof=easy medium hard"`
}

var validate = validator.New()

// NewConfig validates the bounded option sets and returns ErrInvalidConfig
// for anything outside them.
func NewConfig(topic string, questionCount, timeLimit int, difficulty string) (Config, error) {
	cfg := Config{
		Topic:         topic,
		QuestionCount: questionCount,
		TimeLimit:     timeLimit,
		Difficulty:    difficulty,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return ErrInvalidConfig
	}
	return nil
}

// Attempt records one completed quiz session. Topic and difficulty are
// denormalized so the record stays meaningful if the quiz row disappears.
type Attempt struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	QuizID         string    `json:"quizId"`
	Topic          string    `json:"topic"`
	Answers        []int     `json:"answers"` // -1 marks an unanswered question
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	TimeTaken      int       `json:"timeTaken"` // seconds
	Difficulty     string    `json:"difficulty"`
	CompletedAt    time.Time `json:"completedAt"`
}

// UserStats is derived from the full attempt history on every call, never
// cached or stored.
type UserStats struct {
	TotalAttempts  int       `json:"totalAttempts"`
	AverageScore   string    `json:"averageScore"`
	TotalQuestions int       `json:"totalQuestions"`
	TotalTime      int       `json:"totalTime"`
	Topics         []string  `json:"topics"`
	RecentAttempts []Attempt `json:"recentAttempts"`
}
