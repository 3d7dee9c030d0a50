package quiz

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const recentAttemptsLimit = 5

type Service struct {
	quizzes  QuizRepository
	attempts AttemptRepository
}

func NewService(quizzes QuizRepository, attempts AttemptRepository) *Service {
	return &Service{
		quizzes:  quizzes,
		attempts: attempts,
	}
}

// SaveQuiz persists a generated quiz under its owning user and returns it
// with a durable identifier. Quizzes are immutable after this point.
func (s *Service) SaveQuiz(ctx context.Context, userID, topic string, questions []Question, timeLimit int) (Quiz, error) {
	if strings.TrimSpace(topic) == "" || len(questions) == 0 {
		return Quiz{}, ErrInvalidQuiz
	}
	for _, question := range questions {
		if !question.Valid() {
			return Quiz{}, ErrInvalidQuiz
		}
	}

	q := Quiz{
		ID:        uuid.NewString(),
		UserID:    userID,
		Topic:     topic,
		Questions: questions,
		TimeLimit: timeLimit,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.quizzes.CreateQuiz(ctx, q); err != nil {
		return Quiz{}, fmt.Errorf("save quiz: %w", err)
	}
	return q, nil
}

func (s *Service) ListQuizzes(ctx context.Context, userID string) ([]Quiz, error) {
	quizzes, err := s.quizzes.ListQuizzesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *Service) GetQuiz(ctx context.Context, quizID string) (Quiz, error) {
	return s.quizzes.GetQuiz(ctx, quizID)
}

// RecordAttempt stores one completed session exactly once. Topic and
// difficulty arrive denormalized from the session result so the attempt stays
// self-contained.
func (s *Service) RecordAttempt(ctx context.Context, userID, quizID, topic string, answers []int, score, totalQuestions, timeTaken int, difficulty string) (Attempt, error) {
	attempt := Attempt{
		ID:             uuid.NewString(),
		UserID:         userID,
		QuizID:         quizID,
		Topic:          topic,
		Answers:        answers,
		Score:          score,
		TotalQuestions: totalQuestions,
		TimeTaken:      timeTaken,
		Difficulty:     difficulty,
		CompletedAt:    time.Now().UTC(),
	}
	if attempt.Difficulty == "" {
		attempt.Difficulty = DifficultyMedium
	}

	if err := s.attempts.CreateAttempt(ctx, attempt); err != nil {
		return Attempt{}, fmt.Errorf("record attempt: %w", err)
	}
	return attempt, nil
}

// ListAttempts returns the user's attempt history, most recent first.
func (s *Service) ListAttempts(ctx context.Context, userID string) ([]Attempt, error) {
	attempts, err := s.attempts.ListAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

// ComputeStats aggregates the user's full attempt history on demand. Nothing
// is cached; every call reflects the attempts as stored right now.
//
// AverageScore is the mean of raw per-attempt scores, not normalized by each
// attempt's question count. That matches the reference behavior and is kept
// deliberately; see DESIGN.md.
func (s *Service) ComputeStats(ctx context.Context, userID string) (UserStats, error) {
	attempts, err := s.attempts.ListAttemptsByUser(ctx, userID)
	if err != nil {
		return UserStats{}, fmt.Errorf("compute stats: %w", err)
	}
	return AggregateStats(attempts), nil
}

// AggregateStats reduces an attempt history (any order) into UserStats.
func AggregateStats(attempts []Attempt) UserStats {
	stats := UserStats{
		TotalAttempts:  len(attempts),
		AverageScore:   "0",
		Topics:         make([]string, 0),
		RecentAttempts: make([]Attempt, 0),
	}

	scoreSum := 0
	seenTopics := make(map[string]struct{})
	for _, attempt := range attempts {
		scoreSum += attempt.Score
		stats.TotalQuestions += attempt.TotalQuestions
		stats.TotalTime += attempt.TimeTaken
		if _, seen := seenTopics[attempt.Topic]; !seen {
			seenTopics[attempt.Topic] = struct{}{}
			stats.Topics = append(stats.Topics, attempt.Topic)
		}
	}

	if len(attempts) > 0 {
		stats.AverageScore = fmt.Sprintf("%.2f", float64(scoreSum)/float64(len(attempts)))
	}

	recent := make([]Attempt, len(attempts))
	copy(recent, attempts)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CompletedAt.After(recent[j].CompletedAt)
	})
	if len(recent) > recentAttemptsLimit {
		recent = recent[:recentAttemptsLimit]
	}
	stats.RecentAttempts = recent

	return stats
}
