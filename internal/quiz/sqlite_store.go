package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLiteStore persists the two quiz collections. Questions and answers are
// kept as JSON columns so each row stays a self-contained document, matching
// the ownership model: rows are written once and never edited.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	store := &SQLiteStore{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			quiz_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			topic TEXT NOT NULL,
			questions_json TEXT NOT NULL,
			time_limit_minutes INTEGER NOT NULL,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quiz_attempts (
			attempt_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			quiz_id TEXT NOT NULL,
			topic TEXT NOT NULL,
			answers_json TEXT NOT NULL,
			score INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			time_taken_seconds INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			completed_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quizzes_user ON quizzes(user_id, created_at_unix DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user_completed ON quiz_attempts(user_id, completed_at_unix DESC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) CreateQuiz(ctx context.Context, q Quiz) error {
	if q.ID == "" {
		return errors.New("quiz id is required")
	}

	questionsJSON, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO quizzes (quiz_id, user_id, topic, questions_json, time_limit_minutes, created_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		q.ID,
		q.UserID,
		q.Topic,
		string(questionsJSON),
		q.TimeLimit,
		q.CreatedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) GetQuiz(ctx context.Context, quizID string) (Quiz, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT quiz_id, user_id, topic, questions_json, time_limit_minutes, created_at_unix
		 FROM quizzes WHERE quiz_id = ?`,
		quizID,
	)

	q, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrQuizNotFound
		}
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLiteStore) ListQuizzesByUser(ctx context.Context, userID string) ([]Quiz, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT quiz_id, user_id, topic, questions_json, time_limit_minutes, created_at_unix
		 FROM quizzes
		 WHERE user_id = ?
		 ORDER BY created_at_unix DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quizzes := make([]Quiz, 0)
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func (s *SQLiteStore) CreateAttempt(ctx context.Context, attempt Attempt) error {
	if attempt.ID == "" {
		return errors.New("attempt id is required")
	}

	answersJSON, err := json.Marshal(attempt.Answers)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO quiz_attempts
		 (attempt_id, user_id, quiz_id, topic, answers_json, score, total_questions, time_taken_seconds, difficulty, completed_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attempt.ID,
		attempt.UserID,
		attempt.QuizID,
		attempt.Topic,
		string(answersJSON),
		attempt.Score,
		attempt.TotalQuestions,
		attempt.TimeTaken,
		attempt.Difficulty,
		attempt.CompletedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) ListAttemptsByUser(ctx context.Context, userID string) ([]Attempt, error) {
	// No join on quizzes here: an attempt must remain readable after its quiz
	// row becomes inaccessible, which is why topic and difficulty are
	// denormalized onto the attempt.
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT attempt_id, user_id, quiz_id, topic, answers_json, score, total_questions, time_taken_seconds, difficulty, completed_at_unix
		 FROM quiz_attempts
		 WHERE user_id = ?
		 ORDER BY completed_at_unix DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := make([]Attempt, 0)
	for rows.Next() {
		var (
			attempt         Attempt
			answersJSON     string
			completedAtUnix int64
		)
		if err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.QuizID,
			&attempt.Topic,
			&answersJSON,
			&attempt.Score,
			&attempt.TotalQuestions,
			&attempt.TimeTaken,
			&attempt.Difficulty,
			&completedAtUnix,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answersJSON), &attempt.Answers); err != nil {
			return nil, err
		}
		attempt.CompletedAt = time.Unix(0, completedAtUnix).UTC()
		attempts = append(attempts, attempt)
	}
	return attempts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (Quiz, error) {
	var (
		q             Quiz
		questionsJSON string
		createdAtUnix int64
	)
	if err := row.Scan(&q.ID, &q.UserID, &q.Topic, &questionsJSON, &q.TimeLimit, &createdAtUnix); err != nil {
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(questionsJSON), &q.Questions); err != nil {
		return Quiz{}, err
	}
	q.CreatedAt = time.Unix(0, createdAtUnix).UTC()
	return q, nil
}
