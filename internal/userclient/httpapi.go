package userclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"quizdeck/internal/auth"
	"quizdeck/internal/quiz"
)

var ErrServiceUnavailable = errors.New("quiz service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// HTTPClient talks to the quizdeck server. The bearer token is held on the
// client and passed explicitly to every authenticated call site via SetToken
// after login; there is no ambient global.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *HTTPClient) SetToken(token string) { c.token = token }
func (c *HTTPClient) Token() string         { return c.token }

type authPayload struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

type topicsPayload struct {
	Topics []string `json:"topics"`
}

type generatedQuizPayload struct {
	Topic     string          `json:"topic"`
	Questions []quiz.Question `json:"questions"`
	TimeLimit int             `json:"timeLimit"`
}

type attemptPayload struct {
	quiz.Attempt
	Quiz *struct {
		ID            string `json:"id"`
		Topic         string `json:"topic"`
		QuestionCount int    `json:"questionCount"`
	} `json:"quiz,omitempty"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (auth.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var payload authPayload
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", body, &payload); err != nil {
		return auth.User{}, err
	}
	c.token = payload.Token
	return payload.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (auth.User, error) {
	body := map[string]string{"email": email, "password": password}
	var payload authPayload
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &payload); err != nil {
		return auth.User{}, err
	}
	c.token = payload.Token
	return payload.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *HTTPClient) Topics(ctx context.Context) ([]string, error) {
	var payload topicsPayload
	if err := c.doJSON(ctx, http.MethodGet, "/api/quiz/topics", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Topics, nil
}

func (c *HTTPClient) GenerateQuiz(ctx context.Context, cfg quiz.Config) (generatedQuizPayload, error) {
	var payload generatedQuizPayload
	if err := c.doJSON(ctx, http.MethodPost, "/api/quiz/generate", cfg, &payload); err != nil {
		return generatedQuizPayload{}, err
	}
	return payload, nil
}

func (c *HTTPClient) SaveQuiz(ctx context.Context, topic string, questions []quiz.Question, timeLimit int) (quiz.Quiz, error) {
	body := map[string]any{
		"topic":     topic,
		"questions": questions,
		"timeLimit": timeLimit,
	}
	var payload quiz.Quiz
	if err := c.doJSON(ctx, http.MethodPost, "/api/quiz", body, &payload); err != nil {
		return quiz.Quiz{}, err
	}
	return payload, nil
}

func (c *HTTPClient) ListQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	var payload []quiz.Quiz
	if err := c.doJSON(ctx, http.MethodGet, "/api/quiz", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *HTTPClient) RecordAttempt(ctx context.Context, quizID, topic string, answers []int, score, totalQuestions, timeTaken int, difficulty string) (quiz.Attempt, error) {
	body := map[string]any{
		"quizId":         quizID,
		"topic":          topic,
		"answers":        answers,
		"score":          score,
		"totalQuestions": totalQuestions,
		"timeTaken":      timeTaken,
		"difficulty":     difficulty,
	}
	var payload quiz.Attempt
	if err := c.doJSON(ctx, http.MethodPost, "/api/quiz/attempt", body, &payload); err != nil {
		return quiz.Attempt{}, err
	}
	return payload, nil
}

func (c *HTTPClient) ListAttempts(ctx context.Context) ([]attemptPayload, error) {
	var payload []attemptPayload
	if err := c.doJSON(ctx, http.MethodGet, "/api/quiz/attempts", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (quiz.UserStats, error) {
	var payload quiz.UserStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/quiz/stats", nil, &payload); err != nil {
		return quiz.UserStats{}, err
	}
	return payload, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody, responseBody any) error {
	var reader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ErrServiceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		message := payload.Message
		if message == "" {
			message = payload.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if responseBody == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(responseBody)
}
