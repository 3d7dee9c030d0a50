// Package generate produces quizzes for a validated config, preferring an
// external language model and degrading to a built-in question bank.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizdeck/internal/quiz"
)

// CompleteFunc asks a completion backend for a single text response to a
// system + user message pair.
type CompleteFunc func(ctx context.Context, system, user string) (string, error)

const systemPrompt = "You are an expert quiz generator. Generate quiz questions in valid JSON format only. Do not include any explanatory text outside the JSON."

var difficultyInstructions = map[string]string{
	quiz.DifficultyEasy:   "simple questions for beginners",
	quiz.DifficultyMedium: "moderately tricky questions that need some understanding",
	quiz.DifficultyHard:   "concept based questions for confident learners",
}

type Generator struct {
	complete CompleteFunc
}

// NewGenerator accepts a nil complete function, in which case every call
// takes the fallback path.
func NewGenerator(complete CompleteFunc) *Generator {
	return &Generator{complete: complete}
}

// Generate returns exactly cfg.QuestionCount questions. Generation failures
// of any kind (no backend, transport error, unparseable or malformed payload)
// are absorbed here and degrade to the fallback bank; callers never observe
// them.
func (g *Generator) Generate(ctx context.Context, cfg quiz.Config) []quiz.Question {
	if g.complete == nil {
		return FallbackQuestions(cfg.Topic, cfg.QuestionCount)
	}

	questions, err := g.generateFromModel(ctx, cfg)
	if err != nil {
		return FallbackQuestions(cfg.Topic, cfg.QuestionCount)
	}
	return questions
}

func (g *Generator) generateFromModel(ctx context.Context, cfg quiz.Config) ([]quiz.Question, error) {
	content, err := g.complete(ctx, systemPrompt, buildPrompt(cfg))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []struct {
			Question      string   `json:"question"`
			Options       []string `json:"options"`
			CorrectAnswer int      `json:"correctAnswer"`
			Explanation   string   `json:"explanation"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &payload); err != nil {
		return nil, err
	}
	if len(payload.Questions) != cfg.QuestionCount {
		return nil, fmt.Errorf("model returned %d questions, want %d", len(payload.Questions), cfg.QuestionCount)
	}

	questions := make([]quiz.Question, 0, len(payload.Questions))
	for idx, item := range payload.Questions {
		question := quiz.Question{
			ID:            fmt.Sprintf("q%d", idx+1),
			Text:          item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
			Explanation:   item.Explanation,
		}
		if !question.Valid() {
			return nil, fmt.Errorf("model question %d is malformed", idx+1)
		}
		questions = append(questions, question)
	}
	return questions, nil
}

func buildPrompt(cfg quiz.Config) string {
	return fmt.Sprintf(`Generate %d multiple choice questions about %s at %s difficulty.

Requirements:
- Each question should have exactly 4 options (A, B, C, D)
- Only one correct answer per question
- Include brief explanations for correct answers
- Questions should be relevant to %s
- Avoid overly trivial or extremely obscure questions

Return the response in this exact JSON format:
{
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0,
      "explanation": "Brief explanation of why this is correct"
    }
  ]
}

Note: correctAnswer should be the index (0-3) of the correct option in the options array.`,
		cfg.QuestionCount,
		cfg.Topic,
		difficultyInstructions[cfg.Difficulty],
		cfg.Topic,
	)
}

// stripCodeFence unwraps responses the model insists on fencing despite the
// JSON-only instruction.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
