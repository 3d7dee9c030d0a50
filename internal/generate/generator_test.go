package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quizdeck/internal/quiz"
)

func mediumConfig(t *testing.T, topic string, count int) quiz.Config {
	t.Helper()
	cfg, err := quiz.NewConfig(topic, count, 10, quiz.DifficultyMedium)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	return cfg
}

func modelPayload(count int) string {
	var sb strings.Builder
	sb.WriteString(`{"questions":[`)
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"question":"Generated?","options":["a","b","c","d"],"correctAnswer":2,"explanation":"because"}`)
	}
	sb.WriteString(`]}`)
	return sb.String()
}

func TestGenerateWithoutBackendUsesFallback(t *testing.T) {
	g := NewGenerator(nil)
	cfg := mediumConfig(t, "Operating Systems", 5)

	questions := g.Generate(context.Background(), cfg)

	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
	if questions[0].ID != "os1" {
		t.Errorf("expected bank questions first, got leading ID %q", questions[0].ID)
	}
	for i, q := range questions {
		if !q.Valid() {
			t.Errorf("question %d is malformed: %+v", i, q)
		}
	}
}

func TestGenerateUsesModelQuestionsWhenWellFormed(t *testing.T) {
	var gotSystem, gotUser string
	g := NewGenerator(func(_ context.Context, system, user string) (string, error) {
		gotSystem = system
		gotUser = user
		return modelPayload(5), nil
	})
	cfg := mediumConfig(t, "Cloud Computing", 5)

	questions := g.Generate(context.Background(), cfg)

	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
	if questions[0].Text != "Generated?" || questions[0].CorrectAnswer != 2 {
		t.Errorf("expected model content, got %+v", questions[0])
	}
	if questions[2].ID != "q3" {
		t.Errorf("expected sequential IDs, got %q", questions[2].ID)
	}
	if !strings.Contains(gotSystem, "valid JSON format only") {
		t.Errorf("unexpected system prompt: %q", gotSystem)
	}
	if !strings.Contains(gotUser, "Generate 5 multiple choice questions about Cloud Computing") {
		t.Errorf("prompt missing count/topic: %q", gotUser)
	}
	if !strings.Contains(gotUser, "moderately tricky questions") {
		t.Errorf("prompt missing difficulty instruction: %q", gotUser)
	}
}

func TestGenerateUnwrapsFencedModelResponse(t *testing.T) {
	g := NewGenerator(func(context.Context, string, string) (string, error) {
		return "```json\n" + modelPayload(5) + "\n```", nil
	})

	questions := g.Generate(context.Background(), mediumConfig(t, "DevOps", 5))

	if len(questions) != 5 || questions[0].Text != "Generated?" {
		t.Fatalf("expected fenced model payload to be used, got %+v", questions)
	}
}

func TestGenerateDegradesToFallback(t *testing.T) {
	cases := []struct {
		name     string
		complete CompleteFunc
	}{
		{
			name: "transport error",
			complete: func(context.Context, string, string) (string, error) {
				return "", errors.New("connection refused")
			},
		},
		{
			name: "unparseable response",
			complete: func(context.Context, string, string) (string, error) {
				return "Sorry, I cannot help with that.", nil
			},
		},
		{
			name: "wrong question count",
			complete: func(context.Context, string, string) (string, error) {
				return modelPayload(3), nil
			},
		},
		{
			name: "malformed question",
			complete: func(context.Context, string, string) (string, error) {
				return `{"questions":[{"question":"?","options":["a","b"],"correctAnswer":0},` +
					strings.TrimPrefix(modelPayload(4), `{"questions":[`), nil
			},
		},
		{
			name: "out-of-range correct answer",
			complete: func(context.Context, string, string) (string, error) {
				return strings.Replace(modelPayload(5), `"correctAnswer":2`, `"correctAnswer":9`, 1), nil
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGenerator(tc.complete)
			questions := g.Generate(context.Background(), mediumConfig(t, "Data Structures", 5))

			if len(questions) != 5 {
				t.Fatalf("expected 5 fallback questions, got %d", len(questions))
			}
			if questions[0].ID != "ds1" {
				t.Errorf("expected fallback bank content, got leading ID %q", questions[0].ID)
			}
		})
	}
}

func TestFallbackQuestionsPadBeyondBank(t *testing.T) {
	questions := FallbackQuestions("Data Structures", 10)

	if len(questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(questions))
	}
	if questions[0].ID != "ds1" || questions[1].ID != "ds2" {
		t.Errorf("expected bank questions first, got %q %q", questions[0].ID, questions[1].ID)
	}
	for i := 2; i < 10; i++ {
		q := questions[i]
		if !strings.Contains(q.Text, "Data Structures") {
			t.Errorf("placeholder %d missing topic: %q", i, q.Text)
		}
		if !q.Valid() {
			t.Errorf("placeholder %d is malformed: %+v", i, q)
		}
	}
}

func TestFallbackQuestionsUnknownTopicIsAllPlaceholders(t *testing.T) {
	questions := FallbackQuestions("Underwater Basket Weaving", 5)

	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			t.Errorf("question %d correct answer %d out of range", i, q.CorrectAnswer)
		}
	}
}

func TestTopicsIsNonEmptyAndDuplicateFree(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatal("expected a non-empty topic list")
	}

	seen := make(map[string]struct{}, len(topics))
	for _, topic := range topics {
		if _, dup := seen[topic]; dup {
			t.Errorf("duplicate topic %q", topic)
		}
		seen[topic] = struct{}{}
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
