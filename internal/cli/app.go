// Package cli is the local one-shot mode: play a quiz from the built-in bank
// without a server or an account.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"quizdeck/internal/generate"
	"quizdeck/internal/quiz"
	"quizdeck/internal/session"
)

const maxInvalidAnswers = 3

type Options struct {
	Topic         string
	QuestionCount int
	TimeLimit     int // minutes
	Difficulty    string
}

func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	cfg, err := quiz.NewConfig(opts.Topic, opts.QuestionCount, opts.TimeLimit, opts.Difficulty)
	if err != nil {
		return fmt.Errorf("invalid quiz options: %w", err)
	}

	questions := generate.NewGenerator(nil).Generate(ctx, cfg)
	q := quiz.Quiz{
		Topic:     cfg.Topic,
		Questions: questions,
		TimeLimit: cfg.TimeLimit,
	}

	sess := session.New(q, cfg.Difficulty)
	expired := make(chan session.Result, 1)
	runner := session.NewRunner(sess, func(result session.Result) {
		expired <- result
	})
	runner.Start()
	defer runner.Stop()

	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "%q: %d questions, %d minutes\n", cfg.Topic, len(questions), cfg.TimeLimit)

	for idx := range questions {
		if sess.Submitted() {
			break
		}

		sess.JumpTo(idx)
		printQuestion(out, idx, sess)

		invalidCount := 0
		for {
			optionIndex, ok := getAnswer(reader, out, len(questions[idx].Options))
			if sess.Submitted() {
				break
			}
			if !ok {
				invalidCount++
				if invalidCount >= maxInvalidAnswers {
					fmt.Fprintln(out, "Skipping question after multiple invalid responses.")
					break
				}
				fmt.Fprintf(out, "Invalid input. Attempts remaining: %d\n", maxInvalidAnswers-invalidCount)
				continue
			}
			sess.SelectAnswer(idx, optionIndex)
			break
		}
	}

	var result session.Result
	select {
	case result = <-expired:
		fmt.Fprintln(out, "\nTime is up, submitting automatically.")
	default:
		result = sess.Submit()
	}

	fmt.Fprintf(out, "\nScore: %d/%d (time taken %d:%02d)\n",
		result.Score, result.TotalQuestions, result.TimeTaken/60, result.TimeTaken%60)

	for idx, question := range result.Quiz.Questions {
		if result.Answers[idx] == question.CorrectAnswer {
			continue
		}
		fmt.Fprintf(out, "Q%d: correct answer was %s\n", idx+1, question.Options[question.CorrectAnswer])
	}
	return nil
}

func printQuestion(out io.Writer, idx int, sess *session.Session) {
	question := sess.Question()
	fmt.Fprintf(out, "\n[%d:%02d remaining] Question %d\n%s\n",
		sess.TimeRemaining()/60, sess.TimeRemaining()%60, idx+1, question.Text)
	for optionIdx, option := range question.Options {
		fmt.Fprintf(out, "  %c. %s\n", 'a'+optionIdx, option)
	}
}

func getAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (int, bool) {
	fmt.Fprintf(out, "Your answer (a-%c): ", 'a'+optionCount-1)

	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	if len(answer) != 1 {
		return 0, false
	}
	optionIndex := int(answer[0] - 'a')
	if optionIndex < 0 || optionIndex >= optionCount {
		return 0, false
	}
	return optionIndex, true
}
