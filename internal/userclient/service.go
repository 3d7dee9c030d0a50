// Package userclient implements the interactive terminal client: account
// commands, quiz generation, timed quiz play driven by the session engine,
// and the records/statistics views.
package userclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"quizdeck/internal/quiz"
	"quizdeck/internal/session"
)

const (
	defaultServer         = "http://127.0.0.1:8080"
	defaultHTTPTimeout    = 10 * time.Second
	defaultPersistTimeout = 5 * time.Second
)

type Config struct {
	ServerURL   string
	HTTPTimeout time.Duration
}

type app struct {
	client *HTTPClient
	out    io.Writer
	lines  <-chan string

	// quizzes listed by the last `quizzes` call, so `take <n>` can refer to
	// them by position.
	listed []quiz.Quiz
	// difficulty chosen at generation time, remembered for the attempt record.
	difficultyByQuiz map[string]string
}

func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultServer
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	a := &app{
		client:           NewHTTPClient(serverURL, &http.Client{Timeout: timeout}),
		out:              out,
		lines:            readLines(in),
		difficultyByQuiz: make(map[string]string),
	}

	fmt.Fprintf(out, "quizdeck\nserver=%s\n\n", serverURL)
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, ok := a.readLine()
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		switch strings.ToLower(args[0]) {
		case "help":
			printHelp(out)
		case "exit":
			return nil
		case "register":
			a.runRegister(ctx)
		case "login":
			a.runLogin(ctx)
		case "logout":
			a.runLogout(ctx)
		case "topics":
			a.runTopics(ctx)
		case "generate":
			a.runGenerate(ctx)
		case "quizzes":
			a.runQuizzes(ctx)
		case "take":
			a.runTake(ctx, args)
		case "records":
			a.runRecords(ctx)
		case "stats":
			a.runStats(ctx)
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}
	}
}

func (a *app) runRegister(ctx context.Context) {
	name, ok := a.prompt("name: ")
	if !ok {
		return
	}
	email, ok := a.prompt("email: ")
	if !ok {
		return
	}
	password, ok := a.prompt("password: ")
	if !ok {
		return
	}

	user, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintf(a.out, "registered and logged in as %s <%s>\n", user.Name, user.Email)
}

func (a *app) runLogin(ctx context.Context) {
	email, ok := a.prompt("email: ")
	if !ok {
		return
	}
	password, ok := a.prompt("password: ")
	if !ok {
		return
	}

	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintf(a.out, "logged in as %s <%s>\n", user.Name, user.Email)
}

func (a *app) runLogout(ctx context.Context) {
	if err := a.client.Logout(ctx); err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, "logged out")
}

func (a *app) runTopics(ctx context.Context) {
	topics, err := a.client.Topics(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	for _, topic := range topics {
		fmt.Fprintf(a.out, "  %s\n", topic)
	}
}

func (a *app) runGenerate(ctx context.Context) {
	topic, ok := a.prompt("topic: ")
	if !ok || topic == "" {
		fmt.Fprintln(a.out, "topic is required")
		return
	}
	questionCount, ok := a.promptChoice("questions (5/10/15/20) [10]: ", []int{5, 10, 15, 20}, 10)
	if !ok {
		return
	}
	timeLimit, ok := a.promptChoice("time limit minutes (5/10/15/20/30) [10]: ", []int{5, 10, 15, 20, 30}, 10)
	if !ok {
		return
	}
	difficulty, ok := a.promptDifficulty()
	if !ok {
		return
	}

	cfg, err := quiz.NewConfig(topic, questionCount, timeLimit, difficulty)
	if err != nil {
		fmt.Fprintln(a.out, "invalid quiz configuration")
		return
	}

	fmt.Fprintln(a.out, "generating...")
	generated, err := a.client.GenerateQuiz(ctx, cfg)
	if err != nil {
		a.printError(err)
		return
	}

	saved, err := a.client.SaveQuiz(ctx, generated.Topic, generated.Questions, generated.TimeLimit)
	if err != nil {
		a.printError(err)
		return
	}
	a.difficultyByQuiz[saved.ID] = cfg.Difficulty
	fmt.Fprintf(a.out, "saved quiz %s: %q, %d questions, %d minutes\n",
		saved.ID, saved.Topic, len(saved.Questions), saved.TimeLimit)

	takeNow, ok := a.promptYesNo("take it now? (yes/no): ")
	if ok && takeNow {
		a.play(ctx, saved, cfg.Difficulty)
	}
}

func (a *app) runQuizzes(ctx context.Context) {
	quizzes, err := a.client.ListQuizzes(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	if len(quizzes) == 0 {
		fmt.Fprintln(a.out, "No quizzes yet. Use 'generate' to create one.")
		return
	}

	a.listed = quizzes
	fmt.Fprintln(a.out, "Your quizzes:")
	for idx, item := range quizzes {
		fmt.Fprintf(a.out, "%d. %q (%d questions, %d min, created %s)\n",
			idx+1,
			item.Topic,
			len(item.Questions),
			item.TimeLimit,
			item.CreatedAt.Format(time.RFC3339),
		)
	}
}

func (a *app) runTake(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "usage: take <number from 'quizzes'>")
		return
	}
	if len(a.listed) == 0 {
		fmt.Fprintln(a.out, "run 'quizzes' first")
		return
	}

	index := 0
	if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil || index < 1 || index > len(a.listed) {
		fmt.Fprintf(a.out, "pick a number between 1 and %d\n", len(a.listed))
		return
	}

	q := a.listed[index-1]
	difficulty := a.difficultyByQuiz[q.ID]
	if difficulty == "" {
		difficulty = quiz.DifficultyMedium
	}
	a.play(ctx, q, difficulty)
}

// play walks one timed session. The runner ticks the countdown in the
// background; the command loop and the auto-submit race through the session's
// one-way latch, so exactly one result comes out.
func (a *app) play(ctx context.Context, q quiz.Quiz, difficulty string) {
	sess := session.New(q, difficulty)
	autoSubmitted := make(chan session.Result, 1)
	runner := session.NewRunner(sess, func(result session.Result) {
		autoSubmitted <- result
	})
	runner.Start()
	defer runner.Stop()

	fmt.Fprintf(a.out, "\nStarting %q: %d questions, %d minutes.\n", q.Topic, len(q.Questions), q.TimeLimit)
	fmt.Fprintln(a.out, "Answer with a-d. Commands: next, prev, goto <n>, status, submit.")
	a.printQuestion(sess)

	for {
		fmt.Fprint(a.out, "quiz> ")
		select {
		case result := <-autoSubmitted:
			fmt.Fprintln(a.out, "\nTime is up, submitting automatically.")
			a.finish(ctx, result)
			return
		case line, ok := <-a.lines:
			if !ok {
				fmt.Fprintln(a.out, "\ninput closed, abandoning session")
				return
			}
			if a.handlePlayCommand(ctx, sess, line) {
				return
			}
		}
	}
}

// handlePlayCommand returns true when the session is finished.
func (a *app) handlePlayCommand(ctx context.Context, sess *session.Session, line string) bool {
	args := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(args) == 0 {
		return false
	}

	switch args[0] {
	case "a", "b", "c", "d":
		sess.SelectAnswer(sess.CurrentIndex(), int(args[0][0]-'a'))
		sess.Advance()
		a.printQuestion(sess)
	case "next":
		sess.Advance()
		a.printQuestion(sess)
	case "prev":
		sess.Retreat()
		a.printQuestion(sess)
	case "goto":
		index := 0
		if len(args) != 2 {
			fmt.Fprintln(a.out, "usage: goto <question number>")
			return false
		}
		if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil {
			fmt.Fprintln(a.out, "usage: goto <question number>")
			return false
		}
		sess.JumpTo(index - 1)
		a.printQuestion(sess)
	case "status":
		a.printStatus(sess)
	case "submit":
		if !sess.CanSubmit() {
			fmt.Fprintln(a.out, "answer the final question before submitting")
			return false
		}
		result := sess.Submit()
		a.finish(ctx, result)
		return true
	default:
		fmt.Fprintln(a.out, "answer with a-d, or: next, prev, goto <n>, status, submit")
	}

	if sess.Submitted() {
		// The countdown hit zero while a command was being handled.
		return true
	}
	return false
}

func (a *app) printQuestion(sess *session.Session) {
	index := sess.CurrentIndex()
	question := sess.Question()
	answers := sess.Answers()

	fmt.Fprintf(a.out, "\n[%d:%02d remaining] Question %d\n%s\n",
		sess.TimeRemaining()/60, sess.TimeRemaining()%60, index+1, question.Text)
	for idx, option := range question.Options {
		marker := " "
		if answers[index] == idx {
			marker = "*"
		}
		fmt.Fprintf(a.out, " %s %c. %s\n", marker, 'a'+idx, option)
	}
}

func (a *app) printStatus(sess *session.Session) {
	answers := sess.Answers()
	answered := 0
	for _, answer := range answers {
		if answer >= 0 {
			answered++
		}
	}
	fmt.Fprintf(a.out, "answered %d/%d, %d:%02d remaining\n",
		answered, len(answers), sess.TimeRemaining()/60, sess.TimeRemaining()%60)
}

// finish prints the result and records the attempt in the background. A
// failed save is logged but never interrupts the result view.
func (a *app) finish(ctx context.Context, result session.Result) {
	fmt.Fprintf(a.out, "\nScore: %d/%d (time taken %d:%02d)\n",
		result.Score, result.TotalQuestions, result.TimeTaken/60, result.TimeTaken%60)

	for idx, question := range result.Quiz.Questions {
		if result.Answers[idx] == question.CorrectAnswer {
			continue
		}
		fmt.Fprintf(a.out, "\nQ%d: %s\n", idx+1, question.Text)
		if result.Answers[idx] < 0 {
			fmt.Fprintln(a.out, "  not answered")
		} else {
			fmt.Fprintf(a.out, "  your answer:    %s\n", question.Options[result.Answers[idx]])
		}
		fmt.Fprintf(a.out, "  correct answer: %s\n", question.Options[question.CorrectAnswer])
		if question.Explanation != "" {
			fmt.Fprintf(a.out, "  %s\n", question.Explanation)
		}
	}

	a.recordInBackground(result)
}

func (a *app) recordInBackground(result session.Result) {
	client := a.client
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultPersistTimeout)
		defer cancel()
		_, err := client.RecordAttempt(
			ctx,
			result.Quiz.ID,
			result.Quiz.Topic,
			result.Answers,
			result.Score,
			result.TotalQuestions,
			result.TimeTaken,
			result.Difficulty,
		)
		if err != nil {
			log.Printf("failed to record attempt for quiz %s: %v", result.Quiz.ID, err)
		}
	}()
}

func (a *app) runRecords(ctx context.Context) {
	attempts, err := a.client.ListAttempts(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	if len(attempts) == 0 {
		fmt.Fprintln(a.out, "No attempts yet.")
		return
	}

	fmt.Fprintln(a.out, "Your attempts (most recent first):")
	for idx, attempt := range attempts {
		fmt.Fprintf(a.out, "%d. %q %d/%d in %ds (%s, %s)\n",
			idx+1,
			attempt.Topic,
			attempt.Score,
			attempt.TotalQuestions,
			attempt.TimeTaken,
			attempt.Difficulty,
			attempt.CompletedAt.Format(time.RFC3339),
		)
	}
}

func (a *app) runStats(ctx context.Context) {
	stats, err := a.client.Stats(ctx)
	if err != nil {
		// A reachable-but-failing stats endpoint still leaves the dashboard
		// renderable: show the empty stats view instead of an error.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusInternalServerError {
			stats = quiz.UserStats{AverageScore: "0", Topics: []string{}, RecentAttempts: []quiz.Attempt{}}
		} else {
			a.printError(err)
			return
		}
	}

	fmt.Fprintf(a.out, "attempts:        %d\n", stats.TotalAttempts)
	fmt.Fprintf(a.out, "average score:   %s\n", stats.AverageScore)
	fmt.Fprintf(a.out, "total questions: %d\n", stats.TotalQuestions)
	fmt.Fprintf(a.out, "total time:      %ds\n", stats.TotalTime)
	if len(stats.Topics) > 0 {
		fmt.Fprintf(a.out, "topics:          %s\n", strings.Join(stats.Topics, ", "))
	}
	for _, attempt := range stats.RecentAttempts {
		fmt.Fprintf(a.out, "  recent: %q %d/%d (%s)\n",
			attempt.Topic, attempt.Score, attempt.TotalQuestions,
			attempt.CompletedAt.Format(time.RFC3339))
	}
}
