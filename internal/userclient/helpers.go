package userclient

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quizdeck/internal/quiz"
)

// readLines feeds trimmed input lines into a channel so the play loop can
// select between user input and the countdown. The channel closes on EOF.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	reader := bufio.NewReader(in)

	go func() {
		defer close(lines)
		for {
			line, err := reader.ReadString('\n')
			if len(line) > 0 {
				lines <- strings.TrimRight(line, "\r\n")
			}
			if err != nil {
				return
			}
		}
	}()

	return lines
}

func (a *app) readLine() (string, bool) {
	line, ok := <-a.lines
	return strings.TrimSpace(line), ok
}

func (a *app) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	return a.readLine()
}

// promptChoice keeps asking until the input is empty (default) or one of the
// allowed values.
func (a *app) promptChoice(label string, allowed []int, defaultValue int) (int, bool) {
	for {
		raw, ok := a.prompt(label)
		if !ok {
			return 0, false
		}
		if raw == "" {
			return defaultValue, true
		}

		value, err := strconv.Atoi(raw)
		if err == nil {
			for _, candidate := range allowed {
				if value == candidate {
					return value, true
				}
			}
		}
		fmt.Fprintf(a.out, "pick one of %v\n", allowed)
	}
}

func (a *app) promptDifficulty() (string, bool) {
	for {
		raw, ok := a.prompt("difficulty (easy/medium/hard) [medium]: ")
		if !ok {
			return "", false
		}
		switch strings.ToLower(raw) {
		case "":
			return quiz.DifficultyMedium, true
		case quiz.DifficultyEasy, quiz.DifficultyMedium, quiz.DifficultyHard:
			return strings.ToLower(raw), true
		default:
			fmt.Fprintln(a.out, "please answer easy, medium or hard")
		}
	}
}

func (a *app) promptYesNo(label string) (bool, bool) {
	for {
		raw, ok := a.prompt(label)
		if !ok {
			return false, false
		}
		switch strings.ToLower(raw) {
		case "y", "yes":
			return true, true
		case "n", "no":
			return false, true
		default:
			fmt.Fprintln(a.out, "Please answer yes or no.")
		}
	}
}

func (a *app) printError(err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(a.out, "error: %s\n", apiErr.Error())
		return
	}
	if errors.Is(err, ErrServiceUnavailable) {
		fmt.Fprintln(a.out, "error: quiz service unavailable")
		return
	}
	fmt.Fprintf(a.out, "error: %v\n", err)
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  register | login | logout")
	fmt.Fprintln(out, "  topics")
	fmt.Fprintln(out, "  generate")
	fmt.Fprintln(out, "  quizzes")
	fmt.Fprintln(out, "  take <n>")
	fmt.Fprintln(out, "  records")
	fmt.Fprintln(out, "  stats")
	fmt.Fprintln(out, "  exit")
}
