package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"quizdeck/internal/cli"
)

func main() {
	topic := flag.String("topic", "Data Structures", "quiz topic")
	count := flag.Int("questions", 5, "question count (5/10/15/20)")
	timeLimit := flag.Int("minutes", 5, "time limit in minutes (5/10/15/20/30)")
	difficulty := flag.String("difficulty", "medium", "easy, medium or hard")
	flag.Parse()

	err := cli.Run(context.Background(), os.Stdin, os.Stdout, cli.Options{
		Topic:         *topic,
		QuestionCount: *count,
		TimeLimit:     *timeLimit,
		Difficulty:    *difficulty,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
