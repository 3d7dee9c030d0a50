package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quizdeck/internal/quiz"
)

func TestRunnerStopHaltsCountdown(t *testing.T) {
	sess := New(twoQuestionQuiz(), quiz.DifficultyMedium)

	runner := NewRunner(sess, func(Result) {
		t.Error("auto-submit must not fire on a stopped runner")
	})
	runner.Start()
	runner.Stop()

	require.False(t, sess.Submitted())

	// Stop is idempotent.
	runner.Stop()
}

func TestRunnerExitsAfterManualSubmit(t *testing.T) {
	sess := New(twoQuestionQuiz(), quiz.DifficultyMedium)
	sess.SelectAnswer(0, 1)
	sess.SelectAnswer(1, 0)

	runner := NewRunner(sess, func(Result) {
		t.Error("auto-submit must not fire once the session is submitted")
	})
	runner.Start()
	sess.Submit()

	// The runner notices the submitted session on its next tick and exits;
	// Stop then returns without auto-submitting.
	done := make(chan struct{})
	go func() {
		runner.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("runner did not stop after manual submit")
	}
}
