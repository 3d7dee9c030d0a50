// Package session drives a single timed attempt at one quiz: navigation,
// answer selection, the countdown, and submission with score computation.
package session

import (
	"sync"

	"quizdeck/internal/quiz"
)

const unanswered = -1

// Result is the record a submitted session emits. It carries everything the
// attempt store needs, with topic and difficulty denormalized from the quiz.
type Result struct {
	Quiz           quiz.Quiz
	Answers        []int
	Score          int
	TotalQuestions int
	TimeTaken      int // seconds
	AutoSubmitted  bool
	Difficulty     string
}

// Session is confined to one client. The mutex only exists to resolve the
// race between a ticker goroutine hitting zero and a manual submit; whichever
// side wins the latch, the loser's submission is a no-op.
type Session struct {
	mu sync.Mutex

	quiz          quiz.Quiz
	difficulty    string
	currentIndex  int
	answers       []int
	timeRemaining int // seconds
	submitted     bool
	result        Result
}

func New(q quiz.Quiz, difficulty string) *Session {
	answers := make([]int, len(q.Questions))
	for i := range answers {
		answers[i] = unanswered
	}
	if difficulty == "" {
		difficulty = quiz.DifficultyMedium
	}
	return &Session{
		quiz:          q,
		difficulty:    difficulty,
		answers:       answers,
		timeRemaining: q.TimeLimit * 60,
	}
}

// SelectAnswer records the chosen option for the given question, overwriting
// any previous selection. Out-of-range indices and post-submission calls are
// ignored.
func (s *Session) SelectAnswer(questionIndex, optionIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitted {
		return
	}
	if questionIndex < 0 || questionIndex >= len(s.answers) {
		return
	}
	if optionIndex < 0 || optionIndex >= len(s.quiz.Questions[questionIndex].Options) {
		return
	}
	s.answers[questionIndex] = optionIndex
}

// Advance moves to the next question, stopping at the last one.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentIndex < len(s.answers)-1 {
		s.currentIndex++
	}
}

// Retreat moves to the previous question, stopping at the first one.
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentIndex > 0 {
		s.currentIndex--
	}
}

// JumpTo navigates directly to any question, answered or not. Out-of-range
// targets are clamped to the nearest valid index.
func (s *Session) JumpTo(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 {
		index = 0
	}
	if index > len(s.answers)-1 {
		index = len(s.answers) - 1
	}
	s.currentIndex = index
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex
}

func (s *Session) Question() quiz.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz.Questions[s.currentIndex]
}

func (s *Session) Answers() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	answers := make([]int, len(s.answers))
	copy(answers, s.answers)
	return answers
}

func (s *Session) TimeRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeRemaining
}

func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// CanSubmit gates manual submission on the final question having an answer.
// Intervening questions may stay unanswered and simply score as wrong; this
// lenient policy is deliberate.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.answers) == 0 {
		return false
	}
	return s.answers[len(s.answers)-1] != unanswered
}

// Tick advances the countdown by one second. When it reaches zero on a live
// session, the session auto-submits exactly once and Tick returns that result
// with ok=true. Ticks after submission are ignored.
func (s *Session) Tick() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitted {
		return Result{}, false
	}

	s.timeRemaining--
	if s.timeRemaining > 0 {
		return Result{}, false
	}

	s.timeRemaining = 0
	return s.submitLocked(true), true
}

// Submit finalizes the session. Submission is a one-way latch: the first call
// computes and stores the result, every later call returns that same record.
func (s *Session) Submit() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(false)
}

func (s *Session) submitLocked(auto bool) Result {
	if s.submitted {
		return s.result
	}
	s.submitted = true

	score := 0
	for i, answer := range s.answers {
		if answer == s.quiz.Questions[i].CorrectAnswer {
			score++
		}
	}

	answers := make([]int, len(s.answers))
	copy(answers, s.answers)

	s.result = Result{
		Quiz:           s.quiz,
		Answers:        answers,
		Score:          score,
		TotalQuestions: len(s.answers),
		TimeTaken:      s.quiz.TimeLimit*60 - s.timeRemaining,
		AutoSubmitted:  auto,
		Difficulty:     s.difficulty,
	}
	return s.result
}
