package httpapi

import (
	"errors"
	"net/http"

	"quizdeck/internal/generate"
	"quizdeck/internal/quiz"
)

func (a *API) HandleTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, topicsResponse{Topics: generate.Topics()})
}

// HandleGenerateQuiz runs the generation service server-side. Generation
// itself cannot fail (it degrades to the fallback bank), so the only error
// paths are config validation.
func (a *API) HandleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var request generateQuizRequest
	if !decodeValid(w, r, &request) {
		return
	}

	cfg, err := quiz.NewConfig(request.Topic, request.QuestionCount, request.TimeLimit, request.Difficulty)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Message: "Invalid quiz config"})
		return
	}

	questions := a.generator.Generate(r.Context(), cfg)
	writeJSON(w, http.StatusOK, generatedQuizResponse{
		Topic:     cfg.Topic,
		Questions: questions,
		TimeLimit: cfg.TimeLimit,
	})
}

func (a *API) HandleSaveQuiz(w http.ResponseWriter, r *http.Request) {
	var request saveQuizRequest
	if !decodeValid(w, r, &request) {
		return
	}

	saved, err := a.quizzes.SaveQuiz(r.Context(), requestUserID(r), request.Topic, request.Questions, request.TimeLimit)
	if err != nil {
		if errors.Is(err, quiz.ErrInvalidQuiz) {
			writeJSON(w, http.StatusBadRequest, apiError{Message: "Invalid quiz payload"})
			return
		}
		writeStorageError(w, "Failed to save quiz", err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (a *API) HandleListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := a.quizzes.ListQuizzes(r.Context(), requestUserID(r))
	if err != nil {
		writeStorageError(w, "Failed to fetch quizzes", err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (a *API) HandleRecordAttempt(w http.ResponseWriter, r *http.Request) {
	var request attemptRequest
	if !decodeValid(w, r, &request) {
		return
	}

	attempt, err := a.quizzes.RecordAttempt(
		r.Context(),
		requestUserID(r),
		request.QuizID,
		request.Topic,
		request.Answers,
		request.Score,
		request.TotalQuestions,
		request.TimeTaken,
		request.Difficulty,
	)
	if err != nil {
		writeStorageError(w, "Failed to save quiz attempt", err)
		return
	}

	writeJSON(w, http.StatusOK, attempt)
}

func (a *API) HandleListAttempts(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	attempts, err := a.quizzes.ListAttempts(r.Context(), userID)
	if err != nil {
		writeStorageError(w, "Failed to fetch quiz attempts", err)
		return
	}

	// Attach the owning quiz where it still exists; attempts whose quiz is
	// gone are returned as-is, their denormalized topic standing in.
	quizzes, err := a.quizzes.ListQuizzes(r.Context(), userID)
	if err != nil {
		writeStorageError(w, "Failed to fetch quiz attempts", err)
		return
	}
	refs := make(map[string]*attemptQuizRef, len(quizzes))
	for _, q := range quizzes {
		refs[q.ID] = &attemptQuizRef{
			ID:            q.ID,
			Topic:         q.Topic,
			QuestionCount: len(q.Questions),
		}
	}

	records := make([]attemptRecord, 0, len(attempts))
	for _, attempt := range attempts {
		records = append(records, attemptRecord{
			Attempt: attempt,
			Quiz:    refs[attempt.QuizID],
		})
	}

	writeJSON(w, http.StatusOK, records)
}

func (a *API) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.quizzes.ComputeStats(r.Context(), requestUserID(r))
	if err != nil {
		writeStorageError(w, "Failed to fetch quiz statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
