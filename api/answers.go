package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/prepmate/mockview/internal/interview"
	"github.com/prepmate/mockview/internal/scoring"
)

type AnswersHandler struct {
	svc *interview.Service
}

func NewAnswersHandler(svc *interview.Service) *AnswersHandler {
	return &AnswersHandler{svc: svc}
}

type submitAnswerRequest struct {
	Email      string `json:"email"`
	QuestionID int64  `json:"questionId"`
	Answer     string `json:"answer"`
}

type submitAnswerResponse struct {
	Message         string           `json:"message"`
	Feedback        scoring.Feedback `json:"feedback"`
	AnswerID        int64            `json:"answerId"`
	InterviewsTaken int64            `json:"interviews_taken"`
}

// SubmitAnswer grades and stores one answer. A scoring outage degrades the
// stored feedback but never fails the request; only validation and storage
// errors surface.
func (h *AnswersHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "email, answer, and questionId required", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Answer == "" || req.QuestionID == 0 {
		writeError(w, "email, answer, and questionId required", http.StatusBadRequest)
		return
	}

	result, err := h.svc.SubmitAnswer(r.Context(), req.Email, req.QuestionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, interview.ErrUserNotFound):
			writeError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, interview.ErrQuestionNotFound):
			writeError(w, "Question not found", http.StatusNotFound)
		case errors.Is(err, interview.ErrEmptyAnswer):
			writeError(w, "email, answer, and questionId required", http.StatusBadRequest)
		default:
			logger.Error("submit answer", slog.Any("err", err))
			writeError(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, submitAnswerResponse{
		Message:         "Answer saved",
		Feedback:        result.Feedback,
		AnswerID:        result.AnswerID,
		InterviewsTaken: result.InterviewsTaken,
	}, http.StatusOK)
}

// History returns the user's answers grouped into interview sessions.
func (h *AnswersHandler) History(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if email == "" {
		writeError(w, "Email required", http.StatusBadRequest)
		return
	}

	sessions, err := h.svc.History(r.Context(), email)
	if err != nil {
		if errors.Is(err, interview.ErrUserNotFound) {
			writeError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.Error("history", slog.Any("err", err))
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, sessions, http.StatusOK)
}

// Dashboard returns the per-user summary counters.
func (h *AnswersHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if email == "" {
		writeError(w, "Email required", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Dashboard(r.Context(), email)
	if err != nil {
		if errors.Is(err, interview.ErrUserNotFound) {
			writeError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.Error("dashboard", slog.Any("err", err))
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, summary, http.StatusOK)
}
