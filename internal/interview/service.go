// Package interview holds the answer submission and history aggregation
// flows: the write path that grades and persists an answer, and the read path
// that reshapes stored answers into per-session views.
package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"log/slog"

	"github.com/prepmate/mockview/internal/scoring"
	"github.com/prepmate/mockview/pkg/models"
	"github.com/prepmate/mockview/pkg/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmptyAnswer      = errors.New("answer text is empty")
)

// package-level logger; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the interview package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Scorer grades one answer against its question. Implementations absorb
// upstream failures into the returned Feedback; Score never fails.
type Scorer interface {
	Score(ctx context.Context, questionText, answerText string) (scoring.Feedback, scoring.Outcome)
}

type Service struct {
	users     repository.UserRepo
	questions repository.QuestionRepo
	answers   repository.AnswerRepo
	scorer    Scorer
}

func NewService(ur repository.UserRepo, qr repository.QuestionRepo, ar repository.AnswerRepo, sc Scorer) *Service {
	return &Service{users: ur, questions: qr, answers: ar, scorer: sc}
}

// SubmissionResult is what a successful submission returns to the caller.
type SubmissionResult struct {
	Feedback        scoring.Feedback `json:"feedback"`
	AnswerID        int64            `json:"answerId"`
	InterviewsTaken int64            `json:"interviews_taken"`
}

// SubmitAnswer resolves the user and question, grades the answer, and stores
// it together with the counter increment. The scoring call runs before any
// transaction is opened so a slow upstream never holds a database lock, and a
// degraded feedback value is still stored; only a persistence error aborts,
// in which case the counter is untouched.
func (s *Service) SubmitAnswer(ctx context.Context, email string, questionID int64, answerText string) (*SubmissionResult, error) {
	if strings.TrimSpace(answerText) == "" {
		return nil, ErrEmptyAnswer
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("lookup question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	feedback, outcome := s.scorer.Score(ctx, question.Question, answerText)
	if outcome != scoring.OutcomeStructured {
		logger.Warn("storing non-structured feedback",
			slog.String("outcome", outcome.String()),
			slog.Int64("user_id", user.ID),
			slog.Int64("question_id", questionID),
		)
	}

	blob, err := json.Marshal(feedback)
	if err != nil {
		return nil, fmt.Errorf("serialize feedback: %w", err)
	}

	answer := &models.Answer{
		UserID:     user.ID,
		QuestionID: questionID,
		Answer:     answerText,
		Feedback:   string(blob),
	}
	answerID, newCount, err := s.answers.CreateAnswer(ctx, answer)
	if err != nil {
		return nil, fmt.Errorf("store answer: %w", err)
	}

	return &SubmissionResult{
		Feedback:        feedback,
		AnswerID:        answerID,
		InterviewsTaken: newCount,
	}, nil
}

// DashboardSummary mirrors the dashboard endpoint payload. BestRole carries a
// binary "Success"/"Failed" status string, not a role name; that is the
// shipped behavior and callers depend on it.
type DashboardSummary struct {
	InterviewsTaken  int64  `json:"interviews_taken"`
	AnswersAttempted int64  `json:"answers_attempted"`
	BestRole         string `json:"best_role"`
}

// Dashboard returns the per-user summary counters.
func (s *Service) Dashboard(ctx context.Context, email string) (*DashboardSummary, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	attempted, err := s.answers.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}

	status := "Failed"
	if attempted >= 1 {
		status = "Success"
	}

	return &DashboardSummary{
		InterviewsTaken:  user.InterviewsTaken,
		AnswersAttempted: attempted,
		BestRole:         status,
	}, nil
}
