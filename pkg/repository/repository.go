package repository

import (
	"context"
	"errors"

	"github.com/prepmate/mockview/pkg/models"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already
// registered. Implementations map their backend's unique-constraint error to
// it so handlers can answer with a conflict instead of a generic failure.
var ErrDuplicateEmail = errors.New("email already exists")

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookups return (nil, nil) when no row matches; callers decide whether that
// is a not-found error.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type QuestionRepo interface {
	CreateQuestion(ctx context.Context, q *models.Question) (int64, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	ListRoles(ctx context.Context) ([]string, error)
	ListByRoleLevel(ctx context.Context, role, level string) ([]models.Question, error)
}

type AnswerRepo interface {
	// CreateAnswer stores the answer and bumps the owning user's
	// interviews_taken counter in the same transaction. It returns the new
	// answer id and the counter value after the increment.
	CreateAnswer(ctx context.Context, a *models.Answer) (int64, int64, error)
	ListHistoryByUser(ctx context.Context, userID int64) ([]models.HistoryRow, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}
