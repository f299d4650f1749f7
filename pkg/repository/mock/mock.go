package mock

import (
	"context"
	"strings"

	"github.com/prepmate/mockview/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	Users     *MockUserRepo
	Questions *MockQuestionRepo
	Answers   *MockAnswerRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:     &MockUserRepo{},
		Questions: &MockQuestionRepo{},
		Answers:   &MockAnswerRepo{},
	}
}

type MockUserRepo struct {
	Stored    *models.User
	CreateErr error
}

func (m *MockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.User{ID: 1, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash}
	return 1, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

type MockQuestionRepo struct {
	Questions []models.Question
	Roles     []string
	ListErr   error
}

func (m *MockQuestionRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	id := int64(len(m.Questions) + 1)
	cp := *q
	cp.ID = id
	m.Questions = append(m.Questions, cp)
	return id, nil
}

func (m *MockQuestionRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	for i := range m.Questions {
		if m.Questions[i].ID == id {
			return &m.Questions[i], nil
		}
	}
	return nil, nil
}

func (m *MockQuestionRepo) ListRoles(ctx context.Context) ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Roles, nil
}

func (m *MockQuestionRepo) ListByRoleLevel(ctx context.Context, role, level string) ([]models.Question, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Question
	for _, q := range m.Questions {
		if strings.EqualFold(q.Role, role) && strings.EqualFold(q.Level, level) {
			out = append(out, q)
		}
	}
	return out, nil
}

type MockAnswerRepo struct {
	Created   []models.Answer
	History   []models.HistoryRow
	Taken     int64
	CreateErr error
}

func (m *MockAnswerRepo) CreateAnswer(ctx context.Context, a *models.Answer) (int64, int64, error) {
	if m.CreateErr != nil {
		return 0, 0, m.CreateErr
	}
	cp := *a
	cp.ID = int64(len(m.Created) + 1)
	m.Created = append(m.Created, cp)
	m.Taken++
	return cp.ID, m.Taken, nil
}

func (m *MockAnswerRepo) ListHistoryByUser(ctx context.Context, userID int64) ([]models.HistoryRow, error) {
	return m.History, nil
}

func (m *MockAnswerRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return int64(len(m.Created) + len(m.History)), nil
}
