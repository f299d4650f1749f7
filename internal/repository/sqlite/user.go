package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/prepmate/mockview/pkg/models"
	"github.com/prepmate/mockview/pkg/repository"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (name, email, password_hash, interviews_taken) VALUES (?, ?, ?, 0)`, u.Name, u.Email, u.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return 0, repository.ErrDuplicateEmail
		}
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password_hash, interviews_taken, created_at FROM users WHERE email = ?`, email)
	var u models.User
	var pw sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &pw, &u.InterviewsTaken, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if pw.Valid {
		u.PasswordHash = pw.String
	}

	return &u, nil
}
