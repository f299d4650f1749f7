package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prepmate/mockview/pkg/models"
)

func (r *SQLiteRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	if q == nil {
		return 0, fmt.Errorf("question is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO questions (role, level, question) VALUES (?, ?, ?)`, q.Role, q.Level, q.Question)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, role, level, question FROM questions WHERE id = ?`, id)
	var q models.Question
	if err := row.Scan(&q.ID, &q.Role, &q.Level, &q.Question); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &q, nil
}

// ListRoles returns the distinct trimmed lower-cased roles in alphabetical
// order. Presentation casing is the handler's job.
func (r *SQLiteRepo) ListRoles(ctx context.Context) ([]string, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT DISTINCT TRIM(LOWER(role)) AS role FROM questions WHERE role IS NOT NULL AND role <> '' ORDER BY role ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		out = append(out, role)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) ListByRoleLevel(ctx context.Context, role, level string) ([]models.Question, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, role, level, question FROM questions WHERE LOWER(role) = LOWER(?) AND LOWER(level) = LOWER(?) ORDER BY id ASC`, role, level)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Role, &q.Level, &q.Question); err != nil {
			return nil, err
		}
		out = append(out, q)
	}

	return out, rows.Err()
}
