package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prepmate/mockview/pkg/models"
)

// CreateAnswer stores the answer row and bumps the owning user's
// interviews_taken counter inside one transaction. The increment is a single
// UPDATE so concurrent submissions from the same user cannot lose updates,
// and a failed insert leaves the counter untouched.
func (r *SQLiteRepo) CreateAnswer(ctx context.Context, a *models.Answer) (int64, int64, error) {
	if a == nil {
		return 0, 0, fmt.Errorf("answer is nil")
	}

	var answerID, newCount int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO answers (user_id, question_id, answer, feedback) VALUES (?, ?, ?, ?)`, a.UserID, a.QuestionID, a.Answer, a.Feedback)
		if err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
		answerID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("answer id: %w", err)
		}

		row := tx.QueryRowContext(ctx, `UPDATE users SET interviews_taken = interviews_taken + 1 WHERE id = ? RETURNING interviews_taken`, a.UserID)
		if err := row.Scan(&newCount); err != nil {
			return fmt.Errorf("increment interviews_taken: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return answerID, newCount, nil
}

// ListHistoryByUser returns the user's answers joined with their question's
// role and level, oldest first. The aggregator depends on this order.
func (r *SQLiteRepo) ListHistoryByUser(ctx context.Context, userID int64) ([]models.HistoryRow, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT a.answer, a.feedback, q.question, q.role, q.level
		FROM answers a
		JOIN questions q ON a.question_id = q.id
		WHERE a.user_id = ?
		ORDER BY a.id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HistoryRow
	for rows.Next() {
		var h models.HistoryRow
		if err := rows.Scan(&h.Answer, &h.Feedback, &h.Question, &h.Role, &h.Level); err != nil {
			return nil, err
		}
		out = append(out, h)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM answers WHERE user_id = ?`, userID)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
