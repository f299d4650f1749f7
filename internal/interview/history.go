package interview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prepmate/mockview/internal/scoring"
)

// Session is a read-time grouping of a user's answers sharing one
// (role, level) pair. Sessions are never persisted.
type Session struct {
	Role      string         `json:"role"`
	Level     string         `json:"level"`
	Questions []SessionEntry `json:"questions"`
}

type SessionEntry struct {
	Question string           `json:"question"`
	Answer   string           `json:"answer"`
	Feedback scoring.Feedback `json:"feedback"`
}

type sessionKey struct {
	role, level string
}

// History loads the user's flat answer rows and folds them into sessions
// keyed by (role, level). Sessions appear in order of first appearance and
// entries keep original answer order; answers with the same key merge into
// the earlier session even when they are not contiguous. A user with no
// answers gets an empty slice, not an error.
func (s *Service) History(ctx context.Context, email string) ([]Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	rows, err := s.answers.ListHistoryByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	sessions := make([]Session, 0, len(rows))
	index := make(map[sessionKey]int)
	for _, r := range rows {
		key := sessionKey{role: r.Role, level: r.Level}
		i, seen := index[key]
		if !seen {
			i = len(sessions)
			index[key] = i
			sessions = append(sessions, Session{Role: r.Role, Level: r.Level})
		}

		sessions[i].Questions = append(sessions[i].Questions, SessionEntry{
			Question: r.Question,
			Answer:   r.Answer,
			Feedback: decodeFeedback(r.Feedback),
		})
	}

	return sessions, nil
}

// decodeFeedback turns the stored blob back into an object. A blob that no
// longer decodes must not sink the whole history view, so it becomes an empty
// object instead.
func decodeFeedback(blob string) scoring.Feedback {
	if blob == "" {
		return scoring.Feedback{}
	}
	var fb scoring.Feedback
	if err := json.Unmarshal([]byte(blob), &fb); err != nil {
		return scoring.Feedback{}
	}
	if fb == nil {
		return scoring.Feedback{}
	}
	return fb
}
