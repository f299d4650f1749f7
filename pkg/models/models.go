package models

import "strings"

type User struct {
	ID              int64  `json:"id" db:"id"`
	Name            string `json:"name" db:"name"`
	Email           string `json:"email" db:"email"`
	PasswordHash    string `json:"-" db:"password_hash"`
	InterviewsTaken int64  `json:"interviews_taken" db:"interviews_taken"`
	CreatedAt       string `json:"created_at" db:"created_at"`
}

type Question struct {
	ID       int64  `json:"id" db:"id"`
	Role     string `json:"role" db:"role"`
	Level    string `json:"level" db:"level"`
	Question string `json:"question" db:"question"`
}

// Answer holds a stored submission. Feedback is the serialized JSON blob as
// written at submission time; it is decoded only when building history views.
type Answer struct {
	ID         int64  `json:"id" db:"id"`
	UserID     int64  `json:"user_id" db:"user_id"`
	QuestionID int64  `json:"question_id" db:"question_id"`
	Answer     string `json:"answer" db:"answer"`
	Feedback   string `json:"feedback" db:"feedback"`
	CreatedAt  string `json:"created_at" db:"created_at"`
}

// HistoryRow is one answer joined with its question's role and level. The
// repository returns these in ascending answer order; the aggregator folds
// them into sessions.
type HistoryRow struct {
	Answer   string
	Feedback string
	Question string
	Role     string
	Level    string
}

// NormalizeLevel maps seed-time level synonyms onto the two canonical tiers.
// Unknown values pass through lower-cased.
func NormalizeLevel(level string) string {
	l := strings.ToLower(strings.TrimSpace(level))
	switch l {
	case "easy":
		return "low"
	case "hard":
		return "high"
	}
	return l
}
