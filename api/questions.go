package api

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/prepmate/mockview/pkg/models"
	"github.com/prepmate/mockview/pkg/repository"
)

type QuestionsHandler struct {
	questionRepo repository.QuestionRepo
}

func NewQuestionsHandler(qr repository.QuestionRepo) *QuestionsHandler {
	return &QuestionsHandler{questionRepo: qr}
}

// ListRoles returns the distinct question roles, title-cased and in
// alphabetical order.
func (h *QuestionsHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.questionRepo.ListRoles(r.Context())
	if err != nil {
		logger.Error("list roles", slog.Any("err", err))
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, titleCase(role))
	}

	writeJSON(w, out, http.StatusOK)
}

// ListQuestions returns the questions for a role/level pair, matched
// case-insensitively, ordered by id ascending.
func (h *QuestionsHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	role := q.Get("role")
	level := q.Get("level")
	if role == "" || level == "" {
		writeError(w, "role and level required", http.StatusBadRequest)
		return
	}

	questions, err := h.questionRepo.ListByRoleLevel(r.Context(), role, level)
	if err != nil {
		logger.Error("list questions", slog.Any("err", err))
		writeError(w, "Database error", http.StatusInternalServerError)
		return
	}

	if questions == nil {
		questions = []models.Question{}
	}

	writeJSON(w, questions, http.StatusOK)
}

// titleCase upper-cases the first letter of each space-separated word,
// matching how stored lower-case roles are presented.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
