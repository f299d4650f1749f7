package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/prepmate/mockview/api"
	"github.com/prepmate/mockview/pkg/models"
	"github.com/prepmate/mockview/pkg/repository/mock"
)

func TestListRoles_TitleCasedAndOrdered(t *testing.T) {
	mocks := mock.NewMocks()
	// repo hands back distinct lower-cased roles already sorted
	mocks.Questions.Roles = []string{"backend engineer", "data analyst", "devops engineer"}
	handler := api.NewQuestionsHandler(mocks.Questions)

	w := httptest.NewRecorder()
	handler.ListRoles(w, httptest.NewRequest(http.MethodGet, "/api/roles", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var roles []string
	if err := json.Unmarshal(w.Body.Bytes(), &roles); err != nil {
		t.Fatalf("unmarshal roles: %v", err)
	}
	want := []string{"Backend Engineer", "Data Analyst", "Devops Engineer"}
	if !reflect.DeepEqual(roles, want) {
		t.Fatalf("expected %v got %v", want, roles)
	}
}

func TestListRoles_Idempotent(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Questions.Roles = []string{"backend engineer"}
	handler := api.NewQuestionsHandler(mocks.Questions)

	var bodies []string
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ListRoles(w, httptest.NewRequest(http.MethodGet, "/api/roles", nil))
		bodies = append(bodies, w.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Fatalf("two reads with no writes differ: %q vs %q", bodies[0], bodies[1])
	}
}

func TestListQuestions(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Questions.Questions = []models.Question{
		{ID: 1, Role: "Backend Engineer", Level: "low", Question: "q1"},
		{ID: 2, Role: "Backend Engineer", Level: "high", Question: "q2"},
		{ID: 3, Role: "Backend Engineer", Level: "low", Question: "q3"},
	}
	handler := api.NewQuestionsHandler(mocks.Questions)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantIDs    []int64
	}{
		{"MissingRole", "/api/questions?level=low", http.StatusBadRequest, nil},
		{"MissingLevel", "/api/questions?role=Backend+Engineer", http.StatusBadRequest, nil},
		{"CaseInsensitiveMatch", "/api/questions?role=BACKEND+ENGINEER&level=LOW", http.StatusOK, []int64{1, 3}},
		{"NoMatches", "/api/questions?role=Chef&level=low", http.StatusOK, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ListQuestions(w, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantIDs == nil {
				return
			}
			var questions []models.Question
			if err := json.Unmarshal(w.Body.Bytes(), &questions); err != nil {
				t.Fatalf("unmarshal questions: %v", err)
			}
			ids := make([]int64, 0, len(questions))
			for _, q := range questions {
				ids = append(ids, q.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Fatalf("expected ids %v got %v", tt.wantIDs, ids)
			}
		})
	}
}
