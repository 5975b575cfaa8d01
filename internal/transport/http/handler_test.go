package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getURL(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)
	resp := getURL(t, server.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetQuestionnaire(t *testing.T) {
	server := newTestServer(t)
	resp := getURL(t, server.URL+"/api/quiz")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	q := decodeBody[domain.Questionnaire](t, resp)
	require.Len(t, q.Questions, 3)
	assert.Equal(t, "food", q.Questions[0].ID)
	assert.Equal(t, domain.QuestionTypeChoice, q.Questions[0].Type)
}

func TestGetQuestion(t *testing.T) {
	server := newTestServer(t)

	resp := getURL(t, server.URL+"/api/quiz/questions/pets")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pets", decodeBody[domain.Question](t, resp).Text)

	resp = getURL(t, server.URL+"/api/quiz/questions/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNavigate(t *testing.T) {
	server := newTestServer(t)
	type step struct {
		QuestionID string `json:"questionId"`
		Complete   bool   `json:"complete"`
	}

	resp := postJSON(t, server.URL+"/api/quiz/navigate", map[string]any{
		"currentId": "food", "direction": "next", "answers": answers("food", "budget"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, step{QuestionID: "pets"}, decodeBody[step](t, resp))

	resp = postJSON(t, server.URL+"/api/quiz/navigate", map[string]any{
		"currentId": "food", "direction": "next", "answers": answers("food", "premium"),
	})
	assert.Equal(t, step{QuestionID: "dining"}, decodeBody[step](t, resp))

	resp = postJSON(t, server.URL+"/api/quiz/navigate", map[string]any{
		"currentId": "pets", "direction": "next", "answers": answers("food", "budget"),
	})
	assert.Equal(t, step{Complete: true}, decodeBody[step](t, resp))

	resp = postJSON(t, server.URL+"/api/quiz/navigate", map[string]any{
		"currentId": "pets", "direction": "sideways", "answers": answers(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalculate(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/quiz/calculate", map[string]any{
		"answers": answers("food", "premium", "dining", "rarely", "pets", "dog"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[domain.QuizResult](t, resp)
	assert.Equal(t, 11000.0, result.TotalCost)
	require.Len(t, result.Breakdown, 3)
	assert.Equal(t, 1500.0, result.Breakdown[2].AdjustedCost)
	assert.Equal(t, "$1,500", result.Breakdown[2].Display)
	assert.Equal(t, []string{"×1.50 (based on Groceries: Premium)"}, result.Breakdown[2].Adjustments)
}

func TestCalculateIgnoresHiddenAnswers(t *testing.T) {
	server := newTestServer(t)
	resp := postJSON(t, server.URL+"/api/quiz/calculate", map[string]any{
		"answers": answers("food", "budget", "dining", "often", "pets", "dog"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5000.0, decodeBody[domain.QuizResult](t, resp).TotalCost)
}

func TestCalculateRejectsBadInput(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/quiz/calculate", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody[errorResponse](t, resp).Error, "answers array required")

	resp = postJSON(t, server.URL+"/api/quiz/calculate", map[string]any{
		"answers": []map[string]any{{"questionId": "", "optionId": "x"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	raw, err := http.Post(server.URL+"/api/quiz/calculate", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestHousingWithoutHousingQuestions(t *testing.T) {
	server := newTestServer(t)
	resp := postJSON(t, server.URL+"/api/quiz/housing", map[string]any{"answers": answers("food", "budget")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]domain.HousingOption](t, resp))
}

func TestSubmitAndFetchResult(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/results", map[string]any{
		"answers": answers("food", "budget", "pets", "dog"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved := decodeBody[domain.SavedResult](t, resp)
	require.True(t, saved.Saved)
	require.NotEmpty(t, saved.SessionID)
	assert.Equal(t, 5000.0, saved.Result.TotalCost)
	assert.Equal(t, 417.0, saved.Summary.MonthlyCost)

	resp = getURL(t, server.URL+"/api/results?sessionId="+saved.SessionID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[domain.SavedResult](t, resp)
	assert.Equal(t, saved.SessionID, fetched.SessionID)
	assert.Equal(t, saved.Result, fetched.Result)

	resp = getURL(t, server.URL+"/api/results?sessionId=unknown")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidQuestionnaireIsInternalError(t *testing.T) {
	service := newTestService(map[string]domain.Questionnaire{"test": {ID: "test"}})
	server := httptest.NewServer(NewRouter(service, nil))
	defer server.Close()

	resp := getURL(t, server.URL+"/api/quiz")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", decodeBody[errorResponse](t, resp).Error)
}

func TestMissingQuestionnaireIsNotFound(t *testing.T) {
	service := newTestService(map[string]domain.Questionnaire{})
	server := httptest.NewServer(NewRouter(service, nil))
	defer server.Close()

	resp := getURL(t, server.URL+"/api/quiz")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
