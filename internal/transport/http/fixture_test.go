package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maxhum-sudo/LifeCost/internal/app"
	"github.com/maxhum-sudo/LifeCost/internal/domain"
	"github.com/maxhum-sudo/LifeCost/internal/infra/memory"
)

func ptr(v float64) *float64 { return &v }

// groceryQuestionnaire prices food, optional dining and pets.
//
//	budget food + dog            = 4000 + 1000          = 5000
//	premium food + rarely + dog  = 9000 + 500 + 1000*1.5 = 11000
func groceryQuestionnaire() domain.Questionnaire {
	return domain.Questionnaire{
		ID: "test",
		Questions: []domain.Question{
			{
				ID: "food", Text: "Groceries", Order: 1,
				Options: []domain.Option{
					{ID: "budget", Label: "Budget", BaseCost: 4000},
					{ID: "premium", Label: "Premium", BaseCost: 9000},
				},
			},
			{
				ID: "dining", Text: "Dining out", Order: 2,
				ShowIf: &domain.Guard{Question: "food", Answer: "premium"},
				Options: []domain.Option{
					{ID: "rarely", Label: "Rarely", BaseCost: 500},
					{ID: "often", Label: "Often", BaseCost: 3000},
				},
			},
			{
				ID: "pets", Text: "Pets", Order: 3,
				Options: []domain.Option{
					{ID: "none", Label: "None"},
					{ID: "dog", Label: "Dog", BaseCost: 1000},
				},
				Conditionals: []domain.ConditionalRule{
					{If: domain.Guard{Question: "food", Answer: "premium"}, Multiply: ptr(1.5)},
				},
			},
		},
	}
}

func newTestService(questionnaires map[string]domain.Questionnaire) *app.EstimateService {
	repo := memory.NewCatalogRepository(memory.NewStaticQuestionnaireLoader(questionnaires), time.Minute)
	return app.NewEstimateService(repo, memory.NewResultStore(), "test", nil)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	service := newTestService(map[string]domain.Questionnaire{"test": groceryQuestionnaire()})
	server := httptest.NewServer(NewRouter(service, nil))
	t.Cleanup(server.Close)
	return server
}

func answers(pairs ...string) []map[string]any {
	out := make([]map[string]any, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, map[string]any{"questionId": pairs[i], "optionId": pairs[i+1]})
	}
	return out
}
