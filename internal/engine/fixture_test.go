package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

func ptr(v float64) *float64 { return &v }

// sampleQuestionnaire mirrors the production questionnaire shape with small,
// hand-checkable numbers.
func sampleQuestionnaire() domain.Questionnaire {
	return domain.Questionnaire{
		ID: "test",
		LocationPricing: map[string]domain.LocationPricing{
			"nyc":    {Suburb: 100, CityCenter: 300},
			"austin": {Suburb: 80, CityCenter: 150},
		},
		Questions: []domain.Question{
			// Declared out of order on purpose; the catalog sorts by Order.
			{
				ID:    "food",
				Text:  "How do you eat?",
				Order: 8,
				Options: []domain.Option{
					{ID: "basic", Label: "Basic", BaseCost: 5000},
					{ID: "premium", Label: "Premium", BaseCost: 9000},
				},
				Conditionals: []domain.ConditionalRule{
					{If: domain.Guard{Question: "location", Answer: "nyc"}, Multiply: ptr(1.15)},
					{If: domain.Guard{Question: "location", Answer: "austin"}, Multiply: ptr(0.9)},
				},
			},
			{
				ID:    "location",
				Text:  "Where do you live?",
				Order: 1,
				Options: []domain.Option{
					{ID: "nyc", Label: "New York"},
					{ID: "austin", Label: "Austin"},
					{ID: "other", Label: "Somewhere else"},
				},
			},
			{
				ID:     "commute",
				Text:   "City center or suburbs?",
				Order:  2,
				Type:   domain.QuestionTypeSlider,
				Slider: &domain.Slider{Min: 0, Max: 100, Step: 5, LeftLabel: "Suburbs", RightLabel: "City center"},
			},
			{
				ID:    "housing_type",
				Text:  "What kind of home?",
				Order: 3,
				Options: []domain.Option{
					{ID: "apartment", Label: "Apartment", Sqft: 1500},
					{ID: "house", Label: "House", Sqft: 2500, Multiplier: ptr(1.1)},
					{ID: "studio", Label: "Studio"},
				},
			},
			{
				ID:    "home_age",
				Text:  "New or older?",
				Order: 4,
				Options: []domain.Option{
					{ID: "new", Label: "New build", Multiplier: ptr(1.2)},
					{ID: "old", Label: "Older home"},
				},
			},
			{
				ID:    "num_cars",
				Text:  "How many cars?",
				Order: 5,
				Options: []domain.Option{
					{ID: "0", Label: "None"},
					{ID: "1", Label: "One"},
					{ID: "2", Label: "Two"},
					{ID: "3", Label: "Three"},
				},
			},
			{
				ID:     "car_usage",
				Text:   "How much do you drive?",
				Order:  6,
				ShowIf: &domain.Guard{Question: "num_cars", Answer: "1"},
				Options: []domain.Option{
					{ID: "light", Label: "Light", Multiplier: ptr(0.8)},
					{ID: "heavy", Label: "Heavy", Multiplier: ptr(1.2)},
				},
			},
			{
				ID:     "no_car_transport",
				Text:   "How do you get around?",
				Order:  7,
				ShowIf: &domain.Guard{Question: "num_cars", Answer: "0"},
				Options: []domain.Option{
					{ID: "transit", Label: "Public transit", BaseCost: 800},
					{ID: "bike", Label: "Bike", BaseCost: 100},
				},
			},
			{
				ID:    "dining",
				Text:  "How often do you eat out?",
				Order: 9,
				Options: []domain.Option{
					{ID: "rarely", Label: "Rarely", BaseCost: 1000},
					{ID: "often", Label: "Often", BaseCost: 4000},
				},
				Conditionals: []domain.ConditionalRule{
					{If: domain.Guard{Question: "food", Answer: "premium"}, Add: ptr(500), OnlyFor: []string{"often"}},
					{If: domain.Guard{Question: "location", Answer: "nyc"}, Multiply: ptr(1.5), Add: ptr(200)},
				},
			},
			{
				ID:    "pets",
				Text:  "Any pets?",
				Order: 10,
				Options: []domain.Option{
					{ID: "none", Label: "No pets"},
					{ID: "dog", Label: "Dog", BaseCost: 1500, Multiplier: ptr(1.0)},
				},
			},
		},
	}
}

func sampleCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(sampleQuestionnaire())
	require.NoError(t, err)
	return c
}

func fullAnswers() domain.AnswerSet {
	return domain.AnswerSet{
		"location":     "nyc",
		"commute":      "50",
		"housing_type": "apartment",
		"home_age":     "old",
		"num_cars":     "1",
		"car_usage":    "heavy",
		"food":         "basic",
		"dining":       "rarely",
		"pets":         "dog",
	}
}

func with(base domain.AnswerSet, kv ...string) domain.AnswerSet {
	out := make(domain.AnswerSet, len(base)+len(kv)/2)
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = kv[i+1]
	}
	return out
}

func without(base domain.AnswerSet, keys ...string) domain.AnswerSet {
	out := with(base)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func findEntry(r domain.QuizResult, questionID string) (domain.BreakdownEntry, bool) {
	for _, e := range r.Breakdown {
		if e.QuestionID == questionID {
			return e, true
		}
	}
	return domain.BreakdownEntry{}, false
}
