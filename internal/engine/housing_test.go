package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

func TestHousingMortgageFigure(t *testing.T) {
	c := sampleCatalog(t)

	// 200/sqft * 1500 sqft = 300000 amortized at 4% over 25 years.
	assert.InDelta(t, 1583.51, MonthlyPayment(300000, 0.04, 300), 0.01)

	result := Evaluate(c, fullAnswers())
	housing, ok := findEntry(result, "housing")
	require.True(t, ok)
	assert.InDelta(t, 19001, housing.AdjustedCost, 1)
	assert.Equal(t, 19002.0, housing.AdjustedCost)
	assert.Zero(t, housing.BaseCost)
	assert.Equal(t, "Housing Cost", housing.QuestionText)
	assert.Equal(t, "apartment_old", housing.OptionID)
	assert.Equal(t, "Apartment - Older home", housing.OptionLabel)
	assert.Equal(t, []string{
		"Based on location: New York",
		"Commute preference: 50% city center",
	}, housing.Adjustments)
	assert.Equal(t, "$19,002", housing.Display)
}

func TestHousingUsesMultipliersAndDefaultArea(t *testing.T) {
	c := sampleCatalog(t)

	assert.Equal(t, 34837.0, c.HousingCost("nyc", 50, "house", "old"))
	assert.Equal(t, 22803.0, c.HousingCost("nyc", 50, "studio", "new"), "studio falls back to 1500 sqft")
	assert.Equal(t, 10926.0, c.HousingCost("austin", 50, "apartment", "old"))
}

func TestHousingClampsProximity(t *testing.T) {
	c := sampleCatalog(t)

	assert.Equal(t, c.HousingCost("nyc", 100, "apartment", "old"), c.HousingCost("nyc", 150, "apartment", "old"))
	assert.Equal(t, c.HousingCost("nyc", 0, "apartment", "old"), c.HousingCost("nyc", -20, "apartment", "old"))
	assert.Less(t, c.HousingCost("nyc", 0, "apartment", "old"), c.HousingCost("nyc", 100, "apartment", "old"))
}

func TestHousingUnpricedLocationCostsNothing(t *testing.T) {
	c := sampleCatalog(t)

	result := Evaluate(c, with(fullAnswers(), "location", "other"))
	housing, ok := findEntry(result, "housing")
	require.True(t, ok, "complete answers still emit the housing entry")
	assert.Zero(t, housing.AdjustedCost)
}

func TestHousingPartialAnswersOmitEntry(t *testing.T) {
	c := sampleCatalog(t)

	for _, missing := range []string{"location", "commute", "home_age"} {
		_, ok := findEntry(Evaluate(c, without(fullAnswers(), missing)), "housing")
		assert.False(t, ok, "missing %s", missing)
	}
	_, ok := findEntry(Evaluate(c, with(fullAnswers(), "commute", "lots")), "housing")
	assert.False(t, ok, "non-numeric slider value")
}

func TestMonthlyPaymentZeroRate(t *testing.T) {
	assert.Equal(t, 1000.0, MonthlyPayment(300000, 0, 300))
	assert.Zero(t, MonthlyPayment(300000, 0.04, 0))

	q := sampleQuestionnaire()
	q.Mortgage.AnnualRate = ptr(0)
	c, err := NewCatalog(q)
	require.NoError(t, err)
	assert.Equal(t, 12000.0, c.HousingCost("nyc", 50, "apartment", "old"))
}

func TestHousingOptions(t *testing.T) {
	c := sampleCatalog(t)

	options := HousingOptions(c, fullAnswers())
	require.Len(t, options, 3)
	assert.Equal(t, domain.HousingOption{
		ID: "apartment", Label: "Apartment", Sqft: 1500, AnnualCost: 19002, MonthlyCost: 1584, Selected: true,
	}, options[0])
	assert.Equal(t, 34837.0, options[1].AnnualCost)
	assert.False(t, options[1].Selected)

	assert.Nil(t, HousingOptions(c, with(fullAnswers(), "location", "other")))
	assert.Nil(t, HousingOptions(c, without(fullAnswers(), "commute")))
}
