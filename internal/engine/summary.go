package engine

import (
	"math"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

// flatTaxRate is the income tax assumed when deriving the pre-tax income.
const flatTaxRate = 0.30

// Summarize derives per-period costs, the pre-tax income needed to cover the
// total and the largest and average currency categories.
func Summarize(r domain.QuizResult) domain.ResultSummary {
	s := domain.ResultSummary{
		MonthlyCost:  math.Round(r.TotalCost / 12),
		WeeklyCost:   math.Round(r.TotalCost / 52),
		DailyCost:    math.Round(r.TotalCost / 365),
		PreTaxIncome: math.Round(r.TotalCost / (1 - flatTaxRate)),
	}
	s.TaxAmount = roundCents(s.PreTaxIncome - r.TotalCost)

	var counted int
	for _, e := range r.Breakdown {
		if e.IsMultiplier() {
			continue
		}
		counted++
		if s.LargestExpense == nil || e.AdjustedCost > s.LargestExpense.AdjustedCost {
			largest := e
			s.LargestExpense = &largest
		}
	}
	if counted > 0 {
		s.AveragePerCategory = math.Round(r.TotalCost / float64(counted))
	}
	return s
}
