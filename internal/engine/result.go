package engine

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

// assemble converts internal entries into the boundary shape. Currency
// amounts are rounded to cents and summed; multiplier entries stay out of
// the total.
func assemble(entries []entry) domain.QuizResult {
	result := domain.QuizResult{Breakdown: make([]domain.BreakdownEntry, 0, len(entries))}

	var total float64
	for _, e := range entries {
		notes := e.notes
		if notes == nil {
			notes = []string{}
		}
		out := domain.BreakdownEntry{
			QuestionID:   e.questionID,
			QuestionText: e.questionText,
			OptionID:     e.optionID,
			OptionLabel:  e.optionLabel,
			Adjustments:  notes,
		}
		if e.multiplier {
			out.Unit = domain.UnitMultiplier
			out.AdjustedCost = e.cost
			out.Display = formatFactor(e.cost) + "x"
		} else {
			out.Unit = domain.UnitCurrency
			out.BaseCost = roundCents(e.baseCost)
			out.AdjustedCost = roundCents(e.cost)
			out.Display = FormatCurrency(out.AdjustedCost)
			total += out.AdjustedCost
		}
		result.Breakdown = append(result.Breakdown, out)
	}
	result.TotalCost = roundCents(total)
	return result
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatFactor(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatAmount groups thousands; whole amounts drop the decimals.
func formatAmount(v float64) string {
	p := message.NewPrinter(language.English)
	if v == math.Trunc(v) {
		return p.Sprintf("%d", int64(v))
	}
	return p.Sprintf("%.2f", v)
}

// FormatCurrency renders v as dollars with grouped thousands.
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + formatAmount(-v)
	}
	return "$" + formatAmount(v)
}

func formatSignedCurrency(v float64) string {
	if v < 0 {
		return FormatCurrency(v)
	}
	return "+" + FormatCurrency(v)
}
