package engine

import (
	"math"
	"strconv"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

type housingAnswers struct {
	location    string
	proximity   float64
	housingType string
	homeAge     string
}

// housingAnswers collects the housing inputs. It fails when any is missing or
// the proximity slider value is not numeric.
func (c *Catalog) housingAnswers(answers domain.AnswerSet) (housingAnswers, bool) {
	location, ok1 := answers.Get(c.housing.Location)
	raw, ok2 := answers.Get(c.housing.Proximity)
	housingType, ok3 := answers.Get(c.housing.HousingType)
	homeAge, ok4 := answers.Get(c.housing.HomeAge)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return housingAnswers{}, false
	}
	proximity, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(proximity) || math.IsInf(proximity, 0) {
		return housingAnswers{}, false
	}
	return housingAnswers{
		location:    location,
		proximity:   proximity,
		housingType: housingType,
		homeAge:     homeAge,
	}, true
}

// housingEntry merges location, proximity, housing type and home age into a
// single mortgage-derived line. Partial answers produce no entry.
func housingEntry(c *Catalog, _ domain.Question, answers domain.AnswerSet) (entry, bool) {
	in, ok := c.housingAnswers(answers)
	if !ok {
		return entry{}, false
	}

	cost := c.HousingCost(in.location, in.proximity, in.housingType, in.homeAge)
	return entry{
		questionID:   housingCategoryID,
		questionText: housingCategoryText,
		optionID:     in.housingType + "_" + in.homeAge,
		optionLabel:  c.optionLabel(c.housing.HousingType, in.housingType) + " - " + c.optionLabel(c.housing.HomeAge, in.homeAge),
		cost:         cost,
		notes: []string{
			"Based on location: " + c.optionLabel(c.housing.Location, in.location),
			"Commute preference: " + strconv.FormatFloat(in.proximity, 'f', -1, 64) + "% city center",
		},
	}, true
}

// HousingCost returns the annual mortgage cost, rounded to whole units, of
// the given housing type and age at a location. proximity is the 0-100 city
// center preference. Unpriced locations and "other" cost 0.
func (c *Catalog) HousingCost(location string, proximity float64, housingTypeID, homeAgeID string) float64 {
	pricing, ok := c.questionnaire.LocationPricing[location]
	if location == otherLocation || !ok {
		return 0
	}

	r := math.Min(math.Max(proximity/100, 0), 1)
	perSqft := pricing.Suburb*(1-r) + pricing.CityCenter*r

	sqft := c.sqft
	typeFactor := 1.0
	if opt, ok := c.option(c.housing.HousingType, housingTypeID); ok {
		if opt.Sqft > 0 {
			sqft = opt.Sqft
		}
		typeFactor = multiplierOf(opt)
	}
	ageFactor := 1.0
	if opt, ok := c.option(c.housing.HomeAge, homeAgeID); ok {
		ageFactor = multiplierOf(opt)
	}

	price := perSqft * sqft * typeFactor * ageFactor
	return math.Round(MonthlyPayment(price, c.annualRate, c.months) * 12)
}

// MonthlyPayment amortizes principal over months at a fixed annual rate.
// A zero rate splits the principal evenly.
func MonthlyPayment(principal, annualRate float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	i := annualRate / 12
	if i == 0 {
		return principal / float64(months)
	}
	growth := math.Pow(1+i, float64(months))
	return principal * i * growth / (growth - 1)
}

// HousingOptions prices every housing type under the location, proximity and
// home age answers, flagging the selected type. It returns nil when those
// answers are missing or the location is unpriced.
func HousingOptions(c *Catalog, answers domain.AnswerSet) []domain.HousingOption {
	location, ok1 := answers.Get(c.housing.Location)
	raw, ok2 := answers.Get(c.housing.Proximity)
	homeAge, ok3 := answers.Get(c.housing.HomeAge)
	if !ok1 || !ok2 || !ok3 {
		return nil
	}
	if _, priced := c.questionnaire.LocationPricing[location]; !priced || location == otherLocation {
		return nil
	}
	proximity, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	q, ok := c.Question(c.housing.HousingType)
	if !ok {
		return nil
	}

	selected := answers[c.housing.HousingType]
	out := make([]domain.HousingOption, 0, len(q.Options))
	for _, opt := range q.Options {
		annual := c.HousingCost(location, proximity, opt.ID, homeAge)
		out = append(out, domain.HousingOption{
			ID:          opt.ID,
			Label:       opt.Label,
			Sqft:        opt.Sqft,
			AnnualCost:  annual,
			MonthlyCost: math.Round(annual / 12),
			Selected:    opt.ID == selected,
		})
	}
	return out
}
