package engine

import (
	"fmt"
	"slices"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

// entry is an internal breakdown line before assembly.
type entry struct {
	questionID   string
	questionText string
	optionID     string
	optionLabel  string
	baseCost     float64
	cost         float64
	notes        []string
	multiplier   bool
}

type categoryFunc func(c *Catalog, q domain.Question, answers domain.AnswerSet) (entry, bool)

// categories dispatches on the kind resolved by NewCatalog. Kinds without an
// entry (composite inputs) contribute nothing on their own.
var categories = map[CategoryKind]categoryFunc{
	KindGeneric:        optionEntry,
	KindPricingZone:    pricingZoneEntry,
	KindHousing:        housingEntry,
	KindTransportation: transportationEntry,
}

// Evaluate reduces answers into a cost breakdown. It reads c and answers only
// and returns the same result for the same inputs.
func Evaluate(c *Catalog, answers domain.AnswerSet) domain.QuizResult {
	entries := make([]entry, 0, len(c.questions))
	for _, q := range c.questions {
		if !IsVisible(q, answers) {
			continue
		}
		if _, ok := answers.Get(q.ID); !ok {
			continue
		}
		build, ok := categories[c.Kind(q.ID)]
		if !ok {
			continue
		}
		if e, ok := build(c, q, answers); ok {
			entries = append(entries, e)
		}
	}
	return assemble(entries)
}

// optionEntry prices a plain choice question: base cost, option multiplier,
// then every conditional rule in declaration order.
func optionEntry(c *Catalog, q domain.Question, answers domain.AnswerSet) (entry, bool) {
	chosen, _ := answers.Get(q.ID)
	opt, ok := q.FindOption(chosen)
	if !ok {
		return entry{}, false
	}

	cost := opt.BaseCost
	if opt.Multiplier != nil {
		cost *= *opt.Multiplier
	}

	var notes []string
	for _, rule := range q.Conditionals {
		var applied []string
		cost, applied = c.applyRule(cost, rule, opt.ID, answers)
		notes = append(notes, applied...)
	}

	return entry{
		questionID:   q.ID,
		questionText: q.Text,
		optionID:     opt.ID,
		optionLabel:  opt.Label,
		baseCost:     opt.BaseCost,
		cost:         cost,
		notes:        notes,
	}, true
}

func ruleApplies(rule domain.ConditionalRule, optionID string, answers domain.AnswerSet) bool {
	value, ok := answers[rule.If.Question]
	if !ok || value != rule.If.Answer {
		return false
	}
	return len(rule.OnlyFor) == 0 || slices.Contains(rule.OnlyFor, optionID)
}

// applyRule multiplies before it adds when a rule carries both. A note is
// recorded for each step that changed the cost.
func (c *Catalog) applyRule(cost float64, rule domain.ConditionalRule, optionID string, answers domain.AnswerSet) (float64, []string) {
	if !ruleApplies(rule, optionID, answers) {
		return cost, nil
	}
	basis := c.dependencyBasis(rule.If.Question, answers)

	var notes []string
	if rule.Multiply != nil {
		next := cost * *rule.Multiply
		if next != cost {
			notes = append(notes, fmt.Sprintf("×%s (based on %s)", formatFactor(*rule.Multiply), basis))
		}
		cost = next
	}
	if rule.Add != nil {
		next := cost + *rule.Add
		if next != cost {
			notes = append(notes, fmt.Sprintf("%s (based on %s)", formatSignedCurrency(*rule.Add), basis))
		}
		cost = next
	}
	return cost, notes
}

// dependencyBasis renders "<question text>: <answer label>" for notes. Slider
// answers and unresolved options fall back to the raw answer.
func (c *Catalog) dependencyBasis(questionID string, answers domain.AnswerSet) string {
	value := answers[questionID]
	q, ok := c.Question(questionID)
	if !ok {
		return questionID + ": " + value
	}
	if opt, ok := q.FindOption(value); ok {
		return q.Text + ": " + opt.Label
	}
	return q.Text + ": " + value
}

// pricingZoneEntry reports the location's multiplier instead of a cost.
func pricingZoneEntry(c *Catalog, q domain.Question, answers domain.AnswerSet) (entry, bool) {
	chosen, _ := answers.Get(q.ID)
	opt, ok := q.FindOption(chosen)
	if !ok {
		return entry{}, false
	}

	factor := c.LocationMultiplier(opt.ID)
	var notes []string
	if factor != 1 {
		notes = append(notes, formatFactor(factor)+"x cost multiplier")
	}
	return entry{
		questionID:   q.ID,
		questionText: q.Text,
		optionID:     opt.ID,
		optionLabel:  opt.Label,
		cost:         factor,
		notes:        notes,
		multiplier:   true,
	}, true
}

// LocationMultiplier returns the multiplier the reference question's first
// rule guarded on locationID declares, or 1.
func (c *Catalog) LocationMultiplier(locationID string) float64 {
	ref, ok := c.Question(c.pricingZone.Reference)
	if !ok {
		return 1
	}
	for _, rule := range ref.Conditionals {
		if rule.If.Question != c.pricingZone.Location || rule.If.Answer != locationID {
			continue
		}
		if rule.Multiply != nil {
			return *rule.Multiply
		}
		return 1
	}
	return 1
}

func multiplierOf(opt domain.Option) float64 {
	if opt.Multiplier == nil {
		return 1
	}
	return *opt.Multiplier
}
