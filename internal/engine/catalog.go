// Package engine evaluates questionnaire answers into an itemized annual cost.
//
// A Catalog is built once from a domain.Questionnaire, validated, and then
// shared read-only. Navigation and evaluation are pure functions of the
// Catalog and the answer set supplied on each call.
package engine

import (
	"fmt"
	"sort"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

const (
	defaultHousingSqft    = 1500
	defaultAnnualRate     = 0.04
	defaultMortgageYears  = 25
	otherLocation         = "other"
	housingCategoryID     = "housing"
	housingCategoryText   = "Housing Cost"
	transportCategoryID   = "transportation"
	transportCategoryText = "Transportation"
)

// CategoryKind selects how a question contributes to the breakdown.
type CategoryKind int

const (
	KindGeneric CategoryKind = iota
	KindPricingZone
	KindHousing
	KindHousingInput
	KindTransportation
	KindTransportationInput
)

func (k CategoryKind) String() string {
	switch k {
	case KindPricingZone:
		return "pricing-zone"
	case KindHousing:
		return "housing"
	case KindHousingInput:
		return "housing-input"
	case KindTransportation:
		return "transportation"
	case KindTransportationInput:
		return "transportation-input"
	default:
		return "generic"
	}
}

// Catalog is a validated, indexed questionnaire. It is immutable after
// construction and safe for concurrent use.
type Catalog struct {
	questionnaire domain.Questionnaire
	questions     []domain.Question
	index         map[string]int
	kinds         map[string]CategoryKind

	housing     domain.HousingGroup
	transport   domain.TransportationGroup
	pricingZone domain.PricingZoneGroup
	sqft        float64
	annualRate  float64
	months      int
}

// NewCatalog validates q and resolves the category of every question.
// The catalog takes ownership of q; callers must not mutate it afterwards.
func NewCatalog(q domain.Questionnaire) (*Catalog, error) {
	if len(q.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", domain.ErrInvalidQuestionnaire)
	}

	questions := make([]domain.Question, len(q.Questions))
	copy(questions, q.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})

	c := &Catalog{
		questions: questions,
		index:     make(map[string]int, len(questions)),
		kinds:     make(map[string]CategoryKind, len(questions)),
	}

	orders := make(map[int]string, len(questions))
	for i, question := range questions {
		if question.ID == "" {
			return nil, fmt.Errorf("%w: question at order %d has no id", domain.ErrInvalidQuestionnaire, question.Order)
		}
		if _, dup := c.index[question.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question id %q", domain.ErrInvalidQuestionnaire, question.ID)
		}
		if other, dup := orders[question.Order]; dup {
			return nil, fmt.Errorf("%w: questions %q and %q share order %d", domain.ErrInvalidQuestionnaire, other, question.ID, question.Order)
		}
		if questions[i].Type == "" {
			questions[i].Type = domain.QuestionTypeChoice
		}
		if err := validateShape(questions[i]); err != nil {
			return nil, err
		}
		c.index[question.ID] = i
		orders[question.Order] = question.ID
	}

	for _, question := range questions {
		if question.ShowIf != nil {
			if err := c.validateDependency(question, question.ShowIf.Question); err != nil {
				return nil, err
			}
		}
		for _, rule := range question.Conditionals {
			if err := c.validateDependency(question, rule.If.Question); err != nil {
				return nil, err
			}
		}
	}

	q.Questions = questions
	c.questionnaire = q
	c.applyDefaults(q)
	c.resolveKinds()
	return c, nil
}

func validateShape(q domain.Question) error {
	switch q.Type {
	case domain.QuestionTypeChoice:
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %q has no options", domain.ErrInvalidQuestionnaire, q.ID)
		}
		if q.Slider != nil {
			return fmt.Errorf("%w: choice question %q has a slider", domain.ErrInvalidQuestionnaire, q.ID)
		}
		seen := make(map[string]struct{}, len(q.Options))
		for _, opt := range q.Options {
			if opt.ID == "" {
				return fmt.Errorf("%w: question %q has an option without id", domain.ErrInvalidQuestionnaire, q.ID)
			}
			if _, dup := seen[opt.ID]; dup {
				return fmt.Errorf("%w: question %q has duplicate option %q", domain.ErrInvalidQuestionnaire, q.ID, opt.ID)
			}
			seen[opt.ID] = struct{}{}
		}
	case domain.QuestionTypeSlider:
		if q.Slider == nil {
			return fmt.Errorf("%w: slider question %q has no slider", domain.ErrInvalidQuestionnaire, q.ID)
		}
		if len(q.Options) > 0 {
			return fmt.Errorf("%w: slider question %q has options", domain.ErrInvalidQuestionnaire, q.ID)
		}
		if q.Slider.Max < q.Slider.Min {
			return fmt.Errorf("%w: slider question %q has max below min", domain.ErrInvalidQuestionnaire, q.ID)
		}
	default:
		return fmt.Errorf("%w: question %q has unknown type %q", domain.ErrInvalidQuestionnaire, q.ID, q.Type)
	}
	return nil
}

// validateDependency enforces that referenced answers are collected before q.
func (c *Catalog) validateDependency(q domain.Question, dependsOn string) error {
	i, ok := c.index[dependsOn]
	if !ok {
		return fmt.Errorf("%w: question %q depends on unknown question %q", domain.ErrInvalidQuestionnaire, q.ID, dependsOn)
	}
	if c.questions[i].Order >= q.Order {
		return fmt.Errorf("%w: question %q depends on %q which does not come before it", domain.ErrInvalidQuestionnaire, q.ID, dependsOn)
	}
	return nil
}

func (c *Catalog) applyDefaults(q domain.Questionnaire) {
	c.housing = q.Composites.Housing
	if c.housing.Location == "" {
		c.housing.Location = "location"
	}
	if c.housing.Proximity == "" {
		c.housing.Proximity = "commute"
	}
	if c.housing.HousingType == "" {
		c.housing.HousingType = "housing_type"
	}
	if c.housing.HomeAge == "" {
		c.housing.HomeAge = "home_age"
	}

	c.transport = q.Composites.Transportation
	if c.transport.CarCount == "" {
		c.transport.CarCount = "num_cars"
	}
	if c.transport.CarUsage == "" {
		c.transport.CarUsage = "car_usage"
	}
	if c.transport.NoCarTransport == "" {
		c.transport.NoCarTransport = "no_car_transport"
	}

	c.pricingZone = q.Composites.PricingZone
	if c.pricingZone.Location == "" {
		c.pricingZone.Location = c.housing.Location
	}
	if c.pricingZone.Reference == "" {
		c.pricingZone.Reference = "food"
	}

	c.sqft = q.HousingSqft
	if c.sqft <= 0 {
		c.sqft = defaultHousingSqft
	}
	c.annualRate = defaultAnnualRate
	if q.Mortgage.AnnualRate != nil && *q.Mortgage.AnnualRate >= 0 {
		c.annualRate = *q.Mortgage.AnnualRate
	}
	years := q.Mortgage.Years
	if years <= 0 {
		years = defaultMortgageYears
	}
	c.months = years * 12
}

// resolveKinds assigns each question its category once. Composite roles only
// take effect when their anchor question exists.
func (c *Catalog) resolveKinds() {
	for _, q := range c.questions {
		c.kinds[q.ID] = KindGeneric
	}
	if c.has(c.housing.HousingType) {
		for _, id := range []string{c.housing.Proximity, c.housing.HomeAge} {
			c.setKind(id, KindHousingInput)
		}
		c.setKind(c.housing.HousingType, KindHousing)
	}
	if c.has(c.transport.CarCount) {
		for _, id := range []string{c.transport.CarUsage, c.transport.NoCarTransport} {
			c.setKind(id, KindTransportationInput)
		}
		c.setKind(c.transport.CarCount, KindTransportation)
	}
	c.setKind(c.pricingZone.Location, KindPricingZone)
}

func (c *Catalog) setKind(id string, kind CategoryKind) {
	if c.has(id) {
		c.kinds[id] = kind
	}
}

func (c *Catalog) has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Questionnaire returns the configuration with questions in ascending order.
func (c *Catalog) Questionnaire() domain.Questionnaire {
	q := c.questionnaire
	q.Questions = c.Questions()
	return q
}

// Questions returns the questions in ascending order.
func (c *Catalog) Questions() []domain.Question {
	out := make([]domain.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Question looks up a question by ID.
func (c *Catalog) Question(id string) (domain.Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Question{}, false
	}
	return c.questions[i], true
}

// Kind returns the category of a question; unknown IDs are generic.
func (c *Catalog) Kind(id string) CategoryKind {
	return c.kinds[id]
}

func (c *Catalog) option(questionID, optionID string) (domain.Option, bool) {
	q, ok := c.Question(questionID)
	if !ok {
		return domain.Option{}, false
	}
	return q.FindOption(optionID)
}

func (c *Catalog) optionLabel(questionID, optionID string) string {
	if opt, ok := c.option(questionID, optionID); ok {
		return opt.Label
	}
	return ""
}
