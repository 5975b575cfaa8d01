package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// QuestionType selects how a question is answered.
type QuestionType string

const (
	QuestionTypeChoice QuestionType = "multiple-choice"
	QuestionTypeSlider QuestionType = "slider"
)

// Option is one selectable choice of a multiple-choice question.
type Option struct {
	ID         string   `json:"id" yaml:"id"`
	Label      string   `json:"label" yaml:"label"`
	BaseCost   float64  `json:"baseCost,omitempty" yaml:"baseCost"`
	Multiplier *float64 `json:"multiplier,omitempty" yaml:"multiplier"`
	Sqft       float64  `json:"sqft,omitempty" yaml:"sqft"`
}

// Slider describes a continuous numeric question.
type Slider struct {
	Min        float64 `json:"min" yaml:"min"`
	Max        float64 `json:"max" yaml:"max"`
	Step       float64 `json:"step,omitempty" yaml:"step"`
	LeftLabel  string  `json:"leftLabel" yaml:"leftLabel"`
	RightLabel string  `json:"rightLabel" yaml:"rightLabel"`
}

// Guard holds when another question was answered with exactly Answer.
type Guard struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// ConditionalRule adjusts a question's cost when its guard holds.
// OnlyFor restricts the rule to the listed option IDs; empty means all options.
type ConditionalRule struct {
	If       Guard    `json:"if" yaml:"if"`
	Multiply *float64 `json:"multiply,omitempty" yaml:"multiply"`
	Add      *float64 `json:"add,omitempty" yaml:"add"`
	OnlyFor  []string `json:"onlyFor,omitempty" yaml:"onlyFor"`
}

// Question is one step of the questionnaire.
type Question struct {
	ID           string            `json:"id" yaml:"id"`
	Text         string            `json:"text" yaml:"text"`
	Order        int               `json:"order" yaml:"order"`
	Type         QuestionType      `json:"type,omitempty" yaml:"type"`
	Options      []Option          `json:"options,omitempty" yaml:"options"`
	Slider       *Slider           `json:"slider,omitempty" yaml:"slider"`
	Conditionals []ConditionalRule `json:"conditionals,omitempty" yaml:"conditionals"`
	ShowIf       *Guard            `json:"showIf,omitempty" yaml:"showIf"`
}

// IsSlider reports whether the question takes a numeric slider value.
func (q Question) IsSlider() bool {
	return q.Type == QuestionTypeSlider
}

// FindOption returns the option with the given ID.
func (q Question) FindOption(optionID string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return Option{}, false
}

// LocationPricing is the price per square foot for a location.
type LocationPricing struct {
	Suburb     float64 `json:"suburb" yaml:"suburb"`
	CityCenter float64 `json:"cityCenter" yaml:"cityCenter"`
}

// MortgageTerms configures housing amortization. Zero values fall back to 4% over 25 years.
type MortgageTerms struct {
	AnnualRate *float64 `json:"annualRate,omitempty" yaml:"annualRate"`
	Years      int      `json:"years,omitempty" yaml:"years"`
}

// HousingGroup names the questions feeding the housing composite.
type HousingGroup struct {
	Location    string `json:"location,omitempty" yaml:"location"`
	Proximity   string `json:"proximity,omitempty" yaml:"proximity"`
	HousingType string `json:"housingType,omitempty" yaml:"housingType"`
	HomeAge     string `json:"homeAge,omitempty" yaml:"homeAge"`
}

// TransportationGroup names the questions feeding the transportation composite.
type TransportationGroup struct {
	CarCount       string `json:"carCount,omitempty" yaml:"carCount"`
	CarUsage       string `json:"carUsage,omitempty" yaml:"carUsage"`
	NoCarTransport string `json:"noCarTransport,omitempty" yaml:"noCarTransport"`
}

// PricingZoneGroup names the location question and the question whose
// conditionals carry the per-location multiplier.
type PricingZoneGroup struct {
	Location  string `json:"location,omitempty" yaml:"location"`
	Reference string `json:"reference,omitempty" yaml:"reference"`
}

// Composites maps composite calculations onto question IDs.
type Composites struct {
	Housing        HousingGroup        `json:"housing" yaml:"housing"`
	Transportation TransportationGroup `json:"transportation" yaml:"transportation"`
	PricingZone    PricingZoneGroup    `json:"pricingZone" yaml:"pricingZone"`
}

// Questionnaire is the full declarative configuration.
type Questionnaire struct {
	ID              string                     `json:"id" yaml:"id"`
	Questions       []Question                 `json:"questions" yaml:"questions"`
	LocationPricing map[string]LocationPricing `json:"locationPricing,omitempty" yaml:"locationPricing"`
	HousingSqft     float64                    `json:"housingSqft,omitempty" yaml:"housingSqft"`
	Mortgage        MortgageTerms              `json:"mortgage" yaml:"mortgage"`
	Composites      Composites                 `json:"composites" yaml:"composites"`
}

// Answer is a single submitted answer. OptionID holds an option ID for
// choice questions or the numeric value for sliders.
type Answer struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

// UnmarshalJSON accepts optionId as a string or a number. Numbers keep their literal text.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw struct {
		QuestionID string          `json:"questionId"`
		OptionID   json.RawMessage `json:"optionId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.QuestionID = raw.QuestionID
	a.OptionID = ""

	value := bytes.TrimSpace(raw.OptionID)
	if len(value) == 0 || bytes.Equal(value, []byte("null")) {
		return nil
	}
	switch value[0] {
	case '"':
		return json.Unmarshal(value, &a.OptionID)
	default:
		var n json.Number
		if err := json.Unmarshal(value, &n); err != nil {
			return fmt.Errorf("optionId must be a string or number: %w", err)
		}
		a.OptionID = n.String()
	}
	return nil
}

// AnswerSet maps question IDs to the chosen value.
type AnswerSet map[string]string

// NewAnswerSet builds an AnswerSet; the last answer for a question wins.
func NewAnswerSet(answers []Answer) AnswerSet {
	set := make(AnswerSet, len(answers))
	for _, a := range answers {
		set[a.QuestionID] = a.OptionID
	}
	return set
}

// Get returns the answer for a question and whether it is present and non-empty.
func (s AnswerSet) Get(questionID string) (string, bool) {
	v, ok := s[questionID]
	return v, ok && v != ""
}

// Unit tells how an entry's adjusted cost is to be read.
type Unit string

const (
	UnitCurrency   Unit = "currency"
	UnitMultiplier Unit = "multiplier"
)

// BreakdownEntry is one line item of a result.
type BreakdownEntry struct {
	QuestionID   string   `json:"questionId"`
	QuestionText string   `json:"questionText"`
	OptionID     string   `json:"optionId"`
	OptionLabel  string   `json:"optionLabel"`
	BaseCost     float64  `json:"baseCost"`
	AdjustedCost float64  `json:"adjustedCost"`
	Adjustments  []string `json:"adjustments"`
	Unit         Unit     `json:"unit"`
	Display      string   `json:"display"`
}

// IsMultiplier reports whether the entry is a pricing-zone multiplier rather than a cost.
func (e BreakdownEntry) IsMultiplier() bool {
	return e.Unit == UnitMultiplier
}

// QuizResult is the outcome of an evaluation.
type QuizResult struct {
	TotalCost float64          `json:"totalCost"`
	Breakdown []BreakdownEntry `json:"breakdown"`
}

// ResultSummary derives per-period figures from a result.
type ResultSummary struct {
	MonthlyCost        float64         `json:"monthlyCost"`
	WeeklyCost         float64         `json:"weeklyCost"`
	DailyCost          float64         `json:"dailyCost"`
	PreTaxIncome       float64         `json:"preTaxIncome"`
	TaxAmount          float64         `json:"taxAmount"`
	LargestExpense     *BreakdownEntry `json:"largestExpense,omitempty"`
	AveragePerCategory float64         `json:"averagePerCategory"`
}

// HousingOption is the housing cost of one housing type under the current answers.
type HousingOption struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Sqft        float64 `json:"sqft"`
	AnnualCost  float64 `json:"annualCost"`
	MonthlyCost float64 `json:"monthlyCost"`
	Selected    bool    `json:"selected"`
}

// SavedResult is a persisted evaluation keyed by session.
type SavedResult struct {
	SessionID string        `json:"sessionId"`
	Saved     bool          `json:"saved"`
	Answers   []Answer      `json:"answers"`
	Result    QuizResult    `json:"result"`
	Summary   ResultSummary `json:"summary"`
	CreatedAt time.Time     `json:"createdAt"`
}
