package engine

import (
	"math"
	"strconv"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

const annualCarCost = 12000

// transportationEntry merges car count, car usage and the no-car mode into
// one line keyed by the car count.
func transportationEntry(c *Catalog, _ domain.Question, answers domain.AnswerSet) (entry, bool) {
	count, _ := answers.Get(c.transport.CarCount)
	cost, label := c.TransportationCost(count, answers)
	return entry{
		questionID:   transportCategoryID,
		questionText: transportCategoryText,
		optionID:     count,
		optionLabel:  label,
		cost:         cost,
	}, true
}

// TransportationCost prices the car count answer:
//   - 0 cars: base cost of the chosen no-car transport option
//   - 1 car: annualCarCost scaled by the car usage multiplier
//   - n cars: annualCarCost * n; usage is not applied past one car
func (c *Catalog) TransportationCost(count string, answers domain.AnswerSet) (float64, string) {
	label := count + " cars"
	if count == "1" {
		label = "1 car"
	}

	n, ok := carCount(count)
	if !ok {
		return 0, label
	}

	if n == 0 {
		label = "No car"
		mode, ok := answers.Get(c.transport.NoCarTransport)
		if !ok {
			return 0, label
		}
		opt, ok := c.option(c.transport.NoCarTransport, mode)
		if !ok {
			return 0, label
		}
		return opt.BaseCost, opt.Label
	}
	if n > 1 {
		return annualCarCost * float64(n), label
	}

	factor := 1.0
	if usage, ok := answers.Get(c.transport.CarUsage); ok {
		if opt, ok := c.option(c.transport.CarUsage, usage); ok {
			factor = multiplierOf(opt)
			label = "1 car (" + opt.Label + ")"
		}
	}
	return math.Round(annualCarCost * factor), label
}

// carCount reads the leading digits of a car count option id, so "3+" is 3.
func carCount(id string) (int, bool) {
	end := 0
	for end < len(id) && id[end] >= '0' && id[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(id[:end])
	return n, err == nil
}
