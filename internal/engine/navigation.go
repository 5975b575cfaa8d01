package engine

import "github.com/maxhum-sudo/LifeCost/internal/domain"

// IsVisible reports whether q is active under answers. Visibility is always
// evaluated against the answer set passed in, never a cached one.
func IsVisible(q domain.Question, answers domain.AnswerSet) bool {
	if q.ShowIf == nil {
		return true
	}
	value, ok := answers[q.ShowIf.Question]
	return ok && value == q.ShowIf.Answer
}

// First returns the lowest-order question.
func (c *Catalog) First() string {
	return c.questions[0].ID
}

// Next returns the first visible question after currentID. An empty
// currentID starts the questionnaire. It returns false when the
// questionnaire is complete or currentID is unknown.
func (c *Catalog) Next(currentID string, answers domain.AnswerSet) (string, bool) {
	if currentID == "" {
		return c.First(), true
	}
	i, ok := c.index[currentID]
	if !ok {
		return "", false
	}
	for _, q := range c.questions[i+1:] {
		if IsVisible(q, answers) {
			return q.ID, true
		}
	}
	return "", false
}

// Previous returns the last visible question before currentID, or false when
// there is none or currentID is unknown.
func (c *Catalog) Previous(currentID string, answers domain.AnswerSet) (string, bool) {
	i, ok := c.index[currentID]
	if !ok {
		return "", false
	}
	for j := i - 1; j >= 0; j-- {
		if IsVisible(c.questions[j], answers) {
			return c.questions[j].ID, true
		}
	}
	return "", false
}

// VisibleQuestions lists the questions a wizard walks through under answers,
// following Next from the start.
func (c *Catalog) VisibleQuestions(answers domain.AnswerSet) []domain.Question {
	var out []domain.Question
	for id, ok := c.Next("", answers); ok; id, ok = c.Next(id, answers) {
		q, _ := c.Question(id)
		out = append(out, q)
	}
	return out
}
