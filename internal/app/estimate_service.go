package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
	"github.com/maxhum-sudo/LifeCost/internal/engine"
)

// CatalogRepository serves the validated questionnaire (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context, questionnaireID string) (*engine.Catalog, error)
}

// ResultRepository persists evaluated results keyed by session (in-memory, Redis, Postgres).
type ResultRepository interface {
	Save(ctx context.Context, result domain.SavedResult) error
	Get(ctx context.Context, sessionID string) (domain.SavedResult, error)
}

// Direction selects the navigation scan.
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// Step is the outcome of a navigation call. Complete is set when no
// question remains in the requested direction.
type Step struct {
	QuestionID string `json:"questionId,omitempty"`
	Complete   bool   `json:"complete"`
}

// EstimateService contains the cost-of-living estimate use cases.
type EstimateService struct {
	catalogs        CatalogRepository
	results         ResultRepository
	questionnaireID string
	logger          *slog.Logger
	now             func() time.Time
	newID           func() string
}

func NewEstimateService(catalogs CatalogRepository, results ResultRepository, questionnaireID string, logger *slog.Logger) *EstimateService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &EstimateService{
		catalogs:        catalogs,
		results:         results,
		questionnaireID: questionnaireID,
		logger:          logger,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// NewEstimateServiceWithClock is test-only for deterministic timestamps and session IDs.
func NewEstimateServiceWithClock(catalogs CatalogRepository, results ResultRepository, questionnaireID string, now func() time.Time, newID func() string) *EstimateService {
	s := NewEstimateService(catalogs, results, questionnaireID, nil)
	s.now = now
	s.newID = newID
	return s
}

func (s *EstimateService) catalog(ctx context.Context) (*engine.Catalog, error) {
	return s.catalogs.GetCatalog(ctx, s.questionnaireID)
}

// Questionnaire returns the configuration with questions in order.
func (s *EstimateService) Questionnaire(ctx context.Context) (domain.Questionnaire, error) {
	c, err := s.catalog(ctx)
	if err != nil {
		return domain.Questionnaire{}, err
	}
	return c.Questionnaire(), nil
}

// Question returns a single question by ID.
func (s *EstimateService) Question(ctx context.Context, questionID string) (domain.Question, error) {
	c, err := s.catalog(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	q, ok := c.Question(questionID)
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return q, nil
}

// Navigate resolves the next or previous visible question from currentID
// against the answers the caller holds. Unknown IDs complete the walk.
func (s *EstimateService) Navigate(ctx context.Context, currentID string, dir Direction, answers []domain.Answer) (Step, error) {
	c, err := s.catalog(ctx)
	if err != nil {
		return Step{}, err
	}
	set := domain.NewAnswerSet(answers)

	var (
		id string
		ok bool
	)
	switch dir {
	case DirectionNext, "":
		id, ok = c.Next(currentID, set)
	case DirectionPrevious:
		id, ok = c.Previous(currentID, set)
	default:
		return Step{}, fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidAnswers, dir)
	}
	if !ok {
		return Step{Complete: true}, nil
	}
	return Step{QuestionID: id}, nil
}

// Evaluate computes the cost breakdown for answers.
func (s *EstimateService) Evaluate(ctx context.Context, answers []domain.Answer) (domain.QuizResult, error) {
	if err := ValidateAnswers(answers); err != nil {
		return domain.QuizResult{}, err
	}
	c, err := s.catalog(ctx)
	if err != nil {
		return domain.QuizResult{}, err
	}
	return engine.Evaluate(c, domain.NewAnswerSet(answers)), nil
}

// HousingOptions prices every housing type under the current answers.
func (s *EstimateService) HousingOptions(ctx context.Context, answers []domain.Answer) ([]domain.HousingOption, error) {
	if err := ValidateAnswers(answers); err != nil {
		return nil, err
	}
	c, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	options := engine.HousingOptions(c, domain.NewAnswerSet(answers))
	if options == nil {
		options = []domain.HousingOption{}
	}
	return options, nil
}

// Summary derives the headline figures for a result.
func (s *EstimateService) Summary(result domain.QuizResult) domain.ResultSummary {
	return engine.Summarize(result)
}

// Submit evaluates answers and saves the result under a new session.
// Saving is best-effort: on failure the computed result is still returned
// with Saved unset and no session ID.
func (s *EstimateService) Submit(ctx context.Context, answers []domain.Answer) (domain.SavedResult, error) {
	result, err := s.Evaluate(ctx, answers)
	if err != nil {
		return domain.SavedResult{}, err
	}

	saved := domain.SavedResult{
		SessionID: s.newID(),
		Answers:   answers,
		Result:    result,
		Summary:   engine.Summarize(result),
		CreatedAt: s.now().UTC(),
	}
	if s.results == nil {
		saved.SessionID = ""
		return saved, nil
	}
	saved.Saved = true
	if err := s.results.Save(ctx, saved); err != nil {
		s.logger.Warn("save result failed", "session_id", saved.SessionID, "error", err)
		saved.SessionID = ""
		saved.Saved = false
	}
	return saved, nil
}

// Result returns a previously saved result.
func (s *EstimateService) Result(ctx context.Context, sessionID string) (domain.SavedResult, error) {
	if sessionID == "" || s.results == nil {
		return domain.SavedResult{}, domain.ErrResultNotFound
	}
	return s.results.Get(ctx, sessionID)
}

// ValidateAnswers checks the input shape: every answer names a question and a value.
func ValidateAnswers(answers []domain.Answer) error {
	if answers == nil {
		return fmt.Errorf("%w: answers array required", domain.ErrInvalidAnswers)
	}
	for i, a := range answers {
		if a.QuestionID == "" {
			return fmt.Errorf("%w: answer %d has no questionId", domain.ErrInvalidAnswers, i)
		}
		if a.OptionID == "" {
			return fmt.Errorf("%w: answer %d (%s) has no optionId", domain.ErrInvalidAnswers, i, a.QuestionID)
		}
	}
	return nil
}
