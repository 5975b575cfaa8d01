package file

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

//go:embed questionnaires/default.yaml
var defaultQuestionnaire []byte

// DefaultQuestionnaireID is the ID of the questionnaire compiled into the binary.
const DefaultQuestionnaireID = "default"

// Decode parses a questionnaire from YAML or JSON.
func Decode(data []byte) (domain.Questionnaire, error) {
	var q domain.Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return domain.Questionnaire{}, fmt.Errorf("decode questionnaire: %w", err)
	}
	return q, nil
}

// QuestionnaireLoader reads a single questionnaire from raw bytes or a file.
type QuestionnaireLoader struct {
	read func() ([]byte, error)
}

// NewQuestionnaireLoader loads the questionnaire at path on every call.
func NewQuestionnaireLoader(path string) *QuestionnaireLoader {
	return &QuestionnaireLoader{read: func() ([]byte, error) { return os.ReadFile(path) }}
}

// NewEmbeddedLoader serves the questionnaire compiled into the binary.
func NewEmbeddedLoader() *QuestionnaireLoader {
	return &QuestionnaireLoader{read: func() ([]byte, error) { return defaultQuestionnaire, nil }}
}

// LoadQuestionnaire returns the questionnaire when its ID matches. A file
// without an ID answers to any requested ID.
func (l *QuestionnaireLoader) LoadQuestionnaire(_ context.Context, questionnaireID string) (domain.Questionnaire, error) {
	data, err := l.read()
	if err != nil {
		return domain.Questionnaire{}, fmt.Errorf("read questionnaire: %w", err)
	}
	q, err := Decode(data)
	if err != nil {
		return domain.Questionnaire{}, err
	}
	if q.ID == "" {
		q.ID = questionnaireID
	}
	if q.ID != questionnaireID {
		return domain.Questionnaire{}, domain.ErrQuestionnaireNotFound
	}
	return q, nil
}
