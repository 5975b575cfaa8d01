package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

type questionnaireRow struct {
	bun.BaseModel `bun:"table:questionnaires"`

	ID        string               `bun:"id,pk"`
	Data      domain.Questionnaire `bun:"data,type:jsonb,notnull"`
	UpdatedAt time.Time            `bun:"updated_at,notnull"`
}

// QuestionnaireWriter stores questionnaires for QuestionnaireLoader to serve.
type QuestionnaireWriter struct {
	db  *bun.DB
	now func() time.Time
}

func NewQuestionnaireWriter(db *bun.DB) *QuestionnaireWriter {
	return &QuestionnaireWriter{db: db, now: time.Now}
}

// Upsert inserts or replaces the questionnaire with q.ID.
func (w *QuestionnaireWriter) Upsert(ctx context.Context, q domain.Questionnaire) error {
	if q.ID == "" {
		return fmt.Errorf("%w: questionnaire id required", domain.ErrInvalidQuestionnaire)
	}
	row := &questionnaireRow{ID: q.ID, Data: q, UpdatedAt: w.now().UTC()}
	_, err := w.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert questionnaire: %w", err)
	}
	return nil
}
