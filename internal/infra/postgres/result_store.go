package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

type sessionRow struct {
	bun.BaseModel `bun:"table:quiz_sessions"`

	ID        string    `bun:"id,pk"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

type answerRow struct {
	bun.BaseModel `bun:"table:quiz_answers"`

	ID         int64  `bun:"id,pk,autoincrement"`
	SessionID  string `bun:"session_id,notnull"`
	QuestionID string `bun:"question_id,notnull"`
	OptionID   string `bun:"option_id,notnull"`
}

type resultRow struct {
	bun.BaseModel `bun:"table:quiz_results"`

	SessionID string                  `bun:"session_id,pk"`
	TotalCost float64                 `bun:"total_cost,notnull"`
	Breakdown []domain.BreakdownEntry `bun:"breakdown,type:jsonb,notnull"`
	Summary   domain.ResultSummary    `bun:"summary,type:jsonb,notnull"`
	CreatedAt time.Time               `bun:"created_at,notnull"`
}

// ResultStore persists sessions, their answers and results in one transaction.
type ResultStore struct {
	db *bun.DB
}

func NewResultStore(db *bun.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) Save(ctx context.Context, result domain.SavedResult) error {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		session := &sessionRow{ID: result.SessionID, CreatedAt: result.CreatedAt}
		if _, err := tx.NewInsert().Model(session).Exec(ctx); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		if len(result.Answers) > 0 {
			answers := make([]answerRow, 0, len(result.Answers))
			for _, a := range result.Answers {
				answers = append(answers, answerRow{
					SessionID:  result.SessionID,
					QuestionID: a.QuestionID,
					OptionID:   a.OptionID,
				})
			}
			if _, err := tx.NewInsert().Model(&answers).Exec(ctx); err != nil {
				return fmt.Errorf("insert answers: %w", err)
			}
		}

		row := &resultRow{
			SessionID: result.SessionID,
			TotalCost: result.Result.TotalCost,
			Breakdown: result.Result.Breakdown,
			Summary:   result.Summary,
			CreatedAt: result.CreatedAt,
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
		return nil
	})
	return err
}

func (s *ResultStore) Get(ctx context.Context, sessionID string) (domain.SavedResult, error) {
	var row resultRow
	err := s.db.NewSelect().Model(&row).Where("session_id = ?", sessionID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SavedResult{}, domain.ErrResultNotFound
	}
	if err != nil {
		return domain.SavedResult{}, fmt.Errorf("select result: %w", err)
	}

	var rows []answerRow
	if err := s.db.NewSelect().Model(&rows).Where("session_id = ?", sessionID).Order("id ASC").Scan(ctx); err != nil {
		return domain.SavedResult{}, fmt.Errorf("select answers: %w", err)
	}
	answers := make([]domain.Answer, 0, len(rows))
	for _, a := range rows {
		answers = append(answers, domain.Answer{QuestionID: a.QuestionID, OptionID: a.OptionID})
	}

	return domain.SavedResult{
		SessionID: row.SessionID,
		Saved:     true,
		Answers:   answers,
		Result:    domain.QuizResult{TotalCost: row.TotalCost, Breakdown: row.Breakdown},
		Summary:   row.Summary,
		CreatedAt: row.CreatedAt,
	}, nil
}
