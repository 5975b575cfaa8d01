package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/maxhum-sudo/LifeCost/internal/app"
	"github.com/maxhum-sudo/LifeCost/internal/config"
	"github.com/maxhum-sudo/LifeCost/internal/domain"
	"github.com/maxhum-sudo/LifeCost/internal/engine"
	"github.com/maxhum-sudo/LifeCost/internal/infra/memory"
)

// NewEstimateCmd evaluates an answers file offline and prints the breakdown.
func NewEstimateCmd(opts *rootOptions) *cobra.Command {
	var (
		path   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Evaluate an answers file against the configured questionnaire",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			answers, err := readAnswers(path)
			if err != nil {
				return err
			}

			loader, closeLoader, err := questionnaireLoader(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeLoader()

			repo := memory.NewCatalogRepository(loader, config.TTLDuration(cfg.Questionnaire.TTL, 10*time.Minute))
			service := app.NewEstimateService(repo, nil, cfg.Questionnaire.ID, logger)
			result, err := service.Evaluate(cmd.Context(), answers)
			if err != nil {
				return err
			}
			summary := service.Summary(result)

			w := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					domain.QuizResult
					Summary domain.ResultSummary `json:"summary"`
				}{result, summary})
			}
			renderEstimate(w, result, summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "answers", "", "JSON file with an answers array or {\"answers\": [...]}")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

// readAnswers accepts either a bare answers array or a request body object.
func readAnswers(path string) ([]domain.Answer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var answers []domain.Answer
	if err := json.Unmarshal(data, &answers); err == nil {
		return answers, nil
	}
	var body struct {
		Answers []domain.Answer `json:"answers"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	return body.Answers, nil
}

func renderEstimate(w io.Writer, result domain.QuizResult, summary domain.ResultSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"Question", "Answer", "Annual", "Adjustments"})
	for _, e := range result.Breakdown {
		t.AppendRow(table.Row{e.QuestionText, e.OptionLabel, e.Display, strings.Join(e.Adjustments, "; ")})
	}
	t.AppendFooter(table.Row{"Total", "", engine.FormatCurrency(result.TotalCost), ""})
	t.Render()

	_, _ = fmt.Fprintf(w, "Monthly: %s  Weekly: %s  Daily: %s\n",
		engine.FormatCurrency(summary.MonthlyCost),
		engine.FormatCurrency(summary.WeeklyCost),
		engine.FormatCurrency(summary.DailyCost))
	_, _ = fmt.Fprintf(w, "Pre-tax income needed: %s (tax %s)\n",
		engine.FormatCurrency(summary.PreTaxIncome),
		engine.FormatCurrency(summary.TaxAmount))
	if summary.LargestExpense != nil {
		_, _ = fmt.Fprintf(w, "Largest expense: %s (%s)\n", summary.LargestExpense.QuestionText, summary.LargestExpense.Display)
	}
}
