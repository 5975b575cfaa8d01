package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/maxhum-sudo/LifeCost/internal/domain"
	"github.com/maxhum-sudo/LifeCost/internal/engine"
	"github.com/maxhum-sudo/LifeCost/internal/infra/file"
)

// NewValidateCmd checks a questionnaire and prints how each question is priced.
func NewValidateCmd(opts *rootOptions) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a questionnaire file or the configured questionnaire",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(cmd)
			if err != nil {
				return err
			}

			var q domain.Questionnaire
			if path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if q, err = file.Decode(data); err != nil {
					return err
				}
			} else {
				loader, closeLoader, err := questionnaireLoader(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer closeLoader()
				if q, err = loader.LoadQuestionnaire(cmd.Context(), cfg.Questionnaire.ID); err != nil {
					return err
				}
			}

			c, err := engine.NewCatalog(q)
			if err != nil {
				return err
			}
			renderCatalog(cmd.OutOrStdout(), c)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "questionnaire YAML or JSON file (defaults to the configured source)")
	return cmd
}

func renderCatalog(w io.Writer, c *engine.Catalog) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Order", "ID", "Type", "Category", "Options", "Depends on"})
	for _, q := range c.Questions() {
		t.AppendRow(table.Row{q.Order, q.ID, q.Type, c.Kind(q.ID), len(q.Options), dependencies(q)})
	}
	t.Render()

	questionnaire := c.Questionnaire()
	_, _ = fmt.Fprintf(w, "questionnaire %q is valid (%d questions)\n", questionnaire.ID, len(questionnaire.Questions))
}

func dependencies(q domain.Question) string {
	var deps []string
	if q.ShowIf != nil {
		deps = append(deps, "shown if "+q.ShowIf.Question+"="+q.ShowIf.Answer)
	}
	for _, rule := range q.Conditionals {
		deps = append(deps, rule.If.Question+"="+rule.If.Answer)
	}
	return strings.Join(deps, ", ")
}
