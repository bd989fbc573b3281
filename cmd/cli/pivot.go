package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/aacdash/internal/app"
	"github.com/MrJamesThe3rd/aacdash/internal/config"
	"github.com/MrJamesThe3rd/aacdash/internal/report"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

var pivotViews = map[string]func(*report.Service) (*report.Table, error){
	"by-type":     (*report.Service).TypeGenerationTable,
	"by-category": (*report.Service).CategoryGenerationTable,
	"monthly": func(s *report.Service) (*report.Table, error) {
		return s.MonthlyTable(), nil
	},
}

func newPivotCmd(cfg *config.Config) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:       "pivot {by-type|by-category|monthly}",
		Short:     "Print a spending pivot",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"by-type", "by-category", "monthly"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTable && format != formatJSON {
				return fmt.Errorf("invalid format %q: want %s or %s", format, formatTable, formatJSON)
			}

			svc, err := app.Report(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			t, err := pivotViews[args[0]](svc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if format == formatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")

				return enc.Encode(t)
			}

			_, err = fmt.Fprintln(out, renderTable(t))

			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table or json")

	return cmd
}

func renderTable(t *report.Table) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Columns...).
		Rows(t.Rows...).
		String()
}
