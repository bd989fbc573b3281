package report

import (
	"slices"

	"github.com/MrJamesThe3rd/aacdash/internal/aggregate"
	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

// generationColumns always lists the known generations so a cohort with no
// transactions renders as NoData instead of vanishing. Unknown cohorts found
// in the pivot are appended.
func generationColumns(p aggregate.Pivot) []string {
	var cols []string
	for _, g := range dataset.Generations() {
		cols = append(cols, string(g))
	}

	for _, c := range p.Columns {
		if !slices.Contains(cols, c) {
			cols = append(cols, c)
		}
	}

	return cols
}

func pivotTable(p aggregate.Pivot, rowHeader string, label func(string) (string, error)) (*Table, error) {
	cols := generationColumns(p)
	t := &Table{Columns: append([]string{rowHeader}, cols...)}

	for _, r := range p.Rows {
		name, err := label(r)
		if err != nil {
			return nil, err
		}

		row := []string{name}

		for _, c := range cols {
			if v, ok := p.Cell(r, c); ok {
				row = append(row, FormatUnits(v))
			} else {
				row = append(row, NoData)
			}
		}

		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// TypeGenerationTable is the mean spending per category type and generation.
func (s *Service) TypeGenerationTable() (*Table, error) {
	return pivotTable(s.SpendingByType(), "Category Type", func(r string) (string, error) {
		return r, nil
	})
}

// CategoryGenerationTable is the mean spending per category and generation,
// with categories shown by their display label.
func (s *Service) CategoryGenerationTable() (*Table, error) {
	return pivotTable(s.SpendingByCategory(), "Category", category.Label)
}

// MonthlyTable is the joined Physical/Digital monthly mean series.
func (s *Service) MonthlyTable() *Table {
	t := &Table{Columns: []string{"Month", string(category.TypePhysical), string(category.TypeDigital)}}

	for _, p := range s.MonthlySpending() {
		t.Rows = append(t.Rows, []string{formatMonth(p.Year, p.Month), FormatUnits(p.Physical), FormatUnits(p.Digital)})
	}

	return t
}
