package aggregate

import (
	"cmp"
	"slices"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

// Pivot is a two-dimensional table of rounded mean amounts. Only
// combinations that occurred in the input have a cell.
type Pivot struct {
	Rows    []string
	Columns []string

	cells map[cellKey]int64
}

type cellKey struct {
	row string
	col string
}

// Cell returns the value at (row, col) and whether any transaction fell into
// that combination.
func (p Pivot) Cell(row, col string) (int64, bool) {
	v, ok := p.cells[cellKey{row, col}]
	return v, ok
}

// ValueOr returns the cell value, or def when the combination is absent.
func (p Pivot) ValueOr(row, col string, def int64) int64 {
	if v, ok := p.Cell(row, col); ok {
		return v
	}

	return def
}

// SpendingByTypeAndGeneration is the mean amount per category type (rows,
// Physical, Digital, Others) and generation (columns, oldest first).
func SpendingByTypeAndGeneration(txs []dataset.Transaction) Pivot {
	rank := func(r string) int {
		return slices.Index(category.Types(), category.Type(r))
	}

	return buildPivot(txs, func(tx dataset.Transaction) string {
		return string(tx.CategoryType)
	}, rank)
}

// SpendingByCategoryAndGeneration is the mean amount per raw category code
// and generation. Rows follow the category display order, with codes outside
// the vocabulary appended alphabetically.
func SpendingByCategoryAndGeneration(txs []dataset.Transaction) Pivot {
	return buildPivot(txs, func(tx dataset.Transaction) string {
		return tx.Category
	}, category.Position)
}

// buildPivot groups by (rowKey, generation). Rows without a generation are
// skipped. rank gives the fixed row order; negative ranks sort last by name.
func buildPivot(txs []dataset.Transaction, rowKey func(dataset.Transaction) string, rank func(string) int) Pivot {
	groups := map[cellKey]*mean{}
	rowSet := map[string]struct{}{}
	colSet := map[dataset.Generation]struct{}{}

	for _, tx := range txs {
		if tx.Generation == "" {
			continue
		}

		k := cellKey{rowKey(tx), string(tx.Generation)}

		m, ok := groups[k]
		if !ok {
			m = &mean{}
			groups[k] = m
		}

		m.add(tx.Amount)

		rowSet[k.row] = struct{}{}
		colSet[tx.Generation] = struct{}{}
	}

	p := Pivot{cells: make(map[cellKey]int64, len(groups))}

	for k, m := range groups {
		p.cells[k] = m.rounded()
	}

	for r := range rowSet {
		p.Rows = append(p.Rows, r)
	}

	slices.SortFunc(p.Rows, func(a, b string) int {
		ra, rb := rank(a), rank(b)

		switch {
		case ra >= 0 && rb >= 0:
			return ra - rb
		case ra >= 0:
			return -1
		case rb >= 0:
			return 1
		}

		return cmp.Compare(a, b)
	})

	gens := make([]dataset.Generation, 0, len(colSet))
	for g := range colSet {
		gens = append(gens, g)
	}

	dataset.SortGenerations(gens)

	for _, g := range gens {
		p.Columns = append(p.Columns, string(g))
	}

	return p
}
