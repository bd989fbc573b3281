package aggregate

import (
	"slices"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

// DefaultYears are the calendar years covered by the transaction history.
func DefaultYears() []int {
	return []int{2020, 2021}
}

// MonthlyMean is the rounded mean amount for one calendar month.
type MonthlyMean struct {
	Year  int
	Month int
	Mean  int64
}

// MonthlyPoint pairs the Physical and Digital means of the same month.
type MonthlyPoint struct {
	Year     int
	Month    int
	Physical int64
	Digital  int64
}

// MonthlyMeans groups the transactions of one category type by month and
// returns one series ordered by (year, month). Years are sorted and
// deduplicated first. Months without transactions are absent. With no years,
// DefaultYears is used.
func MonthlyMeans(txs []dataset.Transaction, t category.Type, years ...int) []MonthlyMean {
	if len(years) == 0 {
		years = DefaultYears()
	}

	years = slices.Compact(slices.Sorted(slices.Values(years)))

	var out []MonthlyMean

	for _, year := range years {
		var months [13]mean

		for _, tx := range txs {
			if tx.CategoryType != t || tx.Year != year || tx.Month < 1 || tx.Month > 12 {
				continue
			}

			months[tx.Month].add(tx.Amount)
		}

		for month := 1; month <= 12; month++ {
			if months[month].n == 0 {
				continue
			}

			out = append(out, MonthlyMean{Year: year, Month: month, Mean: months[month].rounded()})
		}
	}

	return out
}

// MonthlySpending inner joins the Physical and Digital monthly series on
// (year, month). A month present on only one side is dropped, never filled
// with zero.
func MonthlySpending(txs []dataset.Transaction, years ...int) []MonthlyPoint {
	physical := MonthlyMeans(txs, category.TypePhysical, years...)
	digital := MonthlyMeans(txs, category.TypeDigital, years...)

	type ym struct{ year, month int }

	digitalByMonth := make(map[ym]int64, len(digital))
	for _, d := range digital {
		digitalByMonth[ym{d.Year, d.Month}] = d.Mean
	}

	out := make([]MonthlyPoint, 0, min(len(physical), len(digital)))

	for _, p := range physical {
		d, ok := digitalByMonth[ym{p.Year, p.Month}]
		if !ok {
			continue
		}

		out = append(out, MonthlyPoint{Year: p.Year, Month: p.Month, Physical: p.Mean, Digital: d})
	}

	return slices.Clip(out)
}
