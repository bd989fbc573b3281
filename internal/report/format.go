package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/aacdash/internal/aggregate"
	"github.com/MrJamesThe3rd/aacdash/internal/category"
)

// FormatUnits formats a whole currency amount.
func FormatUnits(v int64) string {
	return fmt.Sprintf("$%d", v)
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func formatPeriod(t time.Time) string {
	return t.Format("Jan 02, 2006")
}

func formatMonth(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// percent returns part/whole as a percentage rounded half to even.
func percent(part, whole int) int64 {
	if whole == 0 {
		return 0
	}

	return aggregate.RoundUnits(decimal.NewFromInt(int64(part)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(whole))))
}

func countChart(counts []aggregate.Count) *Chart {
	c := &Chart{Unit: "customers"}
	for _, n := range counts {
		c.Bars = append(c.Bars, Bar{Label: n.Key, Value: float64(n.Count)})
	}

	return c
}

// categoryChart labels each category stat. An unlabelled code is an error
// rather than a blank bar.
func categoryChart(stats []aggregate.CategoryStat, unit string, value func(aggregate.CategoryStat) float64) (*Chart, error) {
	c := &Chart{Unit: unit}

	for _, s := range stats {
		label, err := category.Label(s.Category)
		if err != nil {
			return nil, err
		}

		c.Bars = append(c.Bars, Bar{Label: label, Value: value(s)})
	}

	return c, nil
}
