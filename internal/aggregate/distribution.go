package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

// Count is the number of rows sharing a key.
type Count struct {
	Key   string
	Count int
}

// countBy tallies keys and sorts by count descending, then key. Empty keys
// are not counted.
func countBy[T any](rows []T, key func(T) string) []Count {
	tally := map[string]int{}

	for _, r := range rows {
		if k := key(r); k != "" {
			tally[k]++
		}
	}

	out := make([]Count, 0, len(tally))
	for k, n := range tally {
		out = append(out, Count{Key: k, Count: n})
	}

	slices.SortFunc(out, func(a, b Count) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}

		return cmp.Compare(a.Key, b.Key)
	})

	return out
}

func GenderDistribution(customers []dataset.Customer) []Count {
	return countBy(customers, func(c dataset.Customer) string { return string(c.Gender) })
}

// GenerationDistribution counts customers per generation. Generations with no
// customers do not appear.
func GenerationDistribution(customers []dataset.Customer) []Count {
	return countBy(customers, func(c dataset.Customer) string { return string(c.Generation) })
}

// TopCities returns the n cities with the most customers.
func TopCities(customers []dataset.Customer, n int) []Count {
	all := countBy(customers, func(c dataset.Customer) string { return c.City })
	if n >= 0 && len(all) > n {
		all = all[:n]
	}

	return all
}

// CategoryStat is the transaction count and total amount of one category.
type CategoryStat struct {
	Category string
	Count    int
	Total    decimal.Decimal
}

func categoryStats(txs []dataset.Transaction) []CategoryStat {
	byCode := map[string]*CategoryStat{}

	for _, tx := range txs {
		s, ok := byCode[tx.Category]
		if !ok {
			s = &CategoryStat{Category: tx.Category}
			byCode[tx.Category] = s
		}

		s.Count++
		s.Total = s.Total.Add(tx.Amount)
	}

	out := make([]CategoryStat, 0, len(byCode))
	for _, s := range byCode {
		s.Total = s.Total.Round(2)
		out = append(out, *s)
	}

	return out
}

// CategoryCounts orders categories by number of transactions, most first.
func CategoryCounts(txs []dataset.Transaction) []CategoryStat {
	out := categoryStats(txs)

	slices.SortFunc(out, func(a, b CategoryStat) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return out
}

// CategoryTotals orders categories by total amount spent, most first.
func CategoryTotals(txs []dataset.Transaction) []CategoryStat {
	out := categoryStats(txs)

	slices.SortFunc(out, func(a, b CategoryStat) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return out
}

// TypeTotals is the amount spent per category type, in type order. Types
// without transactions are omitted.
func TypeTotals(txs []dataset.Transaction) []CategoryStat {
	byType := map[category.Type]*CategoryStat{}

	for _, tx := range txs {
		s, ok := byType[tx.CategoryType]
		if !ok {
			s = &CategoryStat{Category: string(tx.CategoryType)}
			byType[tx.CategoryType] = s
		}

		s.Count++
		s.Total = s.Total.Add(tx.Amount)
	}

	var out []CategoryStat

	for _, t := range category.Types() {
		if s, ok := byType[t]; ok {
			s.Total = s.Total.Round(2)
			out = append(out, *s)
		}
	}

	return out
}

// AgeSummary describes the ages of the customer base.
type AgeSummary struct {
	Min  int
	Max  int
	Mean int64
}

// Ages summarises customer ages. It reports false when there are no customers.
func Ages(customers []dataset.Customer) (AgeSummary, bool) {
	if len(customers) == 0 {
		return AgeSummary{}, false
	}

	s := AgeSummary{Min: customers[0].Age, Max: customers[0].Age}

	var m mean

	for _, c := range customers {
		s.Min = min(s.Min, c.Age)
		s.Max = max(s.Max, c.Age)
		m.add(decimal.NewFromInt(int64(c.Age)))
	}

	s.Mean = m.rounded()

	return s, true
}

// Timeline is the period covered by the transaction history.
type Timeline struct {
	First          time.Time
	Last           time.Time
	Transactions   int
	AccountHolders int // distinct card numbers, zero when the extract has none
}

func TransactionTimeline(txs []dataset.Transaction) Timeline {
	var tl Timeline

	cards := map[string]struct{}{}

	for _, tx := range txs {
		if tl.Transactions == 0 || tx.Time.Before(tl.First) {
			tl.First = tx.Time
		}

		if tl.Transactions == 0 || tx.Time.After(tl.Last) {
			tl.Last = tx.Time
		}

		tl.Transactions++

		if tx.CardNumber != "" {
			cards[tx.CardNumber] = struct{}{}
		}
	}

	tl.AccountHolders = len(cards)

	return tl
}
