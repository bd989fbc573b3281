package aggregate

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

// ClusterSummary profiles one externally assigned customer cluster.
type ClusterSummary struct {
	Cluster            int
	Customers          int
	Transactions       int
	TotalAmount        decimal.Decimal
	MeanAmount         int64
	MeanAge            int64
	DominantGeneration dataset.Generation
	TopCategory        string
	// TypeShare is the percentage of the cluster's spending per category
	// type, rounded to one decimal place.
	TypeShare map[category.Type]decimal.Decimal
}

// ClusterSummaries profiles every cluster label seen in either table,
// ordered by label. Unclustered rows belong to no summary.
func ClusterSummaries(customers []dataset.Customer, txs []dataset.Transaction) []ClusterSummary {
	custByCluster := map[int][]dataset.Customer{}
	for _, c := range customers {
		if c.Cluster != dataset.Unclustered {
			custByCluster[c.Cluster] = append(custByCluster[c.Cluster], c)
		}
	}

	txByCluster := map[int][]dataset.Transaction{}
	for _, tx := range txs {
		if tx.Cluster != dataset.Unclustered {
			txByCluster[tx.Cluster] = append(txByCluster[tx.Cluster], tx)
		}
	}

	var ids []int

	for id := range custByCluster {
		ids = append(ids, id)
	}

	for id := range txByCluster {
		if _, ok := custByCluster[id]; !ok {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)

	out := make([]ClusterSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, summarise(id, custByCluster[id], txByCluster[id]))
	}

	return out
}

func summarise(id int, customers []dataset.Customer, txs []dataset.Transaction) ClusterSummary {
	s := ClusterSummary{
		Cluster:      id,
		Customers:    len(customers),
		Transactions: len(txs),
		TypeShare:    map[category.Type]decimal.Decimal{},
	}

	if ages, ok := Ages(customers); ok {
		s.MeanAge = ages.Mean
	}

	if gens := GenerationDistribution(customers); len(gens) > 0 {
		s.DominantGeneration = dataset.Generation(gens[0].Key)
	}

	if cats := CategoryCounts(txs); len(cats) > 0 {
		s.TopCategory = cats[0].Category
	}

	var m mean
	for _, tx := range txs {
		m.add(tx.Amount)
	}

	s.TotalAmount = m.sum.Round(2)
	s.MeanAmount = m.rounded()

	if m.sum.IsZero() {
		return s
	}

	hundred := decimal.NewFromInt(100)
	for _, tt := range TypeTotals(txs) {
		s.TypeShare[category.Type(tt.Category)] = tt.Total.Mul(hundred).Div(m.sum).Round(1)
	}

	return s
}
