package report

import (
	"github.com/MrJamesThe3rd/aacdash/internal/aggregate"
	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/report"
)

type pageResponse struct {
	Slug  report.Page `json:"slug"`
	Title string      `json:"title"`
}

type categoryResponse struct {
	Code     string        `json:"code"`
	Label    string        `json:"label"`
	Type     category.Type `json:"type"`
	Position int           `json:"position"`
}

// pivotResponse keeps absent cells as null so they are never read as zero.
type pivotResponse struct {
	Columns []string         `json:"columns"`
	Rows    []pivotRowResult `json:"rows"`
}

type pivotRowResult struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Values []*int64 `json:"values"`
}

type monthlyResponse struct {
	Year     int   `json:"year"`
	Month    int   `json:"month"`
	Physical int64 `json:"physical"`
	Digital  int64 `json:"digital"`
}

type clusterResponse struct {
	Cluster            int                `json:"cluster"`
	Customers          int                `json:"customers"`
	Transactions       int                `json:"transactions"`
	TotalAmount        string             `json:"total_amount"`
	MeanAmount         int64              `json:"mean_amount"`
	MeanAge            int64              `json:"mean_age"`
	DominantGeneration string             `json:"dominant_generation,omitempty"`
	TopCategory        string             `json:"top_category,omitempty"`
	TypeShare          map[string]float64 `json:"type_share"`
}

func toPivotResponse(p aggregate.Pivot, label func(string) (string, error)) (pivotResponse, error) {
	resp := pivotResponse{Columns: p.Columns, Rows: make([]pivotRowResult, 0, len(p.Rows))}
	if resp.Columns == nil {
		resp.Columns = []string{}
	}

	for _, r := range p.Rows {
		name, err := label(r)
		if err != nil {
			return pivotResponse{}, err
		}

		row := pivotRowResult{Key: r, Label: name, Values: make([]*int64, len(p.Columns))}

		for i, c := range p.Columns {
			if v, ok := p.Cell(r, c); ok {
				row.Values[i] = new(v)
			}
		}

		resp.Rows = append(resp.Rows, row)
	}

	return resp, nil
}

func toMonthlyResponse(points []aggregate.MonthlyPoint) []monthlyResponse {
	resp := make([]monthlyResponse, len(points))
	for i, p := range points {
		resp[i] = monthlyResponse{Year: p.Year, Month: p.Month, Physical: p.Physical, Digital: p.Digital}
	}

	return resp
}

func toClusterResponse(c aggregate.ClusterSummary) clusterResponse {
	resp := clusterResponse{
		Cluster:            c.Cluster,
		Customers:          c.Customers,
		Transactions:       c.Transactions,
		TotalAmount:        c.TotalAmount.StringFixed(2),
		MeanAmount:         c.MeanAmount,
		MeanAge:            c.MeanAge,
		DominantGeneration: string(c.DominantGeneration),
		TopCategory:        c.TopCategory,
		TypeShare:          make(map[string]float64, len(c.TypeShare)),
	}

	for t, share := range c.TypeShare {
		resp.TypeShare[string(t)] = share.InexactFloat64()
	}

	return resp
}
