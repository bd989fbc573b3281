package report

// NoData marks a table cell whose combination never occurred.
const NoData = "no data"

// Content is a rendered page: prose, tables and charts in reading order.
type Content struct {
	Page     Page      `json:"page"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body,omitempty"`
	Table   *Table `json:"table,omitempty"`
	Chart   *Chart `json:"chart,omitempty"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Chart is a horizontal bar chart of labelled values.
type Chart struct {
	Unit string `json:"unit"`
	Bars []Bar  `json:"bars"`
}

type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
