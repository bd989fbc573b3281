package csvload

import "strings"

// column describes one logical field and the header spellings it may
// appear under in an extract.
type column struct {
	name     string
	aliases  []string
	required bool
}

var transactionColumns = []column{
	{name: colAmount, aliases: []string{"amt", "amount"}, required: true},
	{name: colCategory, aliases: []string{"category"}, required: true},
	{name: colTime, aliases: []string{"trans_datetime", "trans_date_trans_time", "timestamp"}, required: true},
	{name: colYear, aliases: []string{"year", "trans_year"}},
	{name: colMonth, aliases: []string{"month", "trans_month"}},
	{name: colGeneration, aliases: []string{"generation"}},
	{name: colCluster, aliases: []string{"cluster", "label", "cluster_label"}},
	{name: colCard, aliases: []string{"cc_num", "card_number"}},
}

var customerColumns = []column{
	{name: colGender, aliases: []string{"gender"}, required: true},
	{name: colGeneration, aliases: []string{"generation"}, required: true},
	{name: colCity, aliases: []string{"city"}, required: true},
	{name: colAge, aliases: []string{"age"}, required: true},
	{name: colCluster, aliases: []string{"cluster", "label", "cluster_label"}},
	{name: colCard, aliases: []string{"cc_num", "card_number"}},
}

const (
	colAmount     = "amount"
	colCategory   = "category"
	colTime       = "time"
	colYear       = "year"
	colMonth      = "month"
	colGeneration = "generation"
	colCluster    = "cluster"
	colCard       = "card"
	colGender     = "gender"
	colCity       = "city"
	colAge        = "age"
)

// colIndex maps logical column names to their position in a row.
type colIndex map[string]int

// resolveHeader matches a header row against the column set. It returns the
// names of required columns that could not be found.
func resolveHeader(header []string, cols []column) (colIndex, []string) {
	positions := make(map[string]int, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, dup := positions[name]; name != "" && !dup {
			positions[name] = i
		}
	}

	idx := make(colIndex, len(cols))

	var missing []string

	for _, c := range cols {
		found := false

		for _, alias := range c.aliases {
			if i, ok := positions[alias]; ok {
				idx[c.name] = i
				found = true

				break
			}
		}

		if !found && c.required {
			missing = append(missing, c.aliases[0])
		}
	}

	return idx, missing
}

// value returns the trimmed cell for a logical column, or "" when the column
// is absent or the row is short.
func (c colIndex) value(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

func (c colIndex) has(name string) bool {
	_, ok := c[name]
	return ok
}
