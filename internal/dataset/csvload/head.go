package csvload

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	enc "github.com/MrJamesThe3rd/aacdash/internal/encoding"
)

// Head returns the header and up to n data rows of any CSV, unparsed. It is
// used to preview the uncleaned extract.
func Head(r io.Reader, n int) ([]string, [][]string, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}

	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	rows := make([][]string, 0, max(n, 0))

	for len(rows) < n {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}

		rows = append(rows, slices.Clone(row))
	}

	return header, rows, nil
}
