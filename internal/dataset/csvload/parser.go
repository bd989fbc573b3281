package csvload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
	enc "github.com/MrJamesThe3rd/aacdash/internal/encoding"
)

var ErrMissingColumns = errors.New("missing required columns")

var timeLayouts = []string{
	time.DateTime,
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseTransactions reads a transactions extract.
func ParseTransactions(r io.Reader) ([]dataset.Transaction, error) {
	var txs []dataset.Transaction

	err := readRows(r, transactionColumns, func(cols colIndex, row []string) error {
		tx, err := parseTransaction(cols, row)
		if err != nil {
			return err
		}

		txs = append(txs, tx)

		return nil
	})

	return txs, err
}

// ParseCustomers reads a customers extract.
func ParseCustomers(r io.Reader) ([]dataset.Customer, error) {
	var customers []dataset.Customer

	err := readRows(r, customerColumns, func(cols colIndex, row []string) error {
		c, err := parseCustomer(cols, row)
		if err != nil {
			return err
		}

		customers = append(customers, c)

		return nil
	})

	return customers, err
}

// readRows decodes the input to UTF-8, resolves the header against cols and
// hands every non-blank data row to fn. Errors are prefixed with the line.
func readRows(r io.Reader, cols []column, fn func(colIndex, []string) error) error {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return fmt.Errorf("%w: empty file", ErrMissingColumns)
	}

	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	idx, missing := resolveHeader(header, cols)
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return fmt.Errorf("read csv: %w", err)
		}

		if blank(row) {
			continue
		}

		line, _ := reader.FieldPos(0)
		if err := fn(idx, row); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func parseTransaction(cols colIndex, row []string) (dataset.Transaction, error) {
	amount, err := parseAmount(cols.value(row, colAmount))
	if err != nil {
		return dataset.Transaction{}, fmt.Errorf("amount: %w", err)
	}

	code := cols.value(row, colCategory)
	if code == "" {
		return dataset.Transaction{}, errors.New("missing category")
	}

	ts, err := parseTime(cols.value(row, colTime))
	if err != nil {
		return dataset.Transaction{}, fmt.Errorf("timestamp: %w", err)
	}

	tx := dataset.Transaction{
		Amount:     amount,
		Category:   code,
		Time:       ts,
		Year:       ts.Year(),
		Month:      int(ts.Month()),
		Generation: dataset.Generation(cols.value(row, colGeneration)),
		Cluster:    dataset.Unclustered,
		CardNumber: cols.value(row, colCard),
	}

	if cols.has(colYear) {
		if tx.Year, err = parseInt(cols.value(row, colYear)); err != nil {
			return dataset.Transaction{}, fmt.Errorf("year: %w", err)
		}
	}

	if cols.has(colMonth) {
		if tx.Month, err = parseInt(cols.value(row, colMonth)); err != nil {
			return dataset.Transaction{}, fmt.Errorf("month: %w", err)
		}

		if tx.Month < 1 || tx.Month > 12 {
			return dataset.Transaction{}, fmt.Errorf("month %d out of range", tx.Month)
		}
	}

	if cols.has(colCluster) {
		if tx.Cluster, err = parseInt(cols.value(row, colCluster)); err != nil {
			return dataset.Transaction{}, fmt.Errorf("cluster: %w", err)
		}
	}

	return tx, nil
}

func parseCustomer(cols colIndex, row []string) (dataset.Customer, error) {
	age, err := parseInt(cols.value(row, colAge))
	if err != nil {
		return dataset.Customer{}, fmt.Errorf("age: %w", err)
	}

	c := dataset.Customer{
		CardNumber: cols.value(row, colCard),
		Gender:     dataset.Gender(strings.ToUpper(cols.value(row, colGender))),
		Generation: dataset.Generation(cols.value(row, colGeneration)),
		Age:        age,
		City:       cols.value(row, colCity),
		Cluster:    dataset.Unclustered,
	}

	if cols.has(colCluster) {
		if c.Cluster, err = parseInt(cols.value(row, colCluster)); err != nil {
			return dataset.Customer{}, fmt.Errorf("cluster: %w", err)
		}
	}

	return c, nil
}

// parseAmount accepts plain decimals as well as "$1,234.56".
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(s), "$")
	clean = strings.ReplaceAll(clean, ",", "")

	if clean == "" {
		return decimal.Decimal{}, errors.New("empty value")
	}

	return decimal.NewFromString(clean)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty value")
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised format %q", s)
}

// parseInt also accepts integral floats such as "2020.0", which dataframe
// exports produce for integer columns that once held nulls.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}

	if f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}

	return int(f), nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
