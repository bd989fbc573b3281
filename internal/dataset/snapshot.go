package dataset

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
)

var ErrEmptyTable = errors.New("table has no rows")

//go:generate mockgen -source=snapshot.go -destination=loader_mock.go -package=dataset
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Snapshot is an immutable view over both extracts. Accessors hand out
// copies so callers cannot mutate the loaded tables.
type Snapshot struct {
	ID       uuid.UUID
	LoadedAt time.Time

	customers    []Customer
	transactions []Transaction
}

// NewSnapshot takes ownership of copies of the given rows. Transactions get
// their category type, year and month derived when those are unset. A
// transaction without a cluster or generation takes them from the customer
// with the same card number.
func NewSnapshot(customers []Customer, transactions []Transaction) *Snapshot {
	byCard := make(map[string]Customer, len(customers))
	for _, c := range customers {
		if c.CardNumber != "" {
			byCard[c.CardNumber] = c
		}
	}

	txs := slices.Clone(transactions)
	for i := range txs {
		txs[i].CategoryType = category.Classify(txs[i].Category)

		if c, ok := byCard[txs[i].CardNumber]; ok && txs[i].CardNumber != "" {
			if txs[i].Cluster == Unclustered {
				txs[i].Cluster = c.Cluster
			}

			if txs[i].Generation == "" {
				txs[i].Generation = c.Generation
			}
		}

		if txs[i].Year == 0 && !txs[i].Time.IsZero() {
			txs[i].Year = txs[i].Time.Year()
		}

		if txs[i].Month == 0 && !txs[i].Time.IsZero() {
			txs[i].Month = int(txs[i].Time.Month())
		}
	}

	return &Snapshot{
		ID:           uuid.New(),
		LoadedAt:     time.Now(),
		customers:    slices.Clone(customers),
		transactions: txs,
	}
}

func (s *Snapshot) Customers() []Customer {
	return slices.Clone(s.customers)
}

func (s *Snapshot) Transactions() []Transaction {
	return slices.Clone(s.transactions)
}

func (s *Snapshot) CustomerCount() int    { return len(s.customers) }
func (s *Snapshot) TransactionCount() int { return len(s.transactions) }

// Validate reports ErrEmptyTable when either table is empty.
func (s *Snapshot) Validate() error {
	if len(s.customers) == 0 {
		return fmt.Errorf("customers: %w", ErrEmptyTable)
	}

	if len(s.transactions) == 0 {
		return fmt.Errorf("transactions: %w", ErrEmptyTable)
	}

	return nil
}

// Unlabelled counts the transactions still missing a cluster label and those
// still missing a generation after the customer join.
func (s *Snapshot) Unlabelled() (clusters, generations int) {
	for _, tx := range s.transactions {
		if tx.Cluster == Unclustered {
			clusters++
		}

		if tx.Generation == "" {
			generations++
		}
	}

	return clusters, generations
}

// UnknownCategories lists the distinct category codes outside the known
// vocabulary. Such rows are classified as Others.
func (s *Snapshot) UnknownCategories() []string {
	seen := map[string]struct{}{}

	for _, tx := range s.transactions {
		if !category.Known(tx.Category) {
			seen[tx.Category] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}

	slices.Sort(out)

	return out
}
