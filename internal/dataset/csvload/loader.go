package csvload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

// Loader reads the two extracts from disk.
type Loader struct {
	customersPath    string
	transactionsPath string
}

func New(customersPath, transactionsPath string) *Loader {
	return &Loader{
		customersPath:    customersPath,
		transactionsPath: transactionsPath,
	}
}

// Load reads both files concurrently and builds a snapshot.
func (l *Loader) Load(ctx context.Context) (*dataset.Snapshot, error) {
	var (
		customers    []dataset.Customer
		transactions []dataset.Transaction
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		customers, err = loadFile(ctx, l.customersPath, ParseCustomers)

		return err
	})

	g.Go(func() error {
		var err error

		transactions, err = loadFile(ctx, l.transactionsPath, ParseTransactions)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := dataset.NewSnapshot(customers, transactions)
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	clusters, generations := snap.Unlabelled()
	if clusters > 0 {
		slog.Warn("transactions without a cluster label", "count", clusters)
	}

	if generations > 0 {
		slog.Warn("transactions without a generation are left out of the pivots", "count", generations)
	}

	if unknown := snap.UnknownCategories(); len(unknown) > 0 {
		slog.Warn("categories outside the vocabulary are classified as Others", "categories", unknown)
	}

	slog.Info("loaded extracts",
		"snapshot", snap.ID,
		"customers", snap.CustomerCount(),
		"transactions", snap.TransactionCount(),
	)

	return snap, nil
}

func loadFile[T any](ctx context.Context, path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return rows, nil
}
