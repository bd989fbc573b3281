// Package app wires configuration into a ready report service. The API,
// TUI and CLI entrypoints share it.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/MrJamesThe3rd/aacdash/internal/config"
	"github.com/MrJamesThe3rd/aacdash/internal/database"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset/csvload"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset/store"
	"github.com/MrJamesThe3rd/aacdash/internal/report"
)

// RawPreviewRows is how many rows of the uncleaned extract are shown.
const RawPreviewRows = 10

// OpenStore migrates and opens the configured database.
func OpenStore(cfg *config.Config) (*store.Store, *sql.DB, error) {
	dsn := cfg.ConnectionString()

	db, err := database.New(cfg.DB.Driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Migrate(cfg.DB.Driver, dsn); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}

	return store.New(db, cfg.DB.Driver), db, nil
}

// Loader returns the snapshot source named by DATA_SOURCE. The returned
// closer releases any database handle.
func Loader(cfg *config.Config) (dataset.Loader, func(), error) {
	if cfg.Data.Source != config.SourceDatabase {
		return csvload.New(cfg.Data.CustomersPath, cfg.Data.TransactionsPath), func() {}, nil
	}

	s, db, err := OpenStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	return s, func() { db.Close() }, nil
}

// RawPreview reads the head of the uncleaned extract. A missing file is not
// an error; the Methodology page then omits the preview.
func RawPreview(path string) (*report.Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("raw extract not found, skipping preview", "path", path)
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("opening raw extract: %w", err)
	}
	defer f.Close()

	header, rows, err := csvload.Head(f, RawPreviewRows)
	if err != nil {
		return nil, fmt.Errorf("reading raw extract: %w", err)
	}

	if header == nil {
		return nil, nil
	}

	return &report.Table{Columns: header, Rows: rows}, nil
}

// Report loads the configured snapshot and builds the report service.
func Report(ctx context.Context, cfg *config.Config) (*report.Service, error) {
	loader, closeLoader, err := Loader(cfg)
	if err != nil {
		return nil, err
	}
	defer closeLoader()

	preview, err := RawPreview(cfg.Data.RawPath)
	if err != nil {
		return nil, err
	}

	return report.Load(ctx, loader, report.Options{
		Years:      cfg.Data.Years,
		TopCities:  cfg.Data.TopCities,
		RawPreview: preview,
	})
}
