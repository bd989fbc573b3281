package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/aacdash/internal/database"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

// Store keeps the two extracts in SQL tables. It serves as a
// dataset.Loader and as the target of CSV imports.
type Store struct {
	db     *sql.DB
	driver string
}

func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// rebind turns ? placeholders into $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != database.DriverPostgres {
		return query
	}

	var sb strings.Builder

	n := 0

	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

func (s *Store) Load(ctx context.Context) (*dataset.Snapshot, error) {
	customers, err := s.listCustomers(ctx)
	if err != nil {
		return nil, err
	}

	transactions, err := s.listTransactions(ctx)
	if err != nil {
		return nil, err
	}

	snap := dataset.NewSnapshot(customers, transactions)
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *Store) listCustomers(ctx context.Context) ([]dataset.Customer, error) {
	query := `
		SELECT cc_num, gender, generation, age, city, cluster
		FROM customers
		ORDER BY row_num ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []dataset.Customer

	for rows.Next() {
		var (
			c               dataset.Customer
			gender, genName string
		)

		if err := rows.Scan(&c.CardNumber, &gender, &genName, &c.Age, &c.City, &c.Cluster); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		c.Gender = dataset.Gender(gender)
		c.Generation = dataset.Generation(genName)
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}

	return customers, nil
}

func (s *Store) listTransactions(ctx context.Context) ([]dataset.Transaction, error) {
	query := `
		SELECT cc_num, amount, category, trans_unix, year, month, generation, cluster
		FROM transactions
		ORDER BY row_num ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []dataset.Transaction

	for rows.Next() {
		var (
			tx                    dataset.Transaction
			amount, generationStr string
			unix                  int64
		)

		if err := rows.Scan(&tx.CardNumber, &amount, &tx.Category, &unix, &tx.Year, &tx.Month, &generationStr, &tx.Cluster); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing amount %q: %w", amount, err)
		}

		tx.Amount = amt
		tx.Time = time.Unix(unix, 0).UTC()
		tx.Generation = dataset.Generation(generationStr)
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

// Replace swaps the stored tables for the snapshot's rows in a single
// transaction. Amounts are stored as decimal text so no precision is lost.
func (s *Store) Replace(ctx context.Context, snap *dataset.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"transactions", "customers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := s.insertCustomers(ctx, tx, snap.Customers()); err != nil {
		return err
	}

	if err := s.insertTransactions(ctx, tx, snap.Transactions()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	return nil
}

func (s *Store) insertCustomers(ctx context.Context, tx *sql.Tx, customers []dataset.Customer) error {
	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO customers (row_num, cc_num, gender, generation, age, city, cluster)
		VALUES (?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("preparing customer insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range customers {
		if _, err := stmt.ExecContext(ctx, i, c.CardNumber, string(c.Gender), string(c.Generation), c.Age, c.City, c.Cluster); err != nil {
			return fmt.Errorf("inserting customer %d: %w", i, err)
		}
	}

	return nil
}

func (s *Store) insertTransactions(ctx context.Context, tx *sql.Tx, txs []dataset.Transaction) error {
	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO transactions (row_num, cc_num, amount, category, trans_unix, year, month, generation, cluster)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("preparing transaction insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txs {
		if _, err := stmt.ExecContext(ctx, i, t.CardNumber, t.Amount.String(), t.Category, t.Time.Unix(),
			t.Year, t.Month, string(t.Generation), t.Cluster); err != nil {
			return fmt.Errorf("inserting transaction %d: %w", i, err)
		}
	}

	return nil
}
