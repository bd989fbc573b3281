package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/aacdash/internal/app"
	"github.com/MrJamesThe3rd/aacdash/internal/config"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset/csvload"
)

func newImportCmd(cfg *config.Config) *cobra.Command {
	var customers, transactions string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the database tables with the CSV extracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if customers == "" {
				customers = cfg.Data.CustomersPath
			}

			if transactions == "" {
				transactions = cfg.Data.TransactionsPath
			}

			snap, err := csvload.New(customers, transactions).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading extracts: %w", err)
			}

			s, db, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := s.Replace(cmd.Context(), snap); err != nil {
				return err
			}

			slog.Info("import complete", "driver", cfg.DB.Driver, "snapshot", snap.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d customers and %d transactions\n",
				snap.CustomerCount(), snap.TransactionCount())

			return nil
		},
	}

	cmd.Flags().StringVar(&customers, "customers", "", "customers CSV (default CUSTOMERS_CSV)")
	cmd.Flags().StringVar(&transactions, "transactions", "", "transactions CSV (default TRANSACTIONS_CSV)")

	return cmd
}
