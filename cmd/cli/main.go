package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/aacdash/internal/config"
	"github.com/MrJamesThe3rd/aacdash/internal/logging"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:   "aacdash",
		Short: "Load and query the AAC spending extracts",
		Long: `aacdash imports the cleaned customer and transaction extracts into a
database and prints the spending pivots behind the dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}

			cfg = *loaded

			return logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
		},
	}

	root.AddCommand(newImportCmd(&cfg), newPivotCmd(&cfg))

	return root
}
