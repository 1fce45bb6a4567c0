package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"trivia-api/internal/config"
	"trivia-api/internal/data"
)

var (
	dbDriver string
	dbDSN    string
)

var rootCmd = &cobra.Command{
	Use:   "triviactl",
	Short: "Administer the trivia question bank database",
	Long: `triviactl applies schema migrations and manages categories for the
trivia API. Connection settings come from the same config file and TRIVIA_
environment variables as the server, and can be overridden with flags.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB connects using the loaded config with any flag overrides applied.
func openDB() (*sqlx.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dbDriver != "" {
		cfg.DB.Driver = dbDriver
	}
	if dbDSN != "" {
		cfg.DB.DSN = dbDSN
	}
	return data.NewDB(cfg.DB)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "", "database driver (sqlite3, sqlite, mysql, pgx)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "dsn", "", "database connection string")
}
