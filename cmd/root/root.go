// Package root contains the root command for the application
package root

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tmori/kessan-cli/internal/config"
	"tmori/kessan-cli/internal/exporter"
	"tmori/kessan-cli/internal/query"
	"tmori/kessan-cli/internal/store"
)

// CommonFlags holds the flags shared by the query commands.
type CommonFlags struct {
	Segments []string
	Account  string
	Output   string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the resolved configuration after PersistentPreRun.
	Cfg = &config.Config{}

	// DBPath is the store location, settable via --db or config.
	DBPath string

	// Delimiter is the CSV output field separator.
	Delimiter string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "kessan",
		Short: "A CLI tool to load, transform and analyze monthly accounting actuals.",
		Long: `kessan maintains a local SQLite store of denormalized accounting facts
(year, month, org unit, customer, account, amount) and answers the
aggregation queries a results dashboard needs: monthly trends, segment
and industry composition, customer rankings and yearly summaries.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to kessan!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Failed to load configuration")
			}
			Log = config.ConfigureLoggingFromConfig(cfg)
			Cfg = cfg

			store.SetLogger(Log)
			exporter.SetLogger(Log)
			query.SetLogger(Log)

			// Flags beat config file values.
			if DBPath == "" {
				DBPath = cfg.Store.Path
			}
			if Delimiter == "" {
				Delimiter = cfg.CSV.Delimiter
			}
			if Delimiter != "" {
				exporter.SetDelimiter([]rune(Delimiter)[0])
			}
			exporter.SetIncludeBOM(cfg.CSV.IncludeBOM)
		},
	}

	// SharedFlags are the filter flags accessible to all query commands.
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&DBPath, "db", "", "Path to the SQLite store (default from config)")
	Cmd.PersistentFlags().StringVar(&Delimiter, "delimiter", "", "CSV output delimiter (default ',')")
}

// OpenStore opens the configured SQLite store and ensures the schema
// exists, terminating on failure. A fresh store answers queries with
// empty results rather than missing-table errors.
func OpenStore() *store.Store {
	s, err := store.Open(DBPath)
	if err != nil {
		Log.WithError(err).Fatal("Failed to open store")
	}
	if err := s.EnsureSchema(context.Background()); err != nil {
		Log.WithError(err).Fatal("Failed to prepare schema")
	}
	return s
}
