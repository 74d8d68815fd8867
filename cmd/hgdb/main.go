// Command hgdb stores hypergraphs in an embedded SQLite file and derives
// their duals.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"hgdb/internal/config"
	"hgdb/internal/logger"
	"hgdb/internal/repository/sqlite"
	"hgdb/internal/service"
)

// app holds everything a command needs once configuration is loaded
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sqlite.DB
	bus    *service.EventBus
	edges  *service.EdgeService
	duals  *service.DualService
}

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	configPath string
	dbPath     string
	logLevel   string
	output     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var a app

	root := &cobra.Command{
		Use:   "hgdb",
		Short: "Hypergraph store with dual synthesis",
		Long: `hgdb stores hyperedges keyed by id in an embedded SQLite file.

It derives the dual of a stored hyperedge, builds node×hyperedge incidence
matrices and serves everything over an HTTP API.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default: search $HGDB_CONFIG, ./hgdb.yaml, XDG and /etc)")
	root.PersistentFlags().StringVar(&flags.dbPath, "db-path", "", "database file, overrides db_path")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", "json", "output format (json, yaml)")

	root.AddCommand(
		newServeCmd(flags, &a),
		newEdgeCmd(flags, &a),
		newDualCmd(flags, &a),
		newIncidenceCmd(flags, &a),
		newImportCmd(flags, &a),
		newExportCmd(flags, &a),
		newConfigCmd(flags),
	)
	return root
}

// withApp wraps a command body so it runs with an opened app
func withApp(flags *globalFlags, a *app, development bool, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd.Context(), flags, development); err != nil {
			return err
		}
		defer a.close()
		return run(cmd, args)
	}
}

// open loads configuration, builds the logger and opens the store
func (a *app) open(ctx context.Context, flags *globalFlags, development bool) error {
	overrides := []config.Override{
		config.WithDBPath(flags.dbPath),
		config.WithLogLevel(flags.logLevel),
	}

	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, _, err = config.LoadFromPath(flags.configPath, overrides...)
	} else {
		cfg, _, err = config.Load(overrides...)
	}
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if development && flags.logLevel == "" {
		level = "warn"
	}
	log, err := logger.New(level, development)
	if err != nil {
		return err
	}

	db, err := sqlite.Open(ctx, cfg.DBPath, log)
	if err != nil {
		return err
	}
	stores, err := service.OpenStores(ctx, db, cfg.Keyspaces, log)
	if err != nil {
		db.Close()
		return err
	}

	a.cfg = cfg
	a.logger = log
	a.db = db
	a.bus = service.NewEventBus()
	a.edges = service.NewEdgeService(stores, a.bus, log)
	a.duals = service.NewDualService(stores, a.bus, log)
	return nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// render writes v in the requested output format. YAML output goes through
// JSON first so field names match the stored records.
func render(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case "json", "":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
