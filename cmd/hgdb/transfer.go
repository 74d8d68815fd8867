package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hgdb/internal/service"
	"hgdb/internal/watcher"
)

func newImportCmd(flags *globalFlags, a *app) *cobra.Command {
	var (
		format   string
		strategy string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import hyperedges from a JSON or YAML hypergraph document",
		Long: `Import every hyperedge in a hypergraph document.

The whole document is validated before anything is written. With
--strategy=replace, stored hyperedges missing from the document are deleted.`,
		Example: `  hgdb import social.yaml
  hgdb import dump.json --strategy replace`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&format, "format", "", "document format, json or yaml (default: from extension)")
	cmd.Flags().StringVar(&strategy, "strategy", service.StrategyMerge, "merge or replace")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and re-import whenever the file changes")

	cmd.RunE = withApp(flags, a, true, func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if format == "" {
			format = formatFromPath(path)
		}

		importFile := func(ctx context.Context) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := a.edges.ImportFrom(ctx, format, f, strategy)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), flags.output, result)
		}

		if err := importFile(cmd.Context()); err != nil {
			return err
		}
		if !watch {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := watcher.New(path, func(ctx context.Context) {
			if err := importFile(ctx); err != nil {
				a.logger.Error("re-import failed", zap.String("path", path), zap.Error(err))
			}
		}, a.logger)
		if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	return cmd
}

func newExportCmd(flags *globalFlags, a *app) *cobra.Command {
	var (
		format string
		file   string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored hyperedges as a hypergraph document",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&format, "format", "", "document format, json or yaml (default: from --file, else yaml)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&name, "name", "", "hypergraph name")

	cmd.RunE = withApp(flags, a, true, func(cmd *cobra.Command, _ []string) error {
		if format == "" {
			format = "yaml"
			if file != "" {
				format = formatFromPath(file)
			}
		}

		if file == "" {
			return a.edges.ExportTo(cmd.Context(), format, name, cmd.OutOrStdout())
		}

		f, err := os.Create(file)
		if err != nil {
			return err
		}
		if err := a.edges.ExportTo(cmd.Context(), format, name, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
	return cmd
}

// formatFromPath guesses a document format from the file extension
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}
