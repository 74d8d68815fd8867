package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hgdb/internal/config"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with defaults",
		Long: `Write a config file populated with defaults.

The file goes to --config when given, otherwise to the XDG config directory.
--db-path sets db_path, which has no default.`,
		Example: `  hgdb config init --db-path ~/.local/share/hgdb/hgdb.db`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := flags.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
			}

			cfg := config.DefaultConfig()
			config.WithDBPath(flags.dbPath)(cfg)
			config.WithLogLevel(flags.logLevel)(cfg)
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := []config.Override{
				config.WithDBPath(flags.dbPath),
				config.WithLogLevel(flags.logLevel),
			}
			var (
				cfg  *config.Config
				path string
				err  error
			)
			if flags.configPath != "" {
				cfg, path, err = config.LoadFromPath(flags.configPath, overrides...)
			} else {
				cfg, path, err = config.Load(overrides...)
			}
			if err != nil {
				return err
			}
			if path != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "# loaded from %s\n", path)
			}
			return render(cmd.OutOrStdout(), flags.output, cfg)
		},
	}

	cmd.AddCommand(initCmd, show)
	return cmd
}
