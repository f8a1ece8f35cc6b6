// Package commands implements the CLI commands of the envi tool.
package commands

import (
	"io"
	"log/slog"

	"github.com/pavdpr/envi/internal/config"
	"github.com/pavdpr/envi/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// cfg is loaded before any subcommand runs.
var (
	cfg       *config.Config
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "envi",
	Short: "Inspect and convert ENVI raster images",
	Long: `envi reads and writes ENVI images: a plain-text header file paired with a
raw binary pixel file in BSQ, BIL or BIP interleave.

Use "envi [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")

		var err error
		cfg, err = config.Load(path, cmd.Flags())
		if err != nil {
			return err
		}
		logCloser, err = logger.Init(cfg.Log)
		if err != nil {
			return err
		}
		slog.Debug("configuration loaded", "log_level", cfg.Log.Level, "clip", cfg.Quicklook.Clip)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The log output is released whether or not the command failed.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeLog(); err == nil {
		err = cerr
	}
	return err
}

func closeLog() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Configuration file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "WARN", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text|json)")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Log output (stdout|stderr|file path)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(quicklookCmd)
}
