// Package cmd provides the CLI commands for the text indexer.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-text-indexer/config"
	internalErrors "github.com/gcbaptista/go-text-indexer/internal/errors"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath    string
	documentsDir  string
	degree        int
	snippetWindow int
	logLevel      string
	logFormat     string
}

// NewRootCmd creates the root command for the text-indexer CLI.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "text-indexer",
		Short: "Inverted index and B-tree term lookup over a directory of text files",
		Long: `text-indexer loads every text document in a directory, builds an inverted
index of its words and keeps the distinct terms in a B-tree.

Queries are single terms. Use 'serve' for the HTTP API or 'console' for
the interactive terminal.`,
		Version:       Version,
		SilenceUsage:  true,
	}
	cmd.SetVersionTemplate("text-indexer version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a YAML settings file")
	cmd.PersistentFlags().StringVar(&flags.documentsDir, "documents-dir", "", "Directory of documents to index")
	cmd.PersistentFlags().IntVar(&flags.degree, "degree", 0, "B-tree minimum degree t (at least 2)")
	cmd.PersistentFlags().IntVar(&flags.snippetWindow, "snippet-window", 0, "Characters of context on each side of a match")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newConsoleCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadSettings reads the config file and environment, then applies the
// flags the user set explicitly.
func loadSettings(cmd *cobra.Command, flags *rootFlags) (config.Settings, error) {
	settings, err := config.Load(flags.configPath)
	if err != nil {
		return config.Settings{}, err
	}

	changed := cmd.Flags().Changed
	if changed("documents-dir") {
		settings.Index.DocumentsDir = flags.documentsDir
	}
	if changed("degree") {
		settings.Index.Degree = flags.degree
	}
	if changed("snippet-window") {
		settings.Index.SnippetWindow = flags.snippetWindow
	}
	if changed("log-level") {
		settings.Logging.Level = flags.logLevel
	}
	if changed("log-format") {
		settings.Logging.Format = flags.logFormat
	}
	if changed("port") {
		port, err := cmd.Flags().GetInt("port")
		if err != nil {
			return config.Settings{}, fmt.Errorf("failed to read --port: %w", err)
		}
		settings.Server.Port = port
	}

	if problems := settings.Validate(); len(problems) > 0 {
		return config.Settings{}, internalErrors.NewSettingsError(problems)
	}
	return settings, nil
}
