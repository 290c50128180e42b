package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-text-indexer/internal/console"
	"github.com/gcbaptista/go-text-indexer/internal/engine"
	"github.com/gcbaptista/go-text-indexer/internal/logger"
)

func newConsoleCmd(flags *rootFlags) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Index the documents directory and search it interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}
			// Logs go to stderr so they do not interleave with the session.
			logger.SetupWriter(cmd.ErrOrStderr(), settings.Logging.Level, settings.Logging.Format)

			eng, err := engine.NewEngine(settings.Index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			c := console.New(eng, cmd.InOrStdin(), out, console.Options{
				DocumentsDir: settings.Index.DocumentsDir,
				Extensions:   settings.Index.Extensions,
				TopTerms:     settings.Index.TopTerms,
				NoColor:      noColor || console.DetectNoColor(out),
			})
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")

	return cmd
}
