package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"badminqueue/internal/app"
	"badminqueue/internal/config"
	"badminqueue/internal/logging"
)

type rootOptions struct {
	dataDir   string
	logLevel  string
	logFormat string
	asJSON    bool

	app *app.App
}

// NewRootCmd creates the root cobra command for queuectl.
func NewRootCmd() *cobra.Command {
	_ = godotenv.Load()
	env := config.FromEnv()
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "queuectl",
		Short: "Fair court rotation for pick-up badminton",
		Long: "queuectl generates, starts and corrects matches against a badminqueue data dir.\n" +
			"Stop the server first: both write the same journal.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLoggerWithWriter(logging.ParseLevel(opts.logLevel), opts.logFormat, cmd.ErrOrStderr())
			cfg := env
			if cmd.Flags().Changed("data-dir") {
				cfg = env.ForDataDir(opts.dataDir)
			}
			a, err := app.New(ctxOf(cmd), cfg, logger.With(zap.String("cli", cmd.Name())))
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.app != nil {
				opts.app.Close()
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", env.DataDir, "Data directory (or QUEUE_DATA_DIR env)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print JSON instead of tables")

	root.AddCommand(
		newNextCmd(opts),
		newStartCmd(opts),
		newEditCmd(opts),
		newMatchesCmd(opts),
		newSummaryCmd(opts),
		newPlayersCmd(opts),
		newTuneCmd(opts),
		newResetCmd(opts),
		newCheckCmd(opts),
	)

	return root
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
