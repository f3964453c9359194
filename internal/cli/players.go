package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"badminqueue/internal/configstore"
	"badminqueue/internal/queue"
)

func newPlayersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Show or replace the roster registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.app.Config().GetConfig(ctxOf(cmd))
			if err != nil {
				return err
			}
			return printRegistry(cmd.OutOrStdout(), opts, cfg)
		},
	}
	cmd.AddCommand(newPlayersSetCmd(opts), newPlayersLoadCmd(opts))
	return cmd
}

func printRegistry(w io.Writer, opts *rootOptions, cfg configstore.Config) error {
	if opts.asJSON {
		return printJSON(w, cfg)
	}
	fmt.Fprintf(w, "Courts: %d\n", cfg.Courts)
	fmt.Fprintf(w, "Players (%d): %s\n", len(cfg.Players), strings.Join(cfg.Players, ", "))
	return nil
}

func newPlayersSetCmd(opts *rootOptions) *cobra.Command {
	var courts int
	cmd := &cobra.Command{
		Use:   "set <names...>",
		Short: "Replace the players (names or comma lists)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			cur, err := opts.app.Config().GetConfig(ctx)
			if err != nil {
				return err
			}
			next := configstore.Config{
				Players: queue.ParsePlayerList(strings.Join(args, ",")),
				Courts:  cur.Courts,
			}
			if cmd.Flags().Changed("courts") {
				next.Courts = courts
			}
			saved, err := opts.app.Config().UpdateConfig(ctx, next)
			if err != nil {
				return fmt.Errorf("save players: %w", err)
			}
			return printRegistry(cmd.OutOrStdout(), opts, saved)
		},
	}
	cmd.Flags().IntVar(&courts, "courts", 1, "Number of courts")
	return cmd
}

func newPlayersLoadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file.yaml>",
		Short: "Replace the registry from a YAML roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			loaded, err := configstore.LoadRosterFile(args[0])
			if err != nil {
				return err
			}
			if loaded.Courts == 0 {
				cur, err := opts.app.Config().GetConfig(ctx)
				if err != nil {
					return err
				}
				loaded.Courts = cur.Courts
			}
			saved, err := opts.app.Config().UpdateConfig(ctx, loaded)
			if err != nil {
				return fmt.Errorf("save players: %w", err)
			}
			return printRegistry(cmd.OutOrStdout(), opts, saved)
		},
	}
}

func newTuneCmd(opts *rootOptions) *cobra.Command {
	var (
		policy    string
		poolLimit int
	)
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Show or change the ledger policy and pool limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := opts.app.Session()
			cur := sess.Settings()
			if cmd.Flags().Changed("policy") || cmd.Flags().Changed("pool-limit") {
				if !cmd.Flags().Changed("policy") {
					policy = cur.LedgerPolicy
				}
				if !cmd.Flags().Changed("pool-limit") {
					poolLimit = cur.PoolLimit
				}
				var err error
				if cur, err = sess.UpdateTuning(ctxOf(cmd), policy, poolLimit); err != nil {
					return fmt.Errorf("tune: %w", err)
				}
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return printJSON(out, cur)
			}
			fmt.Fprintf(out, "Session: %s\nLedger policy: %s\nPool limit: %d\n", cur.SessionID, cur.LedgerPolicy, cur.PoolLimit)
			return nil
		},
	}
	cmd.Flags().StringVar(&policy, "policy", "staged", "Ledger the selector reads (staged, committed)")
	cmd.Flags().IntVar(&poolLimit, "pool-limit", 0, "Only consider the N fairest players (0 = all)")
	return cmd
}
