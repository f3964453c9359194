package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"badminqueue/internal/queue"
)

func printMatch(w io.Writer, m queue.Match) {
	fmt.Fprintf(w, "Match %d  court %d  %s  [%s]  cost %d\n", m.Number, m.Court, m.Roster, m.Status, m.Cost)
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", queue.ErrUnknownMatch, s)
	}
	return n, nil
}

func newNextCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Generate the next match as a draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			sess := opts.app.Session()
			if dryRun {
				m, sel, err := sess.Preview(ctxOf(cmd))
				if err != nil {
					return fmt.Errorf("preview: %w", err)
				}
				if opts.asJSON {
					return printJSON(out, map[string]any{"match": m, "score": sel.Score, "order": sel.Order, "candidates": sel.Candidates})
				}
				printMatch(out, m)
				fmt.Fprintf(out, "fairness %d  matchup %d  candidates %d\n", sel.Score.Fairness, sel.Score.Matchup, sel.Candidates)
				return nil
			}
			m, err := sess.Next(ctxOf(cmd))
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			if opts.asJSON {
				return printJSON(out, m)
			}
			printMatch(out, m)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the next match without recording it")
	return cmd
}

func newStartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start <match>",
		Short: "Start a drafted match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			m, err := opts.app.Session().Start(ctxOf(cmd), n)
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), m)
			}
			printMatch(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <match> <p1> <p2> <p3> <p4>",
		Short: "Replace the roster of a match",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			m, err := opts.app.Session().Edit(ctxOf(cmd), n, args[1:])
			if err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), m)
			}
			printMatch(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

func newMatchesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "matches",
		Short: "List matches in the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			matches := opts.app.Session().Matches()
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return printJSON(out, matches)
			}
			if len(matches) == 0 {
				fmt.Fprintln(out, "No matches yet.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MATCH\tCOURT\tSTATUS\tCOST\tROSTER")
			for _, m := range matches {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%s\n", m.Number, m.Court, m.Status, m.Cost, m.Roster)
			}
			return tw.Flush()
		},
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop every match and start a new session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset discards %d matches; pass --yes to confirm", len(opts.app.Session().Matches()))
			}
			if err := opts.app.Session().Reset(ctxOf(cmd)); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New session %s\n", opts.app.Session().Settings().SessionID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
