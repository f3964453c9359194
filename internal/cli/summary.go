package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"badminqueue/internal/queue"
)

var slotGlyph = map[queue.Slot]string{
	queue.SlotIdle:    ".",
	queue.SlotDrafted: "o",
	queue.SlotPlayed:  "x",
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show games played per player and match",
		Long:  "One row per player. Slots read left to right by match: x played, o drafted, . idle.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := opts.app.Session().Summary(ctxOf(cmd))
			if err != nil {
				return fmt.Errorf("summary: %w", err)
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return printJSON(out, sum)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PLAYER\tGAMES\tSLOTS")
			for _, p := range sum.Players {
				var b strings.Builder
				for _, s := range p.Slots {
					b.WriteString(slotGlyph[s])
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Player, p.TotalCommittedGames, b.String())
			}
			return tw.Flush()
		},
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Cross-check the ledgers against the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mismatches, err := opts.app.Session().Check(ctxOf(cmd))
			if err != nil {
				return fmt.Errorf("check: %w", err)
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				if err := printJSON(out, mismatches); err != nil {
					return err
				}
			} else {
				for _, m := range mismatches {
					fmt.Fprintf(out, "%s: ledger %d, journal %d\n", m.Key, m.Ledger, m.Journal)
				}
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("check: %d mismatches", len(mismatches))
			}
			if !opts.asJSON {
				fmt.Fprintln(out, "ok")
			}
			return nil
		},
	}
}
