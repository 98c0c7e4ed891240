package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsched/rsched/internal/guard"
)

var moveForce bool

var moveCmd = &cobra.Command{
	Use:   "move <event-id>",
	Short: "Reschedule an event after validating the new time",
	Long: `Validate a proposed new time and, if it passes every rule, patch the
event to the new window. A blocked move leaves the event untouched
unless --force is given.

Shares the --start/--end/--for/--tz flags with 'rsched check'.`,
	Args: cobra.ExactArgs(1),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)

	moveCmd.Flags().StringVar(&checkStart, "start", "", "proposed new start time (required)")
	moveCmd.Flags().StringVar(&checkEnd, "end", "", "proposed new end time")
	moveCmd.Flags().DurationVar(&checkFor, "for", 0, "duration instead of --end (e.g. 45m, 1h30m)")
	moveCmd.Flags().StringVar(&checkZone, "tz", "", "IANA time zone for interpreting times and notice arithmetic")
	moveCmd.Flags().BoolVar(&moveForce, "force", false, "apply the move even when rules are violated")
	moveCmd.MarkFlagRequired("start")
}

func runMove(cmd *cobra.Command, args []string) error {
	proposal, pol, err := buildProposal(cmd, args[0])
	if err != nil {
		return err
	}

	validator := guard.New(adapter, logger)
	violations, err := validator.ValidateReschedule(cmd.Context(), proposal, pol)
	if err != nil {
		return fmt.Errorf("validation aborted: %w", err)
	}

	printVerdict(proposal, violations)

	if len(violations) > 0 && !moveForce {
		cmd.SilenceUsage = true
		return fmt.Errorf("move blocked; pass --force to override")
	}
	if len(violations) > 0 {
		fmt.Println(dimStyle.Render("  --force given, applying anyway"))
	}

	updated, err := adapter.PatchEventTime(cmd.Context(), proposal.CalendarID, proposal.Event.ID,
		proposal.Start, proposal.End, proposal.UserTimeZone)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	fmt.Println()
	fmt.Println(okStyle.Render("✓ Rescheduled") + " — " + formatEventTime(updated.Start, updated.End, updated.IsAllDay))
	if updated.URL != "" {
		fmt.Println(dimStyle.Render("  " + updated.URL))
	}
	return nil
}
