package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rsched/rsched/internal/core"
	"github.com/rsched/rsched/internal/guard"
)

var (
	checkStart string
	checkEnd   string
	checkFor   time.Duration
	checkZone  string
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	codeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var checkCmd = &cobra.Command{
	Use:   "check <event-id>",
	Short: "Check whether a proposed new time would be allowed",
	Long: `Check a proposed new time for an event against the policy without
touching the event. Reports every rule the move would break: not enough
notice, outside business hours, or clashing with something else on your
calendars.

Times accept RFC3339 ("2026-03-03T10:00:00Z") or a local
"2006-01-02 15:04" form interpreted in the policy time zone.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkStart, "start", "", "proposed new start time (required)")
	checkCmd.Flags().StringVar(&checkEnd, "end", "", "proposed new end time")
	checkCmd.Flags().DurationVar(&checkFor, "for", 0, "duration instead of --end (e.g. 45m, 1h30m)")
	checkCmd.Flags().StringVar(&checkZone, "tz", "", "IANA time zone for interpreting times and notice arithmetic")
	checkCmd.MarkFlagRequired("start")
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	if len(violations) > 0 {
		// Non-zero exit so scripts can branch on the verdict.
		cmd.SilenceUsage = true
		return fmt.Errorf("%d rule(s) violated", len(violations))
	}
	return nil
}

// buildProposal fetches the event and assembles the proposed window from
// the shared --start/--end/--for/--tz flags.
func buildProposal(cmd *cobra.Command, eventID string) (core.Proposal, core.Policy, error) {
	pol, err := loadPolicy()
	if err != nil {
		return core.Proposal{}, core.Policy{}, fmt.Errorf("load policy: %w", err)
	}

	zone := checkZone
	if zone == "" {
		zone = pol.TimeZone
	}

	start, err := parseWhen(checkStart, zone)
	if err != nil {
		return core.Proposal{}, core.Policy{}, fmt.Errorf("parse --start: %w", err)
	}

	calendarID := viper.GetString("calendar")
	event, err := adapter.GetEvent(cmd.Context(), calendarID, eventID)
	if err != nil {
		return core.Proposal{}, core.Policy{}, fmt.Errorf("fetch event %s: %w", eventID, err)
	}

	var end time.Time
	switch {
	case checkEnd != "":
		end, err = parseWhen(checkEnd, zone)
		if err != nil {
			return core.Proposal{}, core.Policy{}, fmt.Errorf("parse --end: %w", err)
		}
	case checkFor > 0:
		end = start.Add(checkFor)
	default:
		// Keep the event's current duration.
		end = start.Add(event.End.Sub(event.Start))
	}
	if !start.Before(end) {
		return core.Proposal{}, core.Policy{}, fmt.Errorf("start must precede end")
	}

	return core.Proposal{
		Event:        event,
		Start:        start,
		End:          end,
		CalendarID:   calendarID,
		UserTimeZone: checkZone,
	}, pol, nil
}

// parseWhen parses RFC3339 first, then a bare local form in the given zone.
func parseWhen(s, zone string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	loc := time.UTC
	if zone != "" {
		if l, err := time.LoadLocation(zone); err == nil {
			loc = l
		}
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC3339 or \"2006-01-02 15:04\", got %q", s)
	}
	return t, nil
}

func printVerdict(p core.Proposal, violations []core.Violation) {
	fmt.Printf("\n%s\n", p.Event.Title)
	fmt.Println(dimStyle.Render(fmt.Sprintf("  current:  %s", formatEventTime(p.Event.Start, p.Event.End, p.Event.IsAllDay))))
	fmt.Println(dimStyle.Render(fmt.Sprintf("  proposed: %s", formatEventTime(p.Start, p.End, false))))
	fmt.Println()

	if len(violations) == 0 {
		fmt.Println(okStyle.Render("✓ Allowed") + " — the move passes every rule.")
		return
	}

	fmt.Println(failStyle.Render(fmt.Sprintf("✗ Blocked — %d rule(s) violated:", len(violations))))
	for _, v := range violations {
		fmt.Printf("  %s %s\n", codeStyle.Render("["+string(v.Code)+"]"), v.Message)
	}
}
