package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rsched/rsched/internal/adapter/google"
	"github.com/rsched/rsched/internal/adapter/outlook"
	"github.com/rsched/rsched/internal/core"
	"github.com/rsched/rsched/internal/policy"
)

// CalendarAdapter extends core.CalendarSource with login and calendar
// listing. Both Google and Outlook adapters implement this interface.
type CalendarAdapter interface {
	core.CalendarSource
	Login(ctx context.Context) error
	Calendars() map[string]string
}

var (
	cfgFile string
	adapter CalendarAdapter
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rsched",
	Short: "Reschedule calendar events without breaking the rules",
	Long: `rsched moves calendar events, but only after the move passes policy:
enough notice, inside business hours, and no clash with anything else
on your calendars. Check a time, move an event, or run the guard as an
HTTP service for other tools to call.`,
	PersistentPreRunE: initAdapter,
	RunE:              listUpcoming,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rsched/config.yaml)")
	rootCmd.PersistentFlags().String("policy", "", "policy file (default is $HOME/.config/rsched/policy.yaml)")
	rootCmd.PersistentFlags().StringP("calendar", "c", "primary", "calendar ID to operate on")
	rootCmd.PersistentFlags().IntP("days", "d", 14, "days ahead to list events")
	rootCmd.PersistentFlags().Bool("verbose", false, "debug logging")

	viper.BindPFlag("policy_file", rootCmd.PersistentFlags().Lookup("policy"))
	viper.BindPFlag("calendar", rootCmd.PersistentFlags().Lookup("calendar"))
	viper.BindPFlag("days", rootCmd.PersistentFlags().Lookup("days"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "rsched")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("RSCHED")
	viper.AutomaticEnv()

	viper.SetDefault("provider", "google")
	viper.SetDefault("credentials_file", "credentials.json")
	viper.SetDefault("token_file", "token.json")
	viper.SetDefault("calendar", "primary")
	viper.SetDefault("days", 14)
	viper.SetDefault("listen", ":8090")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func initAdapter(cmd *cobra.Command, args []string) error {
	// Skip adapter init for commands that don't need a live calendar
	if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "auth" {
		return nil
	}

	provider := viper.GetString("provider")

	switch provider {
	case "google":
		return initGoogleAdapter(cmd)
	case "outlook":
		return initOutlookAdapter(cmd)
	default:
		return fmt.Errorf("unknown provider: %s (supported: google, outlook)", provider)
	}
}

func initGoogleAdapter(cmd *cobra.Command) error {
	credsFile := expandPath(viper.GetString("credentials_file"))
	tokenFile := expandPath(viper.GetString("token_file"))

	if _, err := os.Stat(credsFile); os.IsNotExist(err) {
		return fmt.Errorf("credentials file not found: %s", credsFile)
	}
	if _, err := os.Stat(tokenFile); os.IsNotExist(err) {
		return fmt.Errorf("token file not found: %s\n\nRun 'rsched auth' to authenticate", tokenFile)
	}

	adapter = google.NewGoogleAdapter(
		"google",
		"Google Calendar",
		credsFile,
		tokenFile,
	)

	if err := adapter.Login(cmd.Context()); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

func initOutlookAdapter(cmd *cobra.Command) error {
	clientID := viper.GetString("client_id")
	if clientID == "" {
		return fmt.Errorf("client_id not configured for Outlook provider\n\nAdd it to your config:\n  client_id: \"your-azure-app-client-id\"")
	}

	tenantID := viper.GetString("tenant_id")
	tokenFile := expandPath(viper.GetString("token_file"))

	if _, err := os.Stat(tokenFile); os.IsNotExist(err) {
		return fmt.Errorf("token file not found: %s\n\nRun 'rsched auth' to authenticate with Microsoft", tokenFile)
	}

	adapter = outlook.NewOutlookAdapter(
		"outlook",
		"Outlook Calendar",
		clientID,
		tenantID,
		tokenFile,
	)

	if err := adapter.Login(cmd.Context()); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

// loadPolicy reads the configured policy file, or falls back to the
// built-in default ruleset when none is configured.
func loadPolicy() (core.Policy, error) {
	path := viper.GetString("policy_file")
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			candidate := filepath.Join(home, ".config", "rsched", "policy.yaml")
			if _, statErr := os.Stat(candidate); statErr == nil {
				path = candidate
			}
		}
	}
	if path == "" {
		return policy.Default(), nil
	}
	return policy.Load(expandPath(path))
}

func listUpcoming(cmd *cobra.Command, args []string) error {
	calendarID := viper.GetString("calendar")
	days := viper.GetInt("days")

	now := time.Now()
	end := now.Add(time.Duration(days) * 24 * time.Hour)

	events, err := adapter.ListEvents(cmd.Context(), calendarID, now, end, core.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	fmt.Printf("📅 Events on %s from %s to %s:\n", calendarID, now.Format("Jan 2"), end.Format("Jan 2"))
	fmt.Println("─────────────────────────────────────────────────")

	if len(events) == 0 {
		fmt.Println("No upcoming events found.")
		return nil
	}

	for _, event := range events {
		fmt.Printf("\n  %s\n", event.Title)
		fmt.Printf("  🕐 %s\n", formatEventTime(event.Start, event.End, event.IsAllDay))
		fmt.Printf("  🆔 %s\n", event.ID)
	}

	fmt.Println("─────────────────────────────────────────────────")
	fmt.Printf("Total: %d events\n", len(events))

	return nil
}

func formatEventTime(start, end time.Time, isAllDay bool) string {
	localStart := start.Local()
	localEnd := end.Local()

	if isAllDay {
		return localStart.Format("Mon, Jan 2") + " (all day)"
	}
	if localStart.Day() == localEnd.Day() {
		return fmt.Sprintf("%s, %s - %s", localStart.Format("Mon, Jan 2"), localStart.Format("3:04 PM"), localEnd.Format("3:04 PM"))
	}
	return fmt.Sprintf("%s - %s", localStart.Format("Mon, Jan 2 3:04 PM"), localEnd.Format("Mon, Jan 2 3:04 PM"))
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
