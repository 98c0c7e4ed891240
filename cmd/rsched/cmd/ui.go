package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rsched/rsched/internal/guard"
	"github.com/rsched/rsched/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive TUI",
	Long: `Launch an interactive terminal user interface: browse upcoming
events, propose a new time for one, see which rules the move would
break, and apply it when clean.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	pol, err := loadPolicy()
	if err != nil {
		return fmt.Errorf("load policy: %w", err)
	}

	validator := guard.New(adapter, logger)
	m := tui.NewModel(adapter, validator, pol, viper.GetString("calendar"), viper.GetInt("days"))

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
