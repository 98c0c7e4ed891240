// Package tui is the interactive terminal front end: browse upcoming
// events, propose a new time for one, see which rules the move would
// break, and apply it when clean.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rsched/rsched/internal/core"
	"github.com/rsched/rsched/internal/guard"
	"github.com/rsched/rsched/internal/util"
)

const formTimeLayout = "2006-01-02 15:04"

// KeyMap defines the keybindings for the TUI
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Move    key.Binding
	Apply   key.Binding
	Cancel  key.Binding
	Tab     key.Binding
	Refresh key.Binding
	Quit    key.Binding
	Help    key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "down"),
	),
	Move: key.NewBinding(
		key.WithKeys("m", "enter"),
		key.WithHelp("m", "move event"),
	),
	Apply: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "apply move"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// mode is the interaction state of the right panel.
type mode int

const (
	modeBrowse  mode = iota // event details
	modeForm                // editing the proposed time
	modeVerdict             // showing check results, maybe awaiting apply
	modeMoved               // move applied
)

// Model is the Bubble Tea model for the TUI
type Model struct {
	source     core.CalendarSource
	validator  *guard.Validator
	policy     core.Policy
	calendarID string
	days       int

	events      []core.Event
	selectedIdx int

	width         int
	height        int
	listWidth     int
	detailWidth   int
	contentHeight int

	keys          KeyMap
	loading       bool
	err           error
	listView      viewport.Model
	detailView    viewport.Model
	viewportReady bool
	showHelp      bool

	mode       mode
	startInput textinput.Model
	endInput   textinput.Model
	focusEnd   bool
	checking   bool
	proposal   core.Proposal
	violations []core.Violation
	checkErr   error
	moved      *core.Event
}

// NewModel creates a new TUI model over one calendar.
func NewModel(source core.CalendarSource, validator *guard.Validator, pol core.Policy, calendarID string, days int) Model {
	start := textinput.New()
	start.Placeholder = formTimeLayout
	start.CharLimit = len(formTimeLayout)
	start.Width = 20

	end := textinput.New()
	end.Placeholder = formTimeLayout + " (blank keeps duration)"
	end.CharLimit = len(formTimeLayout)
	end.Width = 20

	return Model{
		source:     source,
		validator:  validator,
		policy:     pol,
		calendarID: calendarID,
		days:       days,
		keys:       DefaultKeyMap,
		loading:    true,
		startInput: start,
		endInput:   end,
	}
}

// Messages
type eventsLoadedMsg struct {
	events []core.Event
	err    error
}

type verdictMsg struct {
	proposal   core.Proposal
	violations []core.Violation
	err        error
}

type movedMsg struct {
	event core.Event
	err   error
}

// Commands
func (m Model) loadEvents() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		end := now.Add(time.Duration(m.days) * 24 * time.Hour)
		events, err := m.source.ListEvents(context.Background(), m.calendarID, now, end, core.ListOptions{})
		return eventsLoadedMsg{events: events, err: err}
	}
}

func (m Model) runCheck(p core.Proposal) tea.Cmd {
	return func() tea.Msg {
		violations, err := m.validator.ValidateReschedule(context.Background(), p, m.policy)
		return verdictMsg{proposal: p, violations: violations, err: err}
	}
}

func (m Model) applyMove() tea.Cmd {
	p := m.proposal
	return func() tea.Msg {
		updated, err := m.source.PatchEventTime(context.Background(), p.CalendarID, p.Event.ID,
			p.Start, p.End, p.UserTimeZone)
		return movedMsg{event: updated, err: err}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.loadEvents()
}

func (m *Model) calculateLayout() {
	width := m.width
	height := m.height
	if height < 10 {
		height = 10
	}

	// Header ~2 lines, help ~2, padding ~2
	m.contentHeight = height - 6
	if m.contentHeight < 5 {
		m.contentHeight = 5
	}

	m.listWidth = width * 40 / 100
	if m.listWidth < 28 {
		m.listWidth = 28
	}
	if m.listWidth > 55 {
		m.listWidth = 55
	}
	m.detailWidth = width - m.listWidth - 5
	if m.detailWidth < 35 {
		m.detailWidth = 35
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculateLayout()

		listH := m.contentHeight - 4
		if listH < 1 {
			listH = 1
		}
		listW := m.listWidth - 4
		if listW < 10 {
			listW = 10
		}
		detailH := m.contentHeight - 4
		if detailH < 1 {
			detailH = 1
		}
		detailW := m.detailWidth - 6
		if detailW < 10 {
			detailW = 10
		}

		if !m.viewportReady {
			m.listView = viewport.New(listW, listH)
			m.detailView = viewport.New(detailW, detailH)
			m.viewportReady = true
		} else {
			m.listView.Width, m.listView.Height = listW, listH
			m.detailView.Width, m.detailView.Height = detailW, detailH
		}
		m.updateListContent()
		m.updateDetailContent()
		return m, nil

	case eventsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.events = msg.events
			if m.selectedIdx >= len(m.events) {
				m.selectedIdx = 0
			}
			m.updateListContent()
			m.updateDetailContent()
		}
		return m, nil

	case verdictMsg:
		m.checking = false
		m.mode = modeVerdict
		m.proposal = msg.proposal
		m.violations = msg.violations
		m.checkErr = msg.err
		return m, nil

	case movedMsg:
		if msg.err != nil {
			m.checkErr = msg.err
			return m, nil
		}
		m.moved = &msg.event
		m.mode = modeMoved
		m.loading = true
		return m, m.loadEvents()

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeVerdict, modeMoved:
			return m.updateVerdict(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
			m.updateListContent()
			m.scrollListToSelection()
			m.updateDetailContent()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedIdx < len(m.events)-1 {
			m.selectedIdx++
			m.updateListContent()
			m.scrollListToSelection()
			m.updateDetailContent()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadEvents()

	case key.Matches(msg, m.keys.Move):
		if len(m.events) == 0 {
			return m, nil
		}
		event := m.events[m.selectedIdx]
		m.mode = modeForm
		m.focusEnd = false
		m.checkErr = nil
		m.violations = nil
		m.startInput.SetValue(event.Start.In(m.policyLocation()).Format(formTimeLayout))
		m.endInput.SetValue("")
		m.startInput.Focus()
		m.endInput.Blur()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.startInput.Blur()
		m.endInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focusEnd = !m.focusEnd
		if m.focusEnd {
			m.startInput.Blur()
			m.endInput.Focus()
		} else {
			m.endInput.Blur()
			m.startInput.Focus()
		}
		return m, textinput.Blink

	case msg.Type == tea.KeyEnter:
		p, err := m.buildProposal()
		if err != nil {
			m.checkErr = err
			return m, nil
		}
		m.checkErr = nil
		m.checking = true
		return m, m.runCheck(p)

	case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.focusEnd {
		m.endInput, cmd = m.endInput.Update(msg)
	} else {
		m.startInput, cmd = m.startInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateVerdict(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.moved = nil
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		if m.mode == modeVerdict && m.checkErr == nil && len(m.violations) == 0 {
			return m, m.applyMove()
		}
		return m, nil

	case msg.String() == "e":
		// Back to the form to try a different time
		if m.mode == modeVerdict {
			m.mode = modeForm
			m.startInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}
	return m, nil
}

// buildProposal assembles the proposal from the form fields. Times are read
// in the policy time zone; a blank end keeps the event's current duration.
func (m Model) buildProposal() (core.Proposal, error) {
	event := m.events[m.selectedIdx]
	loc := m.policyLocation()

	start, err := time.ParseInLocation(formTimeLayout, strings.TrimSpace(m.startInput.Value()), loc)
	if err != nil {
		return core.Proposal{}, fmt.Errorf("start: want %s", formTimeLayout)
	}

	var end time.Time
	if v := strings.TrimSpace(m.endInput.Value()); v != "" {
		end, err = time.ParseInLocation(formTimeLayout, v, loc)
		if err != nil {
			return core.Proposal{}, fmt.Errorf("end: want %s", formTimeLayout)
		}
	} else {
		end = start.Add(event.Duration())
	}
	if !start.Before(end) {
		return core.Proposal{}, fmt.Errorf("start must precede end")
	}

	return core.Proposal{
		Event:      event,
		Start:      start,
		End:        end,
		CalendarID: m.calendarID,
	}, nil
}

func (m Model) policyLocation() *time.Location {
	if m.policy.TimeZone != "" {
		if loc, err := time.LoadLocation(m.policy.TimeZone); err == nil {
			return loc
		}
	}
	return time.Local
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	var content string
	switch {
	case m.loading:
		content = lipgloss.NewStyle().
			Width(m.width-4).
			Height(m.contentHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Loading events...")
	case m.err != nil:
		content = lipgloss.NewStyle().
			Width(m.width - 4).
			Height(m.contentHeight).
			Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	default:
		listPanel := m.renderListPanel()
		var rightPanel string
		switch {
		case m.showHelp:
			rightPanel = m.renderHelpPanel()
		case m.mode == modeForm:
			rightPanel = m.renderFormPanel()
		case m.mode == modeVerdict:
			rightPanel = m.renderVerdictPanel()
		case m.mode == modeMoved:
			rightPanel = m.renderMovedPanel()
		default:
			rightPanel = m.renderDetailPanel()
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, listPanel, " ", rightPanel)
	}

	help := m.renderHelp()

	return AppStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, content, help),
	)
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("📅 rsched")
	window := lipgloss.NewStyle().Foreground(mutedColor).
		Render(fmt.Sprintf("%s • next %d days", m.calendarID, m.days))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", window)
}

// updateListContent rebuilds the left panel: events grouped under day
// headings.
func (m *Model) updateListContent() {
	if !m.viewportReady {
		return
	}

	var items []string
	if len(m.events) == 0 {
		items = append(items, NormalItemStyle.Render("No events"))
	} else {
		var lastDay string
		for i, event := range m.events {
			day := event.Start.Local().Format("Mon, Jan 2")
			if day != lastDay {
				items = append(items, DayHeadingStyle.Render(day))
				lastDay = day
			}
			items = append(items, m.renderListItem(event, i == m.selectedIdx))
		}
	}

	m.listView.SetContent(strings.Join(items, "\n"))
}

// listLineOf returns the rendered line index of an event, accounting for
// the day heading lines interleaved above it.
func (m Model) listLineOf(idx int) int {
	line := 0
	var lastDay string
	for i, event := range m.events {
		day := event.Start.Local().Format("Mon, Jan 2")
		if day != lastDay {
			line++
			lastDay = day
		}
		if i == idx {
			return line
		}
		line++
	}
	return line
}

func (m *Model) scrollListToSelection() {
	if !m.viewportReady || len(m.events) == 0 {
		return
	}

	selectedTop := m.listLineOf(m.selectedIdx)
	viewTop := m.listView.YOffset
	viewBottom := viewTop + m.listView.Height

	if selectedTop < viewTop {
		m.listView.SetYOffset(selectedTop)
	}
	if selectedTop+1 > viewBottom {
		m.listView.SetYOffset(selectedTop + 1 - m.listView.Height)
	}
}

func (m Model) renderListPanel() string {
	scrollInfo := ""
	if m.viewportReady && len(m.events) > 0 && m.listView.TotalLineCount() > m.listView.Height {
		scrollInfo = lipgloss.NewStyle().
			Foreground(mutedColor).
			Render(fmt.Sprintf(" (%d/%d)", m.selectedIdx+1, len(m.events)))
	}

	header := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("Events") + scrollInfo

	return ListPanelStyle.Width(m.listWidth).Height(m.contentHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, m.listView.View()),
	)
}

func (m Model) renderListItem(event core.Event, selected bool) string {
	localStart := event.Start.Local()
	timeStr := localStart.Format("3:04 PM")
	if event.IsAllDay {
		timeStr = "All day"
	}

	durStr := formatDuration(event.Duration())

	titleWidth := m.listView.Width - 20
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := util.TruncateText(event.Title, titleWidth)

	line := fmt.Sprintf("%s %s %s", TimeStyle.Render(timeStr), DurationStyle.Render(durStr), title)

	if selected {
		return SelectedItemStyle.Render(line)
	}
	return NormalItemStyle.Render(line)
}

// updateDetailContent rebuilds the right panel content for browse mode.
func (m *Model) updateDetailContent() {
	if len(m.events) == 0 || !m.viewportReady {
		return
	}

	event := m.events[m.selectedIdx]
	width := m.detailView.Width
	var lines []string

	lines = append(lines, TitleStyle.Render(ansi.Wordwrap(event.Title, width, "")))
	lines = append(lines, "")

	if event.Calendar.Name != "" {
		lines = append(lines, renderField("📅 Calendar", event.Calendar.Name))
	}
	lines = append(lines, renderField("🕐 When", formatEventTime(event.Start, event.End, event.IsAllDay)))
	if !event.IsAllDay {
		lines = append(lines, renderField("⏱️  Duration", formatDuration(event.Duration())))
	}
	if event.Location != "" {
		lines = append(lines, renderField("📍 Location", util.TruncateText(event.Location, width-14)))
	}
	if event.URL != "" {
		display := util.TruncateText(event.URL, width-14)
		lines = append(lines, renderField("🔗 Open", util.MakeHyperlink(event.URL, LinkStyle.Render(display))))
	}
	if resp, ok := event.SelfResponse(); ok {
		lines = append(lines, renderField("📊 Response", formatResponse(resp)))
	}

	// Description (convert HTML → plain text, then word-wrap)
	if event.Description != "" {
		lines = append(lines, "")
		lines = append(lines, LabelStyle.Render("📝 Description"))
		desc := util.HTMLToText(event.Description, width)
		lines = append(lines, ValueStyle.Render(ansi.Wordwrap(desc, width, "")))
	}

	lines = append(lines, "")
	lines = append(lines, FormHintStyle.Render("press m to propose a new time"))

	m.detailView.SetContent(strings.Join(lines, "\n"))
}

func (m Model) renderDetailPanel() string {
	if len(m.events) == 0 {
		return DetailPanelStyle.Width(m.detailWidth).Height(m.contentHeight).Render(
			lipgloss.NewStyle().Foreground(mutedColor).Render("No event selected"),
		)
	}

	header := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("Event Details")

	return DetailPanelStyle.Width(m.detailWidth).Height(m.contentHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.detailView.View()),
	)
}

func (m Model) renderFormPanel() string {
	event := m.events[m.selectedIdx]

	startLabel := FormLabelStyle.Render("New start")
	endLabel := FormLabelStyle.Render("New end  ")
	if m.focusEnd {
		endLabel = FormFocusedStyle.Render("New end  ")
	} else {
		startLabel = FormFocusedStyle.Render("New start")
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render("Propose a new time"),
		"",
		TitleStyle.Render(util.TruncateText(event.Title, m.detailWidth-6)),
		renderField("🕐 Now at", formatEventTime(event.Start, event.End, event.IsAllDay)),
		"",
		startLabel + "  " + m.startInput.View(),
		endLabel + "  " + m.endInput.View(),
		"",
		FormHintStyle.Render(fmt.Sprintf("times in %s", m.policyLocation())),
	}

	if m.checking {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(accentColor).Render("Checking..."))
	} else if m.checkErr != nil {
		lines = append(lines, "", ViolationStyle.Render(m.checkErr.Error()))
	}

	lines = append(lines, "", FormHintStyle.Render("enter check • tab switch field • esc cancel"))

	return DetailPanelStyle.Width(m.detailWidth).Height(m.contentHeight).Render(
		strings.Join(lines, "\n"),
	)
}

func (m Model) renderVerdictPanel() string {
	var lines []string
	lines = append(lines,
		lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render("Verdict"),
		"",
		TitleStyle.Render(util.TruncateText(m.proposal.Event.Title, m.detailWidth-6)),
		renderField("🕐 Proposed", formatEventTime(m.proposal.Start, m.proposal.End, false)),
		"",
	)

	switch {
	case m.checkErr != nil:
		lines = append(lines,
			BlockedStyle.Render("✗ Could not validate"),
			"",
			ViolationStyle.Render(ansi.Wordwrap(m.checkErr.Error(), m.detailWidth-6, "")),
		)
	case len(m.violations) == 0:
		lines = append(lines,
			AllowedStyle.Render("✓ Allowed"),
			"",
			ValueStyle.Render("The move passes every rule."),
			"",
			FormHintStyle.Render("y apply • e edit • esc back"),
		)
	default:
		lines = append(lines, BlockedStyle.Render(fmt.Sprintf("✗ Blocked — %d rule(s) violated", len(m.violations))), "")
		for _, v := range m.violations {
			lines = append(lines, CodeStyle.Render("["+string(v.Code)+"]"))
			lines = append(lines, ValueStyle.Render(ansi.Wordwrap(v.Message, m.detailWidth-6, "")))
			lines = append(lines, "")
		}
		lines = append(lines, FormHintStyle.Render("e edit • esc back"))
	}

	return DetailPanelStyle.Width(m.detailWidth).Height(m.contentHeight).Render(
		strings.Join(lines, "\n"),
	)
}

func (m Model) renderMovedPanel() string {
	lines := []string{
		lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render("Done"),
		"",
		AllowedStyle.Render("✓ Rescheduled"),
		"",
	}
	if m.moved != nil {
		lines = append(lines,
			TitleStyle.Render(util.TruncateText(m.moved.Title, m.detailWidth-6)),
			renderField("🕐 Now at", formatEventTime(m.moved.Start, m.moved.End, m.moved.IsAllDay)),
		)
	}
	lines = append(lines, "", FormHintStyle.Render("esc back to list"))

	return DetailPanelStyle.Width(m.detailWidth).Height(m.contentHeight).Render(
		strings.Join(lines, "\n"),
	)
}

func (m Model) renderHelp() string {
	keys := []string{
		HelpKeyStyle.Render("↑/↓") + " nav",
		HelpKeyStyle.Render("m") + " move",
		HelpKeyStyle.Render("y") + " apply",
		HelpKeyStyle.Render("r") + " refresh",
		HelpKeyStyle.Render("q") + " quit",
	}

	fullLine := strings.Join(keys, "  •  ")
	if lipgloss.Width(fullLine) > m.width-4 {
		return HelpStyle.Render(HelpKeyStyle.Render("?") + " help")
	}
	return HelpStyle.Render(fullLine)
}

func (m Model) renderHelpPanel() string {
	header := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("Keyboard Shortcuts")

	lines := []string{
		"",
		HelpKeyStyle.Render("  ↑ / ↓      ") + " Select event",
		HelpKeyStyle.Render("  m / enter  ") + " Propose a new time",
		HelpKeyStyle.Render("  tab        ") + " Switch form field",
		HelpKeyStyle.Render("  enter      ") + " Check the proposal",
		HelpKeyStyle.Render("  y          ") + " Apply an allowed move",
		HelpKeyStyle.Render("  e          ") + " Edit the proposal",
		HelpKeyStyle.Render("  esc        ") + " Back",
		HelpKeyStyle.Render("  r          ") + " Refresh events",
		HelpKeyStyle.Render("  q / ctrl+c ") + " Quit",
		"",
		lipgloss.NewStyle().Foreground(mutedColor).Italic(true).Render("  Press any key to close"),
	}

	return DetailPanelStyle.Width(m.detailWidth).Height(m.contentHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(lines, "\n")),
	)
}

// Helper functions
func renderField(label, value string) string {
	return LabelStyle.Render(label) + " " + ValueStyle.Render(value)
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		if hours > 0 {
			return fmt.Sprintf("%dd %dh", days, hours)
		}
		return fmt.Sprintf("%dd", days)
	}
	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

func formatEventTime(start, end time.Time, isAllDay bool) string {
	localStart := start.Local()
	localEnd := end.Local()

	if isAllDay {
		return localStart.Format("Mon, Jan 2") + " (all day)"
	}
	if localStart.Day() == localEnd.Day() {
		return fmt.Sprintf("%s, %s - %s",
			localStart.Format("Mon, Jan 2"),
			localStart.Format("3:04 PM"),
			localEnd.Format("3:04 PM"))
	}
	return fmt.Sprintf("%s - %s",
		localStart.Format("Mon, Jan 2 3:04 PM"),
		localEnd.Format("Mon, Jan 2 3:04 PM"))
}

func formatResponse(r core.ResponseStatus) string {
	switch r {
	case core.ResponseAccepted:
		return lipgloss.NewStyle().Foreground(okColor).Render("Accepted ✓")
	case core.ResponseDeclined:
		return lipgloss.NewStyle().Foreground(errorColor).Render("Declined ✗")
	case core.ResponseTentative:
		return lipgloss.NewStyle().Foreground(accentColor).Render("Tentative ?")
	default:
		return lipgloss.NewStyle().Foreground(mutedColor).Render("No response")
	}
}
