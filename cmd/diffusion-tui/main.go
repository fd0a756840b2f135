// Command diffusion-tui is a terminal viewer for a running simulation: it
// subscribes to the live snapshot feed and renders adopter counts as they
// move.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-diffusion/pkg/feed"
	"github.com/dd0wney/cluso-diffusion/pkg/sim"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1).
			MarginLeft(2)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginLeft(2)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF00FF"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			MarginLeft(2)
)

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type snapshotMsg sim.Snapshot

type feedErrMsg struct{ err error }

func waitForSnapshot(sub *feed.Subscriber) tea.Cmd {
	return func() tea.Msg {
		snap, err := sub.Next()
		if err != nil {
			return feedErrMsg{err: err}
		}
		return snapshotMsg(snap)
	}
}

type model struct {
	sub      *feed.Subscriber
	tbl      table.Model
	help     help.Model
	last     sim.Snapshot
	received int
	err      error
}

func newModel(sub *feed.Subscriber) model {
	columns := []table.Column{
		{Title: "Technology", Width: 16},
		{Title: "Adopters", Width: 10},
		{Title: "Share", Width: 24},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
	)
	return model{sub: sub, tbl: tbl, help: help.New()}
}

func (m model) Init() tea.Cmd {
	return waitForSnapshot(m.sub)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
	case snapshotMsg:
		m.last = sim.Snapshot(msg)
		m.received++
		m.err = nil
		m.tbl.SetRows(snapshotRows(m.last))
		return m, waitForSnapshot(m.sub)
	case feedErrMsg:
		m.err = msg.err
		return m, waitForSnapshot(m.sub)
	}
	return m, nil
}

func snapshotRows(snap sim.Snapshot) []table.Row {
	total := snap.Total()
	rows := make([]table.Row, 0, len(snap.Counts))
	for tech, count := range snap.Counts {
		share := ""
		if total > 0 {
			width := count * 20 / total
			share = barStyle.Render(strings.Repeat("█", width))
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("technology-%d", tech+1),
			strconv.Itoa(count),
			share,
		})
	}
	return rows
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Technology Diffusion · live feed"))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.tbl.View()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"iteration %d · %d adopters · %d snapshots received",
		m.last.Iteration, m.last.Total(), m.received)))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("feed: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.help.View(keys)))
	b.WriteString("\n")
	return b.String()
}

func main() {
	feedAddr := flag.String("feed", "tcp://127.0.0.1:9290", "Snapshot feed address")
	flag.Parse()

	sub, err := feed.NewSubscriber(*feedAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to feed: %v\n", err)
		os.Exit(1)
	}
	defer sub.Close()

	if _, err := tea.NewProgram(newModel(sub)).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}
