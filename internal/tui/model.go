// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/switchboard/internal/command"
)

const (
	aliasPaneWidth = 28
	reservedLines  = 4 // title, input and help lines
	maxLogLines    = 1000
)

// Host is what the TUI drives. The command manager implements it.
type Host interface {
	Process(ctx context.Context, subject command.Subject, channel command.Channel, raw string) (command.Result, error)
	Suggest(ctx context.Context, subject command.Subject, channel command.Channel, raw string) ([]string, error)
	Mappings() []*command.Mapping
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Pane    lipgloss.Style
	Alias   lipgloss.Style
	Owner   lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Event   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		Alias: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),
		Owner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),
		Event: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	host    Host
	subject command.Subject

	input    textinput.Model
	log      viewport.Model
	lines    []string
	aliases  []string
	hint     string
	width    int
	height   int
	running  int
	quitting bool

	styles *Styles
}

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, host Host) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type a command, tab completes"
	ti.Focus()

	m := &Model{
		ctx:     ctx,
		host:    host,
		subject: command.SystemSubject{},
		input:   ti,
		log:     viewport.New(80, 20),
		styles:  NewStyles(),
	}
	m.refreshAliases()

	return m
}

// refreshAliases rebuilds the alias pane from the host.
func (m *Model) refreshAliases() {
	mappings := m.host.Mappings()
	lines := make([]string, 0, len(mappings))

	for _, mapping := range mappings {
		lines = append(lines,
			m.styles.Alias.Render(mapping.PrimaryAlias())+" "+m.styles.Owner.Render(string(mapping.Owner())))
	}

	m.aliases = lines
}

// appendLog adds lines to the log and keeps the view scrolled to the bottom.
func (m *Model) appendLog(lines ...string) {
	m.lines = append(m.lines, lines...)
	if over := len(m.lines) - maxLogLines; over > 0 {
		m.lines = m.lines[over:]
	}

	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
}

// resize lays out the panes for the terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	logWidth := max(width-aliasPaneWidth-4, 20)
	logHeight := max(height-reservedLines, 1)

	m.log.Width = logWidth
	m.log.Height = logHeight
	m.input.Width = logWidth - len(m.input.Prompt)
}
