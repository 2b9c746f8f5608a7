// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/events"
)

// EventMsg wraps an alias table event for the tea framework.
type EventMsg struct {
	Event events.Event
}

// ResultMsg carries the outcome of a processed command.
type ResultMsg struct {
	Input    string
	Messages []string
	Result   command.Result
	Err      error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case EventMsg:
		m.refreshAliases()

		if msg.Event.Type != events.Registered && msg.Event.Type != events.Unregistered {
			m.appendLog(m.styles.Event.Render(describeEvent(msg.Event)))
		}

		return m, nil

	case ResultMsg:
		m.running--
		m.appendLog(m.renderResult(msg)...)

		return m, nil
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)

	return m, cmd
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		raw := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		m.hint = ""

		switch raw {
		case "":
			return m, nil
		case "quit", "exit":
			m.quitting = true
			return m, tea.Quit
		}

		m.running++
		m.appendLog(m.styles.Help.Render("> " + raw))

		return m, m.process(raw)

	case tea.KeyTab:
		m.complete()
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)

		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// process runs raw off the update loop, since commands may block.
func (m *Model) process(raw string) tea.Cmd {
	ctx, host, subject := m.ctx, m.host, m.subject

	return func() tea.Msg {
		ch := &command.BufferChannel{}
		res, err := host.Process(ctx, subject, ch, raw)

		return ResultMsg{Input: raw, Messages: ch.Messages(), Result: res, Err: err}
	}
}

// complete applies tab completion to the input line. A single suggestion
// replaces the token being typed; several are shown as a hint.
func (m *Model) complete() {
	value := m.input.Value()

	suggestions, err := m.host.Suggest(m.ctx, m.subject, nil, value)
	if err != nil {
		m.hint = err.Error()
		return
	}

	switch len(suggestions) {
	case 0:
		m.hint = "no suggestions"
	case 1:
		head := ""
		if i := strings.LastIndexFunc(value, unicode.IsSpace); i >= 0 {
			head = value[:i+1]
		}

		m.input.SetValue(head + suggestions[0] + " ")
		m.input.CursorEnd()
		m.hint = ""
	default:
		m.hint = strings.Join(suggestions, "  ")
	}
}

func (m *Model) renderResult(msg ResultMsg) []string {
	out := make([]string, 0, len(msg.Messages)+1)
	for _, line := range msg.Messages {
		out = append(out, m.styles.Output.Render(line))
	}

	switch {
	case msg.Err != nil:
		out = append(out, m.styles.Error.Render("error: "+msg.Err.Error()))
	case msg.Result.Unknown:
		out = append(out, m.styles.Warning.Render(msg.Result.Message))
	}

	return out
}

func describeEvent(e events.Event) string {
	var b strings.Builder

	b.WriteString(e.Type.String())

	if e.Alias != "" {
		fmt.Fprintf(&b, " %s", e.Alias)
	}

	if e.Owner != "" {
		fmt.Fprintf(&b, " (%s)", e.Owner)
	}

	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}

	return b.String()
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	if m.quitting {
		return "Bye\n"
	}

	title := m.styles.Title.Render("switchboard")
	if m.running > 0 {
		title += m.styles.Help.Render(fmt.Sprintf("  running %d", m.running))
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.log.View(),
		m.input.View(),
	)

	right := m.styles.Pane.
		Width(aliasPaneWidth).
		Height(max(m.log.Height, 1)).
		Render(strings.Join(m.aliases, "\n"))

	help := m.hint
	if help == "" {
		help = "enter run • tab complete • pgup/pgdn scroll • esc quit"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right),
		m.styles.Help.Render(help),
	)
}
