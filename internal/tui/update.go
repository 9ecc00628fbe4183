package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case CalculationCompleteMsg:
		// Drop results superseded by a later request
		if msg.Seq != m.seq {
			return m, nil
		}
		m.calculated = true
		m.err = msg.Err
		if msg.Err == nil {
			m.result = msg.Result
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(fields)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Increase):
		amount := fields[m.cursor].amount(&m.inputs)
		*amount = amount.Add(Step)
		return m.recalculate()

	case key.Matches(msg, keys.Decrease):
		amount := fields[m.cursor].amount(&m.inputs)
		next := amount.Sub(Step)
		if next.IsNegative() {
			next = decimal.Zero
		}
		*amount = next
		return m.recalculate()

	case key.Matches(msg, keys.Apply):
		if m.result == nil || len(m.result.OptimizationSuggestions) == 0 {
			return m, nil
		}
		m.inputs = m.comparator.Optimizer.ApplySuggestions(m.inputs, m.result.OldRegime, m.result.OptimizationSuggestions)
		return m.recalculate()

	case key.Matches(msg, keys.Year):
		if len(m.years) < 2 {
			return m, nil
		}
		m.yearIndex = (m.yearIndex + 1) % len(m.years)
		return m.recalculate()

	case key.Matches(msg, keys.Reset):
		m.inputs = m.request.Inputs
		return m.recalculate()
	}

	return m, nil
}

// recalculate starts a new calculation request, superseding any in flight
func (m Model) recalculate() (tea.Model, tea.Cmd) {
	m.seq++
	return m, m.calculateCmd()
}
