// Package tui is the interactive terminal dashboard.
package tui

import (
	"context"

	"codeberg.org/mutker/bodymind/internal/dashboard"
	"codeberg.org/mutker/bodymind/internal/logger"
	"codeberg.org/mutker/bodymind/internal/metrics"
	"codeberg.org/mutker/bodymind/internal/profile"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model owns the metrics store for the lifetime of the program.
type Model struct {
	ctx      context.Context
	store    *metrics.Store
	registry *profile.Registry
	opts     dashboard.Options
	logger   logger.Logger

	active string
	focus  int
	inputs []textinput.Model
	keys   keyMap
	help   help.Model

	view      dashboard.View
	status    string
	statusErr bool

	width  int
	height int
}

func New(
	ctx context.Context,
	store *metrics.Store,
	registry *profile.Registry,
	profileID string,
	opts dashboard.Options,
	log logger.Logger,
) Model {
	inputs := make([]textinput.Model, len(dashboard.Cards))
	for i, info := range dashboard.Cards {
		ti := textinput.New()
		ti.Placeholder = info.Placeholder
		ti.CharLimit = 16
		ti.Width = 10
		ti.Prompt = "› "
		inputs[i] = ti
	}
	inputs[0].Focus()

	m := Model{
		ctx:      ctx,
		store:    store,
		registry: registry,
		opts:     opts,
		logger:   log,
		active:   registry.Resolve(profileID).ID,
		inputs:   inputs,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit) && (msg.String() != "q" || m.inputs[m.focus].Value() == ""):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevProfile):
			m.switchProfile(m.registry.Prev(m.active))
			return m, nil
		case key.Matches(msg, m.keys.NextProfile):
			m.switchProfile(m.registry.Next(m.active))
			return m, nil
		case key.Matches(msg, m.keys.NextCard):
			return m, m.focusCard((m.focus + 1) % len(m.inputs))
		case key.Matches(msg, m.keys.PrevCard):
			return m, m.focusCard((m.focus - 1 + len(m.inputs)) % len(m.inputs))
		case key.Matches(msg, m.keys.Add):
			m.add()
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// Active returns the id of the selected profile.
func (m Model) Active() string {
	return m.active
}

// Status returns the last status line and whether it reports a failure.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

func (m *Model) switchProfile(p profile.Profile) {
	m.active = p.ID
	m.setStatus("", false)
	m.refresh()
}

func (m *Model) focusCard(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m *Model) add() {
	info := dashboard.Cards[m.focus]
	value, ok := metrics.ParseValue(m.inputs[m.focus].Value())
	if !ok {
		m.logger.Debug().
			Str("metric", string(info.Metric)).
			Str("input", m.inputs[m.focus].Value()).
			Msg("Ignoring non-numeric input")
		return
	}

	err := m.store.SaveMetric(m.ctx, m.active, info.Metric, value)
	m.inputs[m.focus].Reset()
	m.refresh()
	if err != nil {
		m.setStatus("Recorded for this session only: "+err.Error(), true)
		return
	}
	m.setStatus(info.Title+" recorded: "+metrics.FormatValue(value), false)
}

func (m *Model) reset() {
	err := m.store.ResetMetrics(m.ctx, m.active)
	m.refresh()
	if err != nil {
		m.setStatus("Reset for this session only: "+err.Error(), true)
		return
	}
	m.setStatus("Metrics cleared for "+m.view.Active.Name, false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) refresh() {
	m.view = dashboard.Build(m.store, m.registry, m.active, m.opts)
}
