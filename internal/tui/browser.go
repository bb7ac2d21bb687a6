// Package tui implements the interactive hand-outcome browser. It
// shows every enumerated opening hand with its keep decision and lets
// the user toggle mulligan parameters, recomputing the strategy on the
// fly.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/decklab/internal/resultcache"
	"github.com/lox/decklab/mulligan"
)

const penaltyStep = 0.05

// BrowserModel is the Bubble Tea model for the strategy browser.
type BrowserModel struct {
	deck   mulligan.Deck
	params mulligan.Params
	logger *log.Logger

	cache    *resultcache.Cache[*mulligan.Strategy]
	strategy *mulligan.Strategy
	err      error

	handViewport viewport.Model
	keepOnly     bool

	width       int
	height      int
	initialized bool
	quitting    bool
}

// NewBrowser creates a browser for the given deck, computing the
// initial strategy eagerly so errors surface before the program
// starts.
func NewBrowser(deck mulligan.Deck, params mulligan.Params, logger *log.Logger) (*BrowserModel, error) {
	m := &BrowserModel{
		deck:         deck,
		params:       params,
		logger:       logger.WithPrefix("browser"),
		cache:        resultcache.New[*mulligan.Strategy](),
		handViewport: viewport.New(10, 5),
	}
	if err := m.recompute(); err != nil {
		return nil, err
	}
	return m, nil
}

// recompute fetches or computes the strategy for the current
// parameters. Toggling a parameter back and forth hits the cache.
func (m *BrowserModel) recompute() error {
	key := mulligan.CacheKey(m.deck, m.params)
	strategy, err := m.cache.GetOrCompute(key, func() (*mulligan.Strategy, error) {
		m.logger.Debug("computing strategy", "key", key)
		return mulligan.Compute(m.deck, m.params)
	})
	if err != nil {
		m.err = err
		return err
	}
	m.strategy = strategy
	m.err = nil
	m.handViewport.SetContent(m.renderHands())
	return nil
}

// Init implements tea.Model.
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages in the browser.
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "+", "=":
			m.setPenalty(m.params.Penalty + penaltyStep)
		case "-", "_":
			m.setPenalty(m.params.Penalty - penaltyStep)
		case "f":
			m.params.FreeMulligan = !m.params.FreeMulligan
			m.recompute()
		case "o":
			m.params.OnThePlay = !m.params.OnThePlay
			m.recompute()
		case "k":
			m.keepOnly = !m.keepOnly
			m.handViewport.SetContent(m.renderHands())
			m.handViewport.GotoTop()
		case "up":
			m.handViewport.ScrollUp(1)
		case "down":
			m.handViewport.ScrollDown(1)
		case "pgup", "b":
			m.handViewport.HalfPageUp()
		case "pgdown", " ":
			m.handViewport.HalfPageDown()
		case "home", "g":
			m.handViewport.GotoTop()
		case "end", "G":
			m.handViewport.GotoBottom()
		}
	}

	var cmd tea.Cmd
	m.handViewport, cmd = m.handViewport.Update(msg)
	return m, cmd
}

func (m *BrowserModel) setPenalty(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	m.params.Penalty = p
	m.recompute()
}

// View renders the browser.
func (m *BrowserModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(" Opening Hand Browser ")
	summary := m.renderSummary()
	help := HelpStyle.Render(
		"↑↓ scroll • +/- penalty • f free mulligan • o on the play • k kept only • q quit")

	chromeHeight := lipgloss.Height(header) + lipgloss.Height(summary) + lipgloss.Height(help) + 2
	vpHeight := m.height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := m.width - 2
	if vpWidth < 1 {
		vpWidth = 1
	}
	m.handViewport.Width = vpWidth
	m.handViewport.Height = vpHeight
	if !m.initialized {
		m.handViewport.GotoTop()
		m.initialized = true
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(vpWidth).
		Height(vpHeight)

	return lipgloss.JoinVertical(lipgloss.Top,
		header,
		summary,
		tableStyle.Render(m.handViewport.View()),
		help,
	)
}

// renderSummary shows the policy headline numbers and current
// parameters.
func (m *BrowserModel) renderSummary() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("error: %v", m.err))
	}
	s := m.strategy

	var b strings.Builder
	b.WriteString(SummaryStyle.Render(fmt.Sprintf(
		"keep %.1f%%  threshold %.3f  EV %.3f  no-mull %.3f  avg mulls %.2f  avg cards %.2f",
		s.KeepProb*100, s.Threshold, s.ExpectedSuccess, s.NoMulliganSuccess,
		s.AvgMulligans, s.ExpectedCards)))
	b.WriteString("\n")
	b.WriteString(ParamStyle.Render(fmt.Sprintf(
		"penalty %.2f  free mulligan %v  on the play %v",
		m.params.Penalty, m.params.FreeMulligan, m.params.OnThePlay)))
	return b.String()
}

// renderHands builds the hand-outcome table content.
func (m *BrowserModel) renderHands() string {
	if m.strategy == nil {
		return ""
	}

	var b strings.Builder
	for _, ct := range m.deck.Types {
		fmt.Fprintf(&b, "%10s", ct.Name)
	}
	fmt.Fprintf(&b, "%10s%10s%10s  %s\n", "Other", "P(hand)", "P(succ)", "decision")

	for _, h := range m.strategy.Hands {
		if m.keepOnly && !h.Keep {
			continue
		}
		var row strings.Builder
		typed := 0
		for _, c := range h.Counts {
			fmt.Fprintf(&row, "%10d", c)
			typed += c
		}
		fmt.Fprintf(&row, "%10d%10.4f%10.4f  ", mulligan.HandSize-typed, h.HandProb, h.SuccessProb)

		if h.Keep {
			b.WriteString(KeepStyle.Render(row.String() + "keep"))
		} else {
			b.WriteString(MulliganStyle.Render(row.String() + "mulligan"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the browser in the alternate screen and blocks until the
// user quits.
func Run(deck mulligan.Deck, params mulligan.Params, logger *log.Logger) error {
	m, err := NewBrowser(deck, params, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
