package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeremyforan/go-interaction-publisher"
)

// model is the host view: it owns the button control and the subscriptions that
// observe it, and cancels them when the program quits.
type model struct {
	title   string
	event   interaction.EventID
	counter int

	button       *interaction.Control
	cancellables interaction.Bag
	logger       *slog.Logger

	width  int
	height int

	buttonStyle lipgloss.Style
	helpStyle   lipgloss.Style
}

func newModel(cfg *Config, button *interaction.Control, logger *slog.Logger) *model {
	m := &model{
		title:       cfg.Title,
		event:       interaction.EventID(cfg.Event),
		counter:     cfg.InitialCount,
		button:      button,
		logger:      logger,
		buttonStyle: lipgloss.NewStyle().Padding(0, 3).Border(lipgloss.RoundedBorder()).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("255")),
		helpStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
	m.observeButtonTaps()
	return m
}

func (m *model) observeButtonTaps() {
	interaction.Sink(m.button.Publisher(m.event), func() {
		m.counter--
		m.logger.Info("tapped", "counter", m.counter)
	}).Store(&m.cancellables)
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancellables.CancelAll()
			return m, tea.Quit
		case " ", "enter":
			m.button.Fire(m.event)
		}
	}
	return m, nil
}

func (m *model) View() string {
	button := m.buttonStyle.Render(fmt.Sprintf("%s %d", m.title, m.counter))
	help := m.helpStyle.Render("space/enter: tap • q: quit")
	content := lipgloss.JoinVertical(lipgloss.Center, button, "", help)

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
