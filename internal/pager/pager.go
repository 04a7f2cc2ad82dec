package pager

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/spaggo/internal/display"
)

type keyMap struct {
	Quit   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
	}
}

// Model is a scrollable view over pre-rendered text.
type Model struct {
	title    string
	content  string
	theme    display.Theme
	keys     keyMap
	viewport viewport.Model
	ready    bool
}

// New returns a pager model for content.
func New(title, content string, theme display.Theme) Model {
	return Model{
		title:   title,
		content: content,
		theme:   theme,
		keys:    defaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		height := msg.Height - lipgloss.Height(m.header()) - lipgloss.Height(m.footer())
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return strings.Join([]string{m.header(), m.viewport.View(), m.footer()}, "\n")
}

func (m Model) header() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Heading)).
		Render(m.title)
}

func (m Model) footer() string {
	percent := 100.0
	if m.ready {
		percent = m.viewport.ScrollPercent() * 100
	}
	help := fmt.Sprintf("%s %s • j/k scroll • %s top • %s bottom • %3.0f%%",
		m.keys.Quit.Help().Key, strings.ToLower(m.keys.Quit.Help().Desc),
		m.keys.Top.Help().Key, m.keys.Bottom.Help().Key, percent)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted)).Render(help)
}

// Run shows content full-screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, title, content string, theme display.Theme) error {
	p := tea.NewProgram(New(title, content, theme), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run pager: %w", err)
	}
	return nil
}
