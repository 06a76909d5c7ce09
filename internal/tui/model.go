// Package tui is a terminal front-end for the weapon catalog.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meur/loadout/internal/catalog"
	"github.com/meur/loadout/internal/models"
	"github.com/meur/loadout/internal/view"
)

// Model is the bubbletea model of the catalog browser
type Model struct {
	catalog *catalog.Catalog
	state   *view.State
	promo   string

	cursor int
	keys   keyMap
	help   help.Model
	width  int
}

// New creates a Model over c. promo is the text of the dismissible panel.
func New(c *catalog.Catalog, promo string) Model {
	return Model{
		catalog: c,
		state:   view.NewState(),
		promo:   promo,
		keys:    keys,
		help:    help.New(),
	}
}

// Run starts the terminal program and blocks until the user quits
func Run(c *catalog.Catalog, promo string) error {
	_, err := tea.NewProgram(New(c, promo), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Prev):
			m.selectCategory(m.categoryIndex() - 1)
		case key.Matches(msg, m.keys.Next):
			m.selectCategory(m.categoryIndex() + 1)
		case key.Matches(msg, m.keys.Jump):
			m.selectCategory(int(msg.Runes[0] - '1'))
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if m.cursor < len(m.visible()) {
				m.state.Toggle(m.cursor)
			}
		case key.Matches(msg, m.keys.Dismiss):
			m.state.DismissPromo()
		}
	}
	return m, nil
}

func (m Model) visible() []models.Weapon {
	return m.catalog.ByCategory(m.state.Category())
}

func (m Model) categoryIndex() int {
	for i, c := range models.Categories() {
		if c == m.state.Category() {
			return i
		}
	}
	return 0
}

// selectCategory selects the i-th category, wrapping around the ends
func (m *Model) selectCategory(i int) {
	categories := models.Categories()
	n := len(categories)
	m.state.Select(categories[((i%n)+n)%n])

	if last := len(m.visible()) - 1; m.cursor > last {
		m.cursor = max(last, 0)
	}
}

func (m Model) View() string {
	page := view.Render(m.catalog, m.state)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Warzone Meta Loadouts"))
	b.WriteString("\n\n")

	tabs := make([]string, len(page.Tabs))
	for i, t := range page.Tabs {
		label := fmt.Sprintf("%d %s (%d)", i+1, t.Name, t.Count)
		if t.Active {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if page.PromoVisible && m.promo != "" {
		b.WriteString(promoStyle.Render(m.promo + metaStyle.Render("  [x] dismiss")))
		b.WriteString("\n\n")
	}

	if len(page.Cards) == 0 {
		b.WriteString(metaStyle.Render("No weapons in " + page.Category))
		b.WriteString("\n")
	}
	for _, card := range page.Cards {
		b.WriteString(m.renderCard(card))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderCard(card view.Card) string {
	w := card.Weapon
	lines := []string{
		nameStyle.Render(fmt.Sprintf("#%d %s", w.Rank, w.Name)),
		metaStyle.Render("Type: " + w.Type + "  Game: " + w.Game),
	}
	for _, a := range card.Attachments {
		lines = append(lines, attachmentStyle.Render("• "+a))
	}

	style := cardStyle
	if card.Pos == m.cursor {
		style = selectedCardStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}
