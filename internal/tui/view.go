package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrSnakeDoc/newsdesk/internal/controller"
	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	cardBodyLines = 5
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.categoryView())
	b.WriteString("\n\n")

	if article, ok := m.state.Selected(); ok {
		b.WriteString(m.modalView(article))
	} else {
		b.WriteString(m.bodyView())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if _, ok := m.state.Selected(); ok {
		b.WriteString(m.help.View(modalKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m *Model) viewWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m *Model) viewHeight() int {
	if m.height <= 0 {
		return defaultHeight
	}
	return m.height
}

func (m *Model) headerView() string {
	logo := lipgloss.JoinVertical(lipgloss.Left,
		logoStyle.Render("◉ NewsDesk"),
		taglineStyle.Render("Stay Informed"),
	)

	search := m.input.View()
	if !m.searching && m.input.Value() == "" {
		search = mutedStyle.Render("press / to search news")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, logo, "    ", search)
}

func (m *Model) categoryView() string {
	var tabs []string
	for i, c := range domain.Categories() {
		label := fmt.Sprintf("%d %s", i+1, c.DisplayName())
		if c == m.state.ActiveCategory && !m.state.SearchActive() {
			tabs = append(tabs, activeTabStyle.Render(label))
			continue
		}
		tabs = append(tabs, tabStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) bodyView() string {
	s := m.state

	switch s.Phase {
	case controller.PhaseIdle, controller.PhaseLoading:
		return fmt.Sprintf("%s Loading latest news...", m.spinner.View())

	case controller.PhaseFailed:
		return errorStyle.Render(s.Err) + "\n" + mutedStyle.Render("press r to retry")
	}

	if len(s.Articles) == 0 {
		msg := "No articles available at the moment. Please try again later."
		if s.SearchActive() {
			msg = fmt.Sprintf("No articles found for %q. Try a different search term.", s.SearchQuery)
		}
		return headingStyle.Render("No articles found") + "\n" + mutedStyle.Render(msg)
	}

	var parts []string
	if a, ok := m.carousel.current(s.Articles); ok {
		parts = append(parts, m.carouselView(a))
	}
	parts = append(parts, statusStyle.Render(m.statusLine()), m.gridView())
	return strings.Join(parts, "\n")
}

// statusLine summarizes the list above the grid.
func (m *Model) statusLine() string {
	s := m.state
	if s.SearchActive() {
		return fmt.Sprintf("Found %d articles for %q", len(s.Articles), s.SearchQuery)
	}
	return fmt.Sprintf("%s · Found %d articles", s.ActiveCategory.DisplayName(), len(s.Articles))
}

func (m *Model) carouselView(a domain.Article) string {
	width := m.viewWidth() - 4
	inner := width - 6

	var dots []string
	for i := 0; i < m.carousel.length; i++ {
		if i == m.carousel.index {
			dots = append(dots, "●")
		} else {
			dots = append(dots, "○")
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		badgeStyle.Render(a.Source.Name),
		titleStyle.Width(inner).MaxHeight(2).Render(a.Title),
		descStyle.Width(inner).MaxHeight(2).Render(a.Description),
		mutedStyle.Render(fmt.Sprintf("%s   %d/%d   f read · [ ] browse",
			strings.Join(dots, " "), m.carousel.index+1, m.carousel.length)),
	)
	return headingStyle.Render("Featured Stories") + "\n" + carouselStyle.Width(width).Render(body)
}

func (m *Model) gridView() string {
	articles := m.state.Articles
	cols := m.columns()
	cardWidth := (m.viewWidth()-2)/cols - 2
	inner := cardWidth - 4

	rows := (len(articles) + cols - 1) / cols
	start, end := m.visibleRows(rows, cardBodyLines+2)

	var lines []string
	for r := start; r < end; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(articles) {
				break
			}
			style := cardStyle
			if i == m.focus {
				style = focusedCardStyle
			}
			cards = append(cards, style.Width(cardWidth).Height(cardBodyLines).Render(m.cardView(articles[i], inner)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	if end < rows {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("↓ %d more", len(articles)-end*cols)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// visibleRows returns the window of grid rows that keeps the focused card on screen.
func (m *Model) visibleRows(rows, rowHeight int) (int, int) {
	avail := m.viewHeight() - 12
	if _, ok := m.carousel.current(m.state.Articles); ok {
		avail -= 8
	}
	fit := max(1, avail/rowHeight)

	focusRow := m.focus / m.columns()
	start := 0
	if focusRow >= fit {
		start = focusRow - fit + 1
	}
	return start, min(rows, start+fit)
}

func (m *Model) cardView(a domain.Article, inner int) string {
	meta := a.Source.Name
	if rel := domain.RelativeTime(a.PublishedAt, m.now()); rel != "" {
		meta += " · " + rel
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Width(inner).MaxHeight(1).Render(meta),
		titleStyle.Width(inner).MaxHeight(2).Render(a.Title),
		descStyle.Width(inner).MaxHeight(2).Render(a.Description),
	)
}

func (m *Model) modalView(a domain.Article) string {
	width := min(m.viewWidth()-4, 100)
	inner := width - 6

	meta := badgeStyle.Render(a.Source.Name)
	if rel := domain.RelativeTime(a.PublishedAt, m.now()); rel != "" {
		meta += "  " + mutedStyle.Render(rel)
	}

	parts := []string{meta, "", titleStyle.Width(inner).Render(a.Title)}
	if a.Author != "" {
		parts = append(parts, mutedStyle.Render("By "+a.Author))
	}
	if a.Description != "" {
		parts = append(parts, "", descStyle.Width(inner).Italic(true).Render(a.Description))
	}
	if content := domain.CleanContent(a.Content); content != "" {
		parts = append(parts, "", lipgloss.NewStyle().Width(inner).Render(content))
	}
	parts = append(parts,
		"",
		mutedStyle.Render("Image: "+domain.ImageOrPlaceholder(a.ImageURL)),
		mutedStyle.Render("Read full article: "+a.URL),
	)
	return modalStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
