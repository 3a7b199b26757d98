package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

// carousel rotates through the first size articles of the current list.
//
// Every start or stop bumps gen. A tick scheduled under an older gen is
// ignored, which is how a pending tick is cancelled.
type carousel struct {
	size     int
	interval time.Duration

	index   int
	length  int
	gen     int
	running bool
	listGen uint64
}

func newCarousel(size int, interval time.Duration) carousel {
	if size <= 0 {
		size = 5
	}
	return carousel{size: size, interval: interval}
}

// featured returns the slice of articles the carousel shows.
func (c *carousel) featured(articles []domain.Article) []domain.Article {
	if len(articles) > c.size {
		return articles[:c.size]
	}
	return articles
}

// sync mounts, remounts or unmounts the carousel for the given list.
func (c *carousel) sync(visible bool, listGen uint64, articles []domain.Article) tea.Cmd {
	if !visible {
		c.stop()
		return nil
	}
	if c.running && listGen == c.listGen {
		return nil
	}
	c.listGen = listGen
	c.length = len(c.featured(articles))
	c.index = 0
	return c.restart()
}

func (c *carousel) restart() tea.Cmd {
	c.gen++
	c.running = true
	if c.interval <= 0 || c.length == 0 {
		return nil
	}
	return carouselTickCmd(c.interval, c.gen)
}

func (c *carousel) stop() {
	if !c.running {
		return
	}
	c.gen++
	c.running = false
}

// tick advances on a current tick and schedules the next one.
func (c *carousel) tick(msg carouselTickMsg) tea.Cmd {
	if !c.running || msg.gen != c.gen || c.length == 0 {
		return nil
	}
	c.index = (c.index + 1) % c.length
	return carouselTickCmd(c.interval, c.gen)
}

func (c *carousel) next() tea.Cmd {
	if !c.running || c.length == 0 {
		return nil
	}
	c.index = (c.index + 1) % c.length
	return c.restart()
}

func (c *carousel) prev() tea.Cmd {
	if !c.running || c.length == 0 {
		return nil
	}
	c.index = (c.index - 1 + c.length) % c.length
	return c.restart()
}

// current returns the article on display.
func (c *carousel) current(articles []domain.Article) (domain.Article, bool) {
	featured := c.featured(articles)
	if !c.running || len(featured) == 0 {
		return domain.Article{}, false
	}
	return featured[c.index%len(featured)], true
}
