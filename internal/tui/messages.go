package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/newsdesk/internal/controller"
	"github.com/MrSnakeDoc/newsdesk/internal/sources"
)

// fetchResultMsg carries a FetchSucceeded or FetchFailed back into Update.
type fetchResultMsg struct {
	event controller.Event
}

// carouselTickMsg advances the carousel when gen still matches.
type carouselTickMsg struct {
	gen int
}

type browserOpenedMsg struct {
	url string
	err error
}

type clearStatusMsg struct {
	id int
}

func fetchCmd(src sources.Source, req controller.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		return fetchResultMsg{event: controller.Fetch(context.Background(), src, req, timeout)}
	}
}

func carouselTickCmd(after time.Duration, gen int) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return carouselTickMsg{gen: gen}
	})
}

func openBrowserCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg{url: url, err: open(url)}
	}
}

func clearStatusCmd(after time.Duration, id int) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
