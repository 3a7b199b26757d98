package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search      key.Binding
	Submit      key.Binding
	Cancel      key.Binding
	NextCat     key.Binding
	PrevCat     key.Binding
	JumpCat     key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Open        key.Binding
	Featured    key.Binding
	CarouselPrv key.Binding
	CarouselNxt key.Binding
	Browser     key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		NextCat:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
		PrevCat:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev category")),
		JumpCat:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "category")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read")),
		Featured:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "read featured")),
		CarouselPrv: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev featured")),
		CarouselNxt: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next featured")),
		Browser:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextCat, k.Open, k.CarouselNxt, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Submit, k.Cancel},
		{k.NextCat, k.PrevCat, k.JumpCat},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Featured, k.Browser},
		{k.CarouselPrv, k.CarouselNxt, k.Refresh},
		{k.Help, k.Quit},
	}
}

// modalKeys is shown while an article is open.
type modalKeys struct{ k keyMap }

func (m modalKeys) ShortHelp() []key.Binding {
	return []key.Binding{m.k.Browser, m.k.Cancel, m.k.Quit}
}

func (m modalKeys) FullHelp() [][]key.Binding { return [][]key.Binding{m.ShortHelp()} }
