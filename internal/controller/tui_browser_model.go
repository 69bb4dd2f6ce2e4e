package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/bigo/internal/model"
)

type tickMsg time.Time

const badgeWidth = 10

var notationColors = map[string]lipgloss.Color{
	string(m.Constant):     lipgloss.Color("10"),
	string(m.Logarithmic):  lipgloss.Color("10"),
	string(m.Linear):       lipgloss.Color("14"),
	string(m.Linearithmic): lipgloss.Color("14"),
	string(m.Quadratic):    lipgloss.Color("11"),
	string(m.Cubic):        lipgloss.Color("208"),
	string(m.Exponential):  lipgloss.Color("9"),
}

func badgeColor(badge string) lipgloss.Color {
	if c, ok := notationColors[badge]; ok {
		return c
	}

	return lipgloss.Color("9")
}

// resultDelegate renders one badge + label row per item.
type resultDelegate struct {
	offset int
}

func (d resultDelegate) Height() int  { return 1 }
func (d resultDelegate) Spacing() int { return 0 }
func (d resultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d resultDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	result, ok := item.(resultItem)
	if !ok {
		return
	}

	isSelected := index == l.Index()
	width := l.Width() - badgeWidth - 2

	badgeStyle := lipgloss.NewStyle().
		Foreground(badgeColor(result.badge)).
		Bold(true).
		Width(badgeWidth)

	var labelStyle lipgloss.Style

	var label string

	if isSelected {
		labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		label = animateScroll(result.label, width, d.offset)
	} else {
		labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		label = truncateToWidth(result.label, width)
	}

	_, _ = fmt.Fprintf(w, "%s  %s", badgeStyle.Render(result.badge), labelStyle.Render(label))
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	gap := "   "

	// ticks to wait before scrolling
	pause := 5

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + gap)
	n := len(runes)
	start := (offset - pause) % n

	res := make([]rune, 0, width)
	for i := range width {
		res = append(res, runes[(start+i)%n])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// browserModel shows a filterable list of results next to the selected
// item's detail.
type browserModel struct {
	title        string
	summary      string
	width        int
	height       int
	list         list.Model
	delegate     resultDelegate
	animOffset   int
	lastSelected int
}

func newBrowserModel(title, summary string, items []resultItem) browserModel {
	delegate := resultDelegate{}

	listItems := make([]list.Item, 0, len(items))
	for _, item := range items {
		listItems = append(listItems, item)
	}

	l := list.New(listItems, delegate, 40, 20)
	l.SetShowPagination(false)
	l.SetShowFilter(true)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.FilterInput.Placeholder = "Filter…"

	return browserModel{
		title:    title,
		summary:  summary,
		width:    80,
		height:   24,
		list:     l,
		delegate: delegate,
	}
}

func (b browserModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height

	case tickMsg:
		if b.list.FilterState() == list.Filtering {
			return b, nil
		}

		b.animOffset++
		b.delegate.offset = b.animOffset
		b.list.SetDelegate(b.delegate)

		return b, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyMsg:
		if b.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c", "esc":
				return b, tea.Quit
			}
		} else if msg.String() == "ctrl+c" {
			return b, tea.Quit
		}

		b.list, cmd = b.list.Update(msg)

		if b.list.Index() != b.lastSelected {
			b.lastSelected = b.list.Index()
			b.animOffset = 0
			b.delegate.offset = 0
			b.list.SetDelegate(b.delegate)
		}

		return b, cmd
	}

	return b, cmd
}

func (b browserModel) selected() (resultItem, bool) {
	item, ok := b.list.SelectedItem().(resultItem)

	return item, ok
}

func (b browserModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(b.width)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(b.title),
		summaryStyle.Render(b.summary),
		b.renderPanes(),
		footerStyle.Render("↑/k up • ↓/j down • / filter • q quit"),
	)
}

func (b browserModel) renderPanes() string {
	// title, summary, footer and borders
	paneHeight := max(b.height-9, 5)

	listWidth := max(b.width*2/5, 24)
	detailWidth := max(b.width-listWidth-10, 20)

	b.list.SetHeight(paneHeight)
	b.list.SetWidth(listWidth)

	listPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1).
		Height(paneHeight).
		Render(b.list.View())

	detail := "Nothing selected"
	if item, ok := b.selected(); ok {
		detail = item.detail
	}

	detailPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Width(detailWidth).
		Height(paneHeight).
		MaxHeight(paneHeight + 2).
		Render(detail)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}
