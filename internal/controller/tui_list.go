package controller

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	marqueeGap   = "   "
	marqueePause = 5
	ellipsis     = "…"
)

// rowDelegate renders single-line rows and tracks how far the selected row
// has scrolled.
type rowDelegate interface {
	list.ItemDelegate
	withOffset(offset int) rowDelegate
}

// scrollList is a filterable list whose selected row scrolls sideways when
// it is wider than the list.
type scrollList struct {
	model    list.Model
	delegate rowDelegate
	offset   int
	selected int
}

func newScrollList(delegate rowDelegate, placeholder string) scrollList {
	model := list.New(nil, delegate, defaultWidth, defaultHeight)
	model.SetShowTitle(false)
	model.SetShowStatusBar(false)
	model.SetShowPagination(false)
	model.SetShowHelp(false)
	model.SetShowFilter(true)
	model.FilterInput.Placeholder = placeholder

	return scrollList{model: model, delegate: delegate, selected: -1}
}

func (l scrollList) setItems(items []list.Item) scrollList {
	l.model.SetItems(items)

	if len(items) > 0 && l.selected < 0 {
		l.selected = 0
	}

	return l
}

func (l scrollList) filtering() bool {
	return l.model.FilterState() == list.Filtering
}

// update forwards msg to the list and restarts scrolling when the selection
// moves.
func (l scrollList) update(msg tea.Msg) (scrollList, tea.Cmd) {
	var cmd tea.Cmd

	l.model, cmd = l.model.Update(msg)

	if index := l.model.Index(); index != l.selected {
		l.selected = index
		l = l.scrollTo(0)
	}

	return l, cmd
}

func (l scrollList) tick() scrollList {
	if l.filtering() {
		return l
	}

	return l.scrollTo(l.offset + 1)
}

func (l scrollList) scrollTo(offset int) scrollList {
	l.offset = offset
	l.delegate = l.delegate.withOffset(offset)
	l.model.SetDelegate(l.delegate)

	return l
}

// view renders header above the rows inside a rounded box.
func (l scrollList) view(header string, width, height int) string {
	l.model.SetWidth(width)
	l.model.SetHeight(height)

	head := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(width).
		Render(header)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		MarginRight(1).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, head, l.model.View()))
}

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("6")).
		Bold(true)
}

// marquee returns a window of width cells over text. Text that does not fit
// is truncated for the first few ticks, then the window moves one rune per
// tick and wraps through a short gap.
func marquee(text string, width, offset int) string {
	switch {
	case width <= 0:
		return ""
	case lipgloss.Width(text) <= width:
		return text
	case offset < marqueePause:
		return truncateToWidth(text, width)
	}

	ring := []rune(text + marqueeGap)
	start := (offset - marqueePause) % len(ring)

	window := make([]rune, width)
	for i := range window {
		window[i] = ring[(start+i)%len(ring)]
	}

	return string(window)
}

func truncateToWidth(text string, width int) string {
	switch {
	case width <= 0:
		return ""
	case lipgloss.Width(text) <= width:
		return text
	}

	budget := width - lipgloss.Width(ellipsis)

	var b strings.Builder

	for _, r := range text {
		cell := lipgloss.Width(string(r))
		if cell > budget {
			break
		}

		b.WriteRune(r)
		budget -= cell
	}

	return b.String() + ellipsis
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func renderTitle(title string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2).
		Render(title)
}

func renderFooter(width int, help string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(width).
		Render(help)
}
