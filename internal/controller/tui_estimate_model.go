package controller

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fileDelegate renders a unit file row: candidate count, then path.
type fileDelegate struct {
	offset int
}

func (d fileDelegate) Height() int                             { return 1 }
func (d fileDelegate) Spacing() int                            { return 0 }
func (d fileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d fileDelegate) withOffset(offset int) rowDelegate {
	d.offset = offset
	return d
}

func (d fileDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	file, ok := item.(fileItem)
	if !ok {
		return
	}

	pathWidth := l.Width() - 8
	count := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	path := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	text := truncateToWidth(file.path, pathWidth)

	if index == l.Index() {
		count, path = selectedStyle(), selectedStyle()
		text = marquee(file.path, pathWidth, d.offset)
	}

	_, _ = fmt.Fprintf(w, "%s  %s",
		count.Width(6).Align(lipgloss.Right).Render(strconv.Itoa(file.count)),
		path.Render(text),
	)
}

// estimateModel shows candidate counts per unit file and per kind.
type estimateModel struct {
	width    int
	height   int
	files    scrollList
	total    int
	units    int
	kinds    []kindStat
	err      error
	rendered bool
}

func newEstimateModel() estimateModel {
	return estimateModel{
		width:  defaultWidth,
		height: defaultHeight,
		files:  newScrollList(fileDelegate{}, "Filter by unit…"),
	}
}

func (em estimateModel) Init() tea.Cmd {
	return tick(time.Second / 2)
}

func (em estimateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		em.width = msg.Width
		em.height = msg.Height

	case tickMsg:
		if !em.rendered {
			return em, nil
		}

		em.files = em.files.tick()

		return em, tick(150 * time.Millisecond)

	case tea.KeyMsg:
		if s := msg.String(); s == "q" || s == "ctrl+c" {
			return em, tea.Quit
		}

		var cmd tea.Cmd

		em.files, cmd = em.files.update(msg)

		return em, cmd

	case estimationMsg:
		em = em.withEstimation(msg)
	}

	return em, nil
}

func (em estimateModel) withEstimation(msg estimationMsg) estimateModel {
	em.rendered = true
	em.err = msg.err

	if msg.err != nil {
		return em
	}

	items := make([]list.Item, 0, len(msg.fileStats))
	for _, stat := range msg.fileStats {
		items = append(items, fileItem(stat))
	}

	em.total = msg.total
	em.units = len(items)
	em.kinds = msg.kindStats
	em.files = em.files.setItems(items)

	return em
}

func (em estimateModel) View() string {
	if !em.rendered {
		return "Loading candidate list…\n"
	}

	title := renderTitle("🧬 Bytemut Candidate Estimate")

	if em.err != nil {
		failure := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 0, 1, 2)
		return lipgloss.JoinVertical(lipgloss.Left, title, failure.Render("Estimation failed: "+em.err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		em.renderCounts(),
		em.renderFiles(),
		renderFooter(em.width, "↑/k up • ↓/j down • g/G top/bottom • / filter • q quit"),
	)
}

func (em estimateModel) renderCounts() string {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	kinds := make([]string, 0, len(em.kinds))
	for _, stat := range em.kinds {
		kinds = append(kinds, stat.kind+" "+accent.Render(strconv.Itoa(stat.count)))
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2).
		Render(fmt.Sprintf("Total Candidates: %s   Units: %s\n%s",
			accent.Render(strconv.Itoa(em.total)),
			accent.Render(strconv.Itoa(em.units)),
			strings.Join(kinds, " • "),
		))
}

func (em estimateModel) renderFiles() string {
	// title, counts, footer, border and header take ten rows
	return em.files.view(fmt.Sprintf("%6s  %s", "Count", "Unit"), em.width-6, max(em.height-10, 5))
}
