package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

const shortIDWidth = 8

// mutantDelegate renders one report as id, status, kind and location columns.
type mutantDelegate struct {
	offset int
}

func (d mutantDelegate) Height() int                             { return 1 }
func (d mutantDelegate) Spacing() int                            { return 0 }
func (d mutantDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d mutantDelegate) withOffset(offset int) rowDelegate {
	d.offset = offset
	return d
}

func (d mutantDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	mutant, ok := item.(mutantItem)
	if !ok {
		return
	}

	details := mutant.report.Candidate.Details
	location := fmt.Sprintf("%s:%d", details.ID.Location, details.Line)
	locationWidth := l.Width() - 40

	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(10)
	statusStyle := lipgloss.NewStyle().Foreground(statusColor(mutant.report.Status)).Bold(true).Width(9)
	kindStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Width(21)
	locationStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	displayLocation := truncateToWidth(location, locationWidth)

	if index == l.Index() {
		idStyle = selectedStyle().Width(10)
		statusStyle = selectedStyle().Width(9)
		kindStyle = selectedStyle().Width(21)
		locationStyle = selectedStyle()
		displayLocation = marquee(location, locationWidth, d.offset)
	}

	_, _ = fmt.Fprintf(w, "%s%s%s%s",
		idStyle.Render(details.ID.ShortID()[:shortIDWidth]),
		statusStyle.Render(mutant.report.Status.String()),
		kindStyle.Render(truncateToWidth(kindLabel(details.ID.Kind), 20)),
		locationStyle.Render(displayLocation),
	)
}

func statusColor(status m.MutantStatus) lipgloss.Color {
	switch status {
	case m.Written:
		return lipgloss.Color("2")
	case m.Failed:
		return lipgloss.Color("1")
	default:
		return lipgloss.Color("8")
	}
}

func mutantItems(reports []m.Report) []list.Item {
	items := make([]list.Item, 0, len(reports))
	for _, report := range reports {
		items = append(items, mutantItem{report: report})
	}

	return items
}

// mutantBrowser is the mutant list shared by the run and view screens.
// Enter toggles a detail box for the selected mutant.
type mutantBrowser struct {
	mutants     scrollList
	showDetails bool
}

func newMutantBrowser() mutantBrowser {
	return mutantBrowser{mutants: newScrollList(mutantDelegate{}, "Filter mutants…")}
}

func (b mutantBrowser) setReports(reports []m.Report) mutantBrowser {
	b.mutants = b.mutants.setItems(mutantItems(reports))
	return b
}

func (b mutantBrowser) update(msg tea.Msg) (mutantBrowser, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !b.mutants.filtering() {
		if s := key.String(); s == "enter" || s == " " {
			b.showDetails = !b.showDetails
			return b, nil
		}
	}

	var cmd tea.Cmd

	b.mutants, cmd = b.mutants.update(msg)

	return b, cmd
}

func (b mutantBrowser) tick() mutantBrowser {
	b.mutants = b.mutants.tick()
	return b
}

func (b mutantBrowser) selected() (m.Report, bool) {
	item, ok := b.mutants.model.SelectedItem().(mutantItem)
	return item.report, ok
}

func (b mutantBrowser) view(width, height int) string {
	listWidth := width - 4

	detailsBox := ""
	if b.showDetails {
		if report, ok := b.selected(); ok {
			detailsBox = renderDetailsBox(report, listWidth)
		}
	}

	header := fmt.Sprintf("%-10s%-9s%-21s%s", "ID", "Status", "Kind", "Location")
	box := b.mutants.view(header, listWidth, max(height-9-lipgloss.Height(detailsBox), 5))

	if detailsBox == "" {
		return box
	}

	return lipgloss.JoinVertical(lipgloss.Left, box, detailsBox)
}

func renderDetailsBox(report m.Report, width int) string {
	details := report.Candidate.Details
	contentWidth := max(width-4, 10)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true)

	lines := []string{
		label.Render("ID") + " " + truncateToWidth(details.ID.String(), contentWidth-3),
		label.Render("Unit") + " " + truncateToWidth(string(report.Candidate.Origin), contentWidth-5),
		label.Render("Change") + " " + details.Description,
	}

	if details.InFinally {
		lines = append(lines, label.Render("Finally")+" yes")
	}

	switch {
	case report.Err != "":
		lines = append(lines, label.Render("Error")+" "+
			lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(truncateToWidth(report.Err, contentWidth-6)))
	case report.Output != "":
		lines = append(lines, label.Render("Mutant")+" "+truncateToWidth(string(report.Output), contentWidth-7))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1, 0, 0).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// reportsModel browses the manifest of a reports directory.
type reportsModel struct {
	width    int
	height   int
	browser  mutantBrowser
	summary  Summary
	rendered bool
}

func newReportsModel() reportsModel {
	return reportsModel{
		width:   defaultWidth,
		height:  defaultHeight,
		browser: newMutantBrowser(),
	}
}

func (rm reportsModel) Init() tea.Cmd {
	return tick(time.Second / 2)
}

func (rm reportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height

	case tickMsg:
		if rm.rendered {
			rm.browser = rm.browser.tick()
		}

		return rm, tick(150 * time.Millisecond)

	case tea.KeyMsg:
		if s := msg.String(); s == "q" || s == "ctrl+c" {
			return rm, tea.Quit
		}

		rm.browser, cmd = rm.browser.update(msg)

	case tea.MouseMsg:
		rm.browser, cmd = rm.browser.update(msg)

	case reportsMsg:
		rm.summary = Summarize(msg.reports)
		rm.browser = rm.browser.setReports(msg.reports)
		rm.rendered = true
	}

	return rm, cmd
}

func (rm reportsModel) View() string {
	if !rm.rendered {
		return "Loading reports…\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderTitle("🧬 Bytemut Mutants"),
		renderSummary(rm.summary),
		rm.browser.view(rm.width, rm.height),
		renderFooter(rm.width, "↑/k up • ↓/j down • / filter • enter details • q quit"),
	)
}

func renderSummary(summary Summary) string {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2).
		Render(fmt.Sprintf(
			"Total: %s  •  Written: %s  •  Failed: %s  •  Skipped: %s",
			accent.Render(fmt.Sprintf("%d", summary.Total)),
			accent.Render(fmt.Sprintf("%d", summary.Written)),
			accent.Render(fmt.Sprintf("%d", summary.Failed)),
			accent.Render(fmt.Sprintf("%d", summary.Skipped)),
		))
}
