package controller

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

// recentMutants is how many of the latest mutants the progress screen lists.
const recentMutants = 8

// runModel shows progress while mutants are written, then the mutant list.
type runModel struct {
	width       int
	height      int
	progressBar progress.Model
	threads     int
	shardIndex  int
	shards      int
	total       int
	reports     []m.Report
	summary     Summary
	finished    bool
	browser     mutantBrowser
}

func newRunModel() runModel {
	return runModel{
		width:  defaultWidth,
		height: defaultHeight,
		progressBar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
		shards:  1,
		browser: newMutantBrowser(),
	}
}

func (rm runModel) Init() tea.Cmd {
	return tick(100 * time.Millisecond)
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height
		rm.progressBar.Width = max(rm.width-8, 20)

	case tickMsg:
		if rm.finished {
			rm.browser = rm.browser.tick()
		}

		return rm, tick(150 * time.Millisecond)

	case tea.KeyMsg:
		if s := msg.String(); s == "q" || s == "ctrl+c" {
			return rm, tea.Quit
		}

		if rm.finished {
			rm.browser, cmd = rm.browser.update(msg)
		}

	case tea.MouseMsg:
		if rm.finished {
			rm.browser, cmd = rm.browser.update(msg)
		}

	case concurrencyMsg:
		rm.threads = msg.threads
		rm.shardIndex = msg.shardIndex
		rm.shards = max(msg.shards, 1)

	case upcomingMsg:
		rm.total = msg.count

	case mutantMsg:
		rm.reports = append(rm.reports, msg.report)

	case summaryMsg:
		rm.summary = msg.summary
		rm.finished = true
		rm.browser = rm.browser.setReports(rm.reports)
	}

	return rm, cmd
}

func (rm runModel) percent() float64 {
	if rm.total == 0 {
		return 0
	}

	return min(float64(len(rm.reports))/float64(rm.total), 1)
}

func (rm runModel) View() string {
	if rm.finished {
		return lipgloss.JoinVertical(lipgloss.Left,
			renderTitle("🧬 Bytemut Mutants"),
			renderSummary(rm.summary),
			rm.browser.view(rm.width, rm.height),
			renderFooter(rm.width, "↑/k up • ↓/j down • / filter • enter details • q quit"),
		)
	}

	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2).
		Render(fmt.Sprintf(
			"Progress: %s / %s  •  Threads: %s  •  Shard: %s / %s",
			accent.Render(fmt.Sprintf("%d", len(rm.reports))),
			accent.Render(fmt.Sprintf("%d", rm.total)),
			accent.Render(fmt.Sprintf("%d", rm.threads)),
			accent.Render(fmt.Sprintf("%d", rm.shardIndex)),
			accent.Render(fmt.Sprintf("%d", rm.shards)),
		))

	bar := lipgloss.NewStyle().Padding(0, 2).Render(rm.progressBar.ViewAs(rm.percent()))

	return lipgloss.JoinVertical(lipgloss.Left,
		renderTitle("🧬 Bytemut Run"),
		status,
		bar,
		rm.renderRecent(),
		renderFooter(rm.width, "Press q to quit"),
	)
}

func (rm runModel) renderRecent() string {
	start := max(len(rm.reports)-recentMutants, 0)
	width := max(rm.width-8, 10)

	lines := make([]string, 0, recentMutants)
	for _, report := range rm.reports[start:] {
		status := lipgloss.NewStyle().Foreground(statusColor(report.Status)).Width(9).Render(report.Status.String())
		lines = append(lines, status+truncateToWidth(formatDetails(report.Candidate.Details), width-9))
	}

	if len(lines) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("waiting for mutants…"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Margin(1, 1, 1, 0).
		Width(max(rm.width-4, 10)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
