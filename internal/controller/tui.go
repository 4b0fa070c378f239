package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display. Output produced
// while no program runs, such as a single applied mutant, is printed directly.
type TUI struct {
	output  io.Writer
	input   io.Reader
	program *tea.Program
	done    chan struct{}
	started bool
	mu      sync.Mutex
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program for the selected mode.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options)

	switch cfg.mode {
	case ModeRun:
		return t.startWithModel(newRunModel())
	case ModeView:
		return t.startWithModel(newReportsModel())
	default:
		return t.startWithModel(newEstimateModel())
	}
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	options := []tea.ProgramOption{tea.WithOutput(t.output), tea.WithMouseCellMotion()}
	if t.input != nil {
		options = append(options, tea.WithInput(t.input))
	}

	if IsTTY(t.output) {
		options = append(options, tea.WithAltScreen())
	}

	t.program = tea.NewProgram(model, options...)
	t.done = make(chan struct{})
	t.started = true

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Error("TUI program stopped", "error", err)
		}
	}(t.program, t.done)

	return nil
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program, started := t.program, t.started
	t.mu.Unlock()

	if !started || program == nil {
		return
	}

	program.Send(msg)
}

func (t *TUI) isStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.started
}

// Wait blocks until the user quits the program or ctx is done.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Close stops the program and restores the terminal. It is safe to call
// more than once.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program = nil
	t.done = nil
	t.started = false
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// DisplayEstimation hands candidate counts to the estimate screen.
func (t *TUI) DisplayEstimation(ctx context.Context, candidates []m.Candidate, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	msg := estimationMsg{
		total:     len(candidates),
		fileStats: buildFileStats(candidates),
		kindStats: buildKindStats(candidates),
		err:       err,
	}

	if !t.isStarted() {
		if err != nil {
			t.printf("estimation error: %v\n", err)
		} else {
			t.printf("\n%s", renderEstimationTable(msg.fileStats, msg.total))
		}
	} else {
		t.send(msg)
	}

	return err
}

// DisplayConcurrencyInfo shows concurrency settings.
func (t *TUI) DisplayConcurrencyInfo(_ context.Context, threads int, shardIndex int, shardCount int) {
	t.send(concurrencyMsg{threads: threads, shardIndex: shardIndex, shards: shardCount})
}

// DisplayUpcomingMutantsInfo sets the size of the progress bar.
func (t *TUI) DisplayUpcomingMutantsInfo(_ context.Context, count int) {
	t.send(upcomingMsg{count: count})
}

// DisplayMutant advances the progress screen or prints the report line
// when no program runs.
func (t *TUI) DisplayMutant(_ context.Context, report m.Report) {
	if !t.isStarted() {
		t.printf("%s\n", formatReportLine(report))
		return
	}

	t.send(mutantMsg{report: report})
}

// DisplaySummary switches the run screen to the mutant list.
func (t *TUI) DisplaySummary(_ context.Context, reports []m.Report) {
	t.send(summaryMsg{summary: Summarize(reports)})
}

// DisplayReports hands a manifest to the view screen.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !t.isStarted() {
		t.printf("\n%s", renderReportsTable(reports))
		return nil
	}

	t.send(reportsMsg{reports: reports})

	return nil
}

// DisplayDiff prints a colored diff; diffs are short and stay in scrollback.
func (t *TUI) DisplayDiff(_ context.Context, details m.MutationDetails, diff string) {
	header := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render(formatDetails(details))

	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	rendered := make([]string, 0, len(lines))

	for _, line := range lines {
		rendered = append(rendered, renderDiffLine(line))
	}

	t.printf("%s\n%s\n", header, strings.Join(rendered, "\n"))
}

func (t *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.output, format, args...)
}

func renderDiffLine(line string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	switch {
	case strings.HasPrefix(line, "+++"):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	case strings.HasPrefix(line, "---"):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	case strings.HasPrefix(line, "@@"):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	case strings.HasPrefix(line, "+"):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	case strings.HasPrefix(line, "-"):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}

	return style.Render(line)
}
