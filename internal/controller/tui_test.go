package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

type quitModel struct{}

func (q quitModel) Init() tea.Cmd                         { return tea.Quit }
func (q quitModel) Update(_ tea.Msg) (tea.Model, tea.Cmd) { return q, tea.Quit }
func (q quitModel) View() string                          { return "" }

func newTestTUI() (*TUI, *bytes.Buffer) {
	var buf bytes.Buffer

	tui := NewTUI(&buf)
	tui.input = &bytes.Buffer{}

	return tui, &buf
}

func waitFor(t *testing.T, name string, fn func()) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s timed out", name)
	}
}

func TestTUI_StartWithModel_WaitAndClose(t *testing.T) {
	tui, _ := newTestTUI()
	ctx := context.Background()

	require.NoError(t, tui.startWithModel(quitModel{}))
	assert.True(t, tui.isStarted())

	tui.send(upcomingMsg{count: 2})

	waitFor(t, "Wait", func() { tui.Wait(ctx) })
	waitFor(t, "Close", func() { tui.Close(ctx) })
	assert.False(t, tui.isStarted())

	// second close is a no-op
	waitFor(t, "Close again", func() { tui.Close(ctx) })
}

func TestTUI_StartWithModel_Twice(t *testing.T) {
	tui, _ := newTestTUI()
	ctx := context.Background()

	require.NoError(t, tui.startWithModel(quitModel{}))
	program := tui.program

	require.NoError(t, tui.startWithModel(quitModel{}))
	assert.Same(t, program, tui.program)

	waitFor(t, "Close", func() { tui.Close(ctx) })
}

func TestTUI_Start_CancelledContext(t *testing.T) {
	tui, _ := newTestTUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, tui.Start(ctx, WithRunMode()), context.Canceled)
	assert.False(t, tui.isStarted())
}

func TestTUI_WaitAndSend_BeforeStart(t *testing.T) {
	tui, buf := newTestTUI()

	tui.send(upcomingMsg{count: 1})
	waitFor(t, "Wait", func() { tui.Wait(context.Background()) })

	assert.Empty(t, buf.String())
}

func TestTUI_Wait_ContextDone(t *testing.T) {
	tui, _ := newTestTUI()
	tui.done = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	waitFor(t, "Wait", func() { tui.Wait(ctx) })
}

func TestTUI_DisplayEstimation_NotStarted(t *testing.T) {
	tui, buf := newTestTUI()
	ctx := context.Background()

	candidates := []m.Candidate{
		candidate("units/Account.unit.yaml", "check", "bytemut.mutagens.NegateConditionals", 0, 10),
		candidate("units/Account.unit.yaml", "deposit", "bytemut.mutagens.Math", 0, 20),
	}

	require.NoError(t, tui.DisplayEstimation(ctx, candidates, nil))
	assert.Contains(t, buf.String(), "units/Account.unit.yaml")

	buf.Reset()

	estimateErr := errors.New("discover units: boom")
	assert.Equal(t, estimateErr, tui.DisplayEstimation(ctx, nil, estimateErr))
	assert.Equal(t, "estimation error: discover units: boom\n", buf.String())
}

func TestTUI_DisplayMutantAndReports_NotStarted(t *testing.T) {
	tui, buf := newTestTUI()
	ctx := context.Background()
	reports := sampleReports()

	tui.DisplayMutant(ctx, reports[0])
	assert.Contains(t, buf.String(), "written ")
	assert.Contains(t, buf.String(), "-> out/mutants/a.mutant.yaml")

	buf.Reset()

	require.NoError(t, tui.DisplayReports(ctx, reports))
	assert.Contains(t, buf.String(), reports[1].Candidate.Details.ID.ShortID())
	assert.Contains(t, buf.String(), "boom")
}

func TestTUI_DisplayDiff(t *testing.T) {
	tui, buf := newTestTUI()
	details := sampleReports()[0].Candidate.Details

	diff := "--- a.unit.yaml\n+++ a.unit.yaml (x)\n@@ -1,1 +1,1 @@\n-  - IFEQ L1\n+  - IFNE L1\n"
	tui.DisplayDiff(context.Background(), details, diff)

	out := buf.String()
	assert.Contains(t, out, details.ID.ShortID())
	assert.Contains(t, out, "- IFEQ L1")
	assert.Contains(t, out, "+  - IFNE L1")
	assert.Contains(t, out, "@@ -1,1 +1,1 @@")
}

func TestTUI_RunModeLifecycle(t *testing.T) {
	tui, _ := newTestTUI()
	ctx := context.Background()
	reports := sampleReports()

	require.NoError(t, tui.Start(ctx, WithRunMode()))

	tui.DisplayConcurrencyInfo(ctx, 2, 0, 1)
	tui.DisplayUpcomingMutantsInfo(ctx, len(reports))

	for _, report := range reports {
		tui.DisplayMutant(ctx, report)
	}

	tui.DisplaySummary(ctx, reports)

	waitFor(t, "Close", func() { tui.Close(ctx) })
	assert.False(t, tui.isStarted())
}

func TestRenderDiffLine(t *testing.T) {
	for _, line := range []string{"+++ b", "--- a", "@@ -1 +1 @@", "+x", "-y", " z"} {
		assert.Contains(t, renderDiffLine(line), line)
	}
}
