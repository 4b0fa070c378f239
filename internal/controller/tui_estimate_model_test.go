package controller

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarquee_Edges(t *testing.T) {
	assert.Empty(t, marquee("hello", 0, 0))
	assert.Equal(t, "hi", marquee("hi", 5, 0))
	assert.Equal(t, "ab…", marquee("abcdef", 3, 0))

	scrolled := marquee("abcdef", 3, 10)
	assert.NotEqual(t, "ab…", scrolled)
	assert.Len(t, []rune(scrolled), 3)

	// the window wraps through the gap back to the start
	assert.Equal(t, "abc", marquee("abcdef", 3, 5+len("abcdef   ")))
}

func TestTruncateToWidth(t *testing.T) {
	assert.Empty(t, truncateToWidth("hello", 0))
	assert.Equal(t, "hello", truncateToWidth("hello", 10))
	assert.Equal(t, "…", truncateToWidth("hello", 1))
	assert.Equal(t, "h…", truncateToWidth("hello", 2))
}

func sampleEstimation() estimationMsg {
	return estimationMsg{
		total: 3,
		fileStats: []fileStat{
			{path: "units/Account.unit.yaml", count: 2},
			{path: "units/Ledger.unit.yaml", count: 1},
		},
		kindStats: []kindStat{
			{kind: "NegateConditionals", count: 2},
			{kind: "Math", count: 1},
		},
	}
}

func TestEstimateModel_WithEstimationAndView(t *testing.T) {
	model := newEstimateModel()
	assert.Equal(t, "Loading candidate list…\n", model.View())

	model = model.withEstimation(sampleEstimation())
	assert.True(t, model.rendered)
	assert.Equal(t, 3, model.total)
	assert.Equal(t, 2, model.units)
	assert.Equal(t, 0, model.files.selected)

	view := model.View()
	assert.Contains(t, view, "Bytemut Candidate Estimate")
	assert.Contains(t, view, "units/Account.unit.yaml")
	assert.Contains(t, view, "NegateConditionals")

	require.NotNil(t, model.Init())

	table := model.renderFiles()
	assert.Contains(t, table, "Count")
	assert.Contains(t, table, "Unit")

	// tiny terminals still render
	model.height = 0
	model.width = 20
	assert.NotEmpty(t, model.renderFiles())
}

func TestEstimateModel_ErrorView(t *testing.T) {
	model := newEstimateModel().withEstimation(estimationMsg{err: errors.New("no units")})

	view := model.View()
	assert.Contains(t, view, "Estimation failed: no units")
	assert.NotContains(t, view, "Total Candidates")
}

func TestEstimateModel_UpdateBranches(t *testing.T) {
	model := newEstimateModel()

	updated, cmd := model.Update(tickMsg{})
	assert.Nil(t, cmd, "ticks stop before the first estimation")

	model = updated.(estimateModel)

	updated, _ = model.Update(sampleEstimation())
	model = updated.(estimateModel)
	require.True(t, model.rendered)

	updated, cmd = model.Update(tickMsg{})
	model = updated.(estimateModel)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, model.files.offset)

	updated, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(estimateModel)
	assert.Equal(t, 100, model.width)
	assert.Equal(t, 30, model.height)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	model = updated.(estimateModel)
	assert.Equal(t, 1, model.files.model.Index())
	assert.Equal(t, 1, model.files.selected)
	assert.Equal(t, 0, model.files.offset)

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFileDelegate_Render(t *testing.T) {
	model := newEstimateModel().withEstimation(sampleEstimation())

	var sb strings.Builder
	delegate := fileDelegate{}
	delegate.Render(&sb, model.files.model, 0, fileItem{path: "units/Account.unit.yaml", count: 2})
	assert.Contains(t, sb.String(), "units/Account.unit.yaml")
	assert.Contains(t, sb.String(), "2")

	sb.Reset()
	delegate.Render(&sb, model.files.model, 0, mutantItem{})
	assert.Empty(t, sb.String())

	assert.Equal(t, 1, delegate.Height())
	assert.Equal(t, 0, delegate.Spacing())
	assert.Nil(t, delegate.Update(nil, &list.Model{}))
	assert.Equal(t, fileDelegate{offset: 3}, delegate.withOffset(3))
}

func TestScrollList_TickPausesWhileFiltering(t *testing.T) {
	files := newScrollList(fileDelegate{}, "Filter").setItems([]list.Item{
		fileItem{path: "a.unit.yaml", count: 1},
		fileItem{path: "b.unit.yaml", count: 2},
	})
	assert.Equal(t, 0, files.selected)

	files = files.tick().tick()
	assert.Equal(t, 2, files.offset)
	assert.Equal(t, fileDelegate{offset: 2}, files.delegate)

	files, _ = files.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, files.filtering())
	assert.Equal(t, 2, files.tick().offset)
}
