// Package controller provides output adapters for displaying mutation candidates and mutants.
package controller

import (
	"context"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeEstimate StartMode = iota
	ModeRun
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithEstimateMode sets the UI to estimation mode.
func WithEstimateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeEstimate
	}
}

// WithRunMode sets the UI to mutant materialization mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithViewMode sets the UI to report browsing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeEstimate}
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines how workflows report progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayEstimation(ctx context.Context, candidates []m.Candidate, err error) error
	DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int)
	DisplayUpcomingMutantsInfo(ctx context.Context, count int)
	DisplayMutant(ctx context.Context, report m.Report)
	DisplaySummary(ctx context.Context, reports []m.Report)
	DisplayReports(ctx context.Context, reports []m.Report) error
	DisplayDiff(ctx context.Context, details m.MutationDetails, diff string)
}

// Summary counts reports by status.
type Summary struct {
	Total   int
	Written int
	Skipped int
	Failed  int
}

// Summarize counts reports by status.
func Summarize(reports []m.Report) Summary {
	s := Summary{Total: len(reports)}

	for _, report := range reports {
		switch report.Status {
		case m.Written:
			s.Written++
		case m.Skipped:
			s.Skipped++
		case m.Failed:
			s.Failed++
		}
	}

	return s
}

// fileStat is the per unit file candidate count shown by estimations.
type fileStat struct {
	path  string
	count int
}

// kindStat is the per mutation kind candidate count shown by estimations.
type kindStat struct {
	kind  string
	count int
}
