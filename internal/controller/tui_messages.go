package controller

import (
	"time"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

// Message types.
type tickMsg time.Time

type estimationMsg struct {
	total     int
	fileStats []fileStat
	kindStats []kindStat
	err       error
}

type concurrencyMsg struct {
	threads    int
	shardIndex int
	shards     int
}

type upcomingMsg struct {
	count int
}

type mutantMsg struct {
	report m.Report
}

type summaryMsg struct {
	summary Summary
}

type reportsMsg struct {
	reports []m.Report
}

// List item types.
type fileItem struct {
	path  string
	count int
}

func (f fileItem) FilterValue() string {
	return f.path
}

type mutantItem struct {
	report m.Report
}

func (r mutantItem) FilterValue() string {
	details := r.report.Candidate.Details

	return details.ID.ShortID() + " " + r.report.Status.String() + " " +
		kindLabel(details.ID.Kind) + " " + details.ID.Location.String()
}
