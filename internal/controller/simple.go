package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait returns immediately; SimpleUI never blocks.
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayEstimation prints candidate counts per unit file and per kind.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, candidates []m.Candidate, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderEstimationTable(buildFileStats(candidates), len(candidates)))
	s.printf("\n%s", renderKindTable(buildKindStats(candidates)))

	return nil
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Writing mutants with %d worker(s) (shard %d/%d)\n", threads, shardIndex, max(shardCount, 1))
}

// DisplayUpcomingMutantsInfo shows how many mutants this run will write.
func (s *SimpleUI) DisplayUpcomingMutantsInfo(ctx context.Context, count int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Upcoming mutants: %d\n", count)
}

// DisplayMutant prints one line per materialized candidate.
func (s *SimpleUI) DisplayMutant(_ context.Context, report m.Report) {
	s.printf("%s\n", formatReportLine(report))
}

// DisplaySummary prints the status counts of a run.
func (s *SimpleUI) DisplaySummary(_ context.Context, reports []m.Report) {
	summary := Summarize(reports)
	s.printf("Mutants: %d written, %d skipped, %d failed (%d total)\n",
		summary.Written, summary.Skipped, summary.Failed, summary.Total)
}

// DisplayReports prints a manifest as a table.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderReportsTable(reports))

	return nil
}

// DisplayDiff prints the candidate header followed by the unified diff.
func (s *SimpleUI) DisplayDiff(_ context.Context, details m.MutationDetails, diff string) {
	s.printf("%s\n%s", formatDetails(details), diff)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func buildFileStats(candidates []m.Candidate) []fileStat {
	counts := make(map[string]int)

	for _, candidate := range candidates {
		counts[string(candidate.Origin)]++
	}

	stats := make([]fileStat, 0, len(counts))
	for path, count := range counts {
		stats = append(stats, fileStat{path: path, count: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].path < stats[j].path
	})

	return stats
}

func buildKindStats(candidates []m.Candidate) []kindStat {
	counts := make(map[string]int)

	for _, candidate := range candidates {
		counts[kindLabel(candidate.Details.ID.Kind)]++
	}

	stats := make([]kindStat, 0, len(counts))
	for kind, count := range counts {
		stats = append(stats, kindStat{kind: kind, count: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}

		return stats[i].kind < stats[j].kind
	})

	return stats
}

// kindLabel drops the package qualifier of a kind id.
func kindLabel(kind string) string {
	if i := strings.LastIndex(kind, "."); i >= 0 {
		return kind[i+1:]
	}

	return kind
}

func formatDetails(details m.MutationDetails) string {
	line := fmt.Sprintf("%s %s:%d %s (%s)",
		details.ID.ShortID(),
		details.ID.Location,
		details.Line,
		details.Description,
		kindLabel(details.ID.Kind),
	)

	if details.InFinally {
		line += " [finally]"
	}

	return line
}

func formatReportLine(report m.Report) string {
	line := fmt.Sprintf("%-7s %s", report.Status, formatDetails(report.Candidate.Details))

	switch {
	case report.Err != "":
		line += ": " + report.Err
	case report.Output != "":
		line += " -> " + string(report.Output)
	}

	return line
}

func renderEstimationTable(stats []fileStat, totalCandidates int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Unit", "Candidates"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, stat := range stats {
		table.Append([]string{stat.path, fmt.Sprintf("%d", stat.count)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Units %d", len(stats)),
		fmt.Sprintf("%d", totalCandidates),
	})

	table.Render()

	return tableBuffer.String()
}

func renderKindTable(stats []kindStat) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Kind", "Candidates"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, stat := range stats {
		table.Append([]string{stat.kind, fmt.Sprintf("%d", stat.count)})
	}

	table.Render()

	return tableBuffer.String()
}

func renderReportsTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"ID", "Status", "Kind", "Location", "Line", "Output"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, report := range reports {
		details := report.Candidate.Details

		output := string(report.Output)
		if report.Err != "" {
			output = report.Err
		}

		table.Append([]string{
			details.ID.ShortID(),
			report.Status.String(),
			kindLabel(details.ID.Kind),
			details.ID.Location.String(),
			fmt.Sprintf("%d", details.Line),
			output,
		})
	}

	summary := Summarize(reports)
	table.SetFooter([]string{
		fmt.Sprintf("Total %d", summary.Total),
		fmt.Sprintf("%d written", summary.Written),
		fmt.Sprintf("%d failed", summary.Failed),
		fmt.Sprintf("%d skipped", summary.Skipped),
		"", "",
	})

	table.Render()

	return tableBuffer.String()
}
