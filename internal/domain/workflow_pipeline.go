package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"bytemut.dev/pkg/bytemut/internal/controller"
	m "bytemut.dev/pkg/bytemut/internal/model"
	"bytemut.dev/pkg/bytemut/pkg"
)

// shardDirPrefix names the per shard reports directories merged by Merge.
const shardDirPrefix = "shard_"

// Estimate enumerates candidates and displays how many each unit file holds.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	if err := w.Start(ctx, controller.WithEstimateMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	candidates, err := w.collectCandidates(ctx, args)
	if err != nil {
		_ = w.DisplayEstimation(ctx, nil, err)
		w.Close(ctx)
		slog.Error("Failed to enumerate candidates", "error", err)

		return fmt.Errorf("enumerate candidates: %w", err)
	}

	if err := w.DisplayEstimation(ctx, candidates, nil); err != nil {
		w.Close(ctx)
		slog.Error("Failed to display estimation", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

func (w *workflow) collectCandidates(ctx context.Context, args EstimateArgs) ([]m.Candidate, error) {
	spill, err := w.spillCandidates(ctx, args)
	if err != nil {
		return nil, err
	}

	defer removeSpill(spill)

	candidates := make([]m.Candidate, 0, spill.Len())

	err = spill.Range(func(_ uint64, candidate m.Candidate) error {
		candidates = append(candidates, candidate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return candidates, nil
}

func (w *workflow) spillCandidates(ctx context.Context, args EstimateArgs) (pkg.FileSpill[m.Candidate], error) {
	mutagen, err := newMutagen(args.MutagenArgs)
	if err != nil {
		return nil, err
	}

	streamer := NewMutationStreamer(w.SourceFSAdapter, w.units, mutagen)

	return streamer.Get(ctx, args.Paths, args.Exclude, args.Threads, args.MaxCandidates)
}

// Run enumerates candidates, keeps the shard's share and writes one mutant
// per candidate plus a manifest into the reports directory.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	mutagen, err := newMutagen(args.MutagenArgs)
	if err != nil {
		return err
	}

	streamer := NewMutationStreamer(w.SourceFSAdapter, w.units, mutagen)

	spill, err := streamer.Get(ctx, args.Paths, args.Exclude, args.Threads, args.MaxCandidates)
	if err != nil {
		slog.Error("Failed to enumerate candidates", "error", err)
		return fmt.Errorf("enumerate candidates: %w", err)
	}

	defer removeSpill(spill)

	threads := normalizeThreads(args.Threads)
	outDir := w.shardReportsDir(ctx, args)

	w.DisplayConcurrencyInfo(ctx, threads, args.ShardIndex, args.TotalShardCount)
	w.DisplayUpcomingMutantsInfo(ctx, ShardSize(int(spill.Len()), args.ShardIndex, args.TotalShardCount))

	orchestrator := NewOrchestrator(w.SourceFSAdapter, w.units, mutagen)

	reports, err := w.materialize(ctx, orchestrator, streamer.ShardCandidates(ctx, spill, args.ShardIndex, args.TotalShardCount), outDir, threads)
	if err != nil {
		return err
	}

	if err := w.SaveReports(ctx, outDir, reports); err != nil {
		slog.Error("Failed to save reports", "dir", outDir, "error", err)
		return fmt.Errorf("save reports: %w", err)
	}

	if err := ctx.Err(); err != nil {
		slog.Warn("Run cancelled", "mutants", len(reports), "dir", outDir)
		return err
	}

	w.DisplaySummary(ctx, reports)
	w.Wait(ctx)

	if failed := controller.Summarize(reports).Failed; failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrMutantsFailed, failed, len(reports))
	}

	return nil
}

func (w *workflow) materialize(ctx context.Context, orchestrator Orchestrator, candidates <-chan m.Candidate, outDir m.Path, threads int) ([]m.Report, error) {
	var (
		bySeq = map[int]m.Report{}
		mu    sync.Mutex
		seq   int
	)

	var group errgroup.Group
	group.SetLimit(threads)

	for candidate := range candidates {
		index := seq
		seq++

		group.Go(func() error {
			report := orchestrator.Materialize(ctx, candidate, outDir)
			w.DisplayMutant(ctx, report)

			mu.Lock()
			bySeq[index] = report
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Reports keep the enumeration order regardless of completion order.
	reports := make([]m.Report, 0, len(bySeq))
	for i := range seq {
		reports = append(reports, bySeq[i])
	}

	return reports, nil
}

func (w *workflow) shardReportsDir(ctx context.Context, args RunArgs) m.Path {
	if args.TotalShardCount <= 1 {
		return args.Reports
	}

	return w.JoinPath(ctx, string(args.Reports), fmt.Sprintf("%s%d", shardDirPrefix, args.ShardIndex))
}

func removeSpill(spill pkg.FileSpill[m.Candidate]) {
	if err := spill.Remove(); err != nil {
		slog.Warn("Failed to remove candidate spill", "path", spill.Path(), "error", err)
	}
}
