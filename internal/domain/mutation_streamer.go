package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"bytemut.dev/pkg/bytemut/internal/adapter"
	m "bytemut.dev/pkg/bytemut/internal/model"
	"bytemut.dev/pkg/bytemut/pkg"
)

// MutationStreamer enumerates candidates across many unit files.
type MutationStreamer interface {
	// Get enumerates every unit matched by paths and spills the candidates in
	// unit path order. The caller removes the returned spill.
	Get(ctx context.Context, paths []m.Path, exclude []string, threads int, maxCandidates int) (pkg.FileSpill[m.Candidate], error)
	// ShardCandidates streams the candidates of one shard, assigned round-robin.
	ShardCandidates(ctx context.Context, candidates pkg.FileSpill[m.Candidate], shardIndex, totalShardCount int) <-chan m.Candidate
}

type mutationStreamer struct {
	adapter.SourceFSAdapter
	units adapter.UnitFileAdapter
	Mutagen
	spillDir string
}

// NewMutationStreamer creates a MutationStreamer reading units through fsAdapter.
func NewMutationStreamer(fsAdapter adapter.SourceFSAdapter, units adapter.UnitFileAdapter, mutagen Mutagen) MutationStreamer {
	return &mutationStreamer{
		SourceFSAdapter: fsAdapter,
		units:           units,
		Mutagen:         mutagen,
		spillDir:        pkg.DefaultSpillDir,
	}
}

func (ms *mutationStreamer) Get(ctx context.Context, paths []m.Path, exclude []string, threads int, maxCandidates int) (pkg.FileSpill[m.Candidate], error) {
	files, err := ms.SourceFSAdapter.Get(ctx, paths, exclude...)
	if err != nil {
		slog.Error("Failed to discover units", "error", err)
		return nil, fmt.Errorf("discover units: %w", err)
	}

	slog.Debug("Discovered units", "count", len(files), "threads", threads)

	results := make([][]m.Candidate, len(files))

	var found atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(normalizeThreads(threads))

	for i, file := range files {
		// Units are dispatched in path order, so once the cap is reached every
		// candidate that survives truncation comes from a unit already started.
		if maxCandidates > 0 && found.Load() >= int64(maxCandidates) {
			slog.Debug("Candidate cap reached", "cap", maxCandidates, "remainingUnits", len(files)-i)
			break
		}

		group.Go(func() error {
			candidates, err := ms.enumerate(groupCtx, file)
			if err != nil {
				return err
			}

			results[i] = candidates
			found.Add(int64(len(candidates)))

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return ms.spill(results, maxCandidates)
}

func (ms *mutationStreamer) enumerate(ctx context.Context, file m.Path) ([]m.Candidate, error) {
	content, err := ms.ReadFile(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("read unit %s: %w", file, err)
	}

	unit, err := ms.units.Decode(file, content)
	if err != nil {
		return nil, err
	}

	details, err := ms.FindMutations(ctx, unit)
	if err != nil {
		slog.Error("Failed to find mutations", "unit", file, "error", err)
		return nil, fmt.Errorf("find mutations in %s: %w", file, err)
	}

	candidates := make([]m.Candidate, 0, len(details))
	for _, d := range details {
		candidates = append(candidates, m.Candidate{Origin: file, Details: d})
	}

	slog.Debug("Enumerated unit", "unit", file, "count", len(candidates))

	return candidates, nil
}

func (ms *mutationStreamer) spill(results [][]m.Candidate, maxCandidates int) (pkg.FileSpill[m.Candidate], error) {
	spill, err := pkg.NewFileSpillIn[m.Candidate](ms.spillDir)
	if err != nil {
		return nil, err
	}

	for _, candidates := range results {
		if maxCandidates > 0 {
			room := maxCandidates - int(spill.Len())
			if room <= 0 {
				break
			}

			if len(candidates) > room {
				candidates = candidates[:room]
			}
		}

		if err := spill.AppendBatch(candidates); err != nil {
			_ = spill.Remove()
			return nil, fmt.Errorf("spill candidates: %w", err)
		}
	}

	if err := spill.Close(); err != nil {
		_ = spill.Remove()
		return nil, err
	}

	slog.Debug("Spilled candidates", "path", spill.Path(), "count", spill.Len())

	return spill, nil
}

func (ms *mutationStreamer) ShardCandidates(ctx context.Context, candidates pkg.FileSpill[m.Candidate], shardIndex, totalShardCount int) <-chan m.Candidate {
	ch := make(chan m.Candidate)

	go func() {
		defer close(ch)

		index := 0

		err := candidates.Range(func(_ uint64, candidate m.Candidate) error {
			defer func() { index++ }()

			if totalShardCount > 1 && index%totalShardCount != shardIndex {
				return nil
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case ch <- candidate:
				return nil
			}
		})
		if err != nil {
			slog.Debug("Candidate sharding stopped", "error", err)
		}
	}()

	return ch
}

// ShardSize returns how many of total candidates round-robin sharding assigns to shardIndex.
func ShardSize(total, shardIndex, totalShardCount int) int {
	if totalShardCount <= 1 {
		return total
	}

	size := total / totalShardCount
	if shardIndex < total%totalShardCount {
		size++
	}

	return size
}

func normalizeThreads(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}
