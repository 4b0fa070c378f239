package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"bytemut.dev/pkg/bytemut/internal/adapter"
	"bytemut.dev/pkg/bytemut/internal/controller"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

// View displays the manifest of a reports directory.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		slog.Error("Failed to load reports", "dir", args.Reports, "error", err)
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// Merge combines the manifests of shard_* directories into one manifest in
// the reports directory. Reports are interleaved back into enumeration order.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	dirs, err := w.SubDirs(ctx, args.Reports, shardDirPrefix)
	if err != nil {
		return fmt.Errorf("list shards: %w", err)
	}

	shards := orderShardDirs(dirs)

	if len(shards) == 0 {
		return fmt.Errorf("%w: no %s* directories in %s", adapter.ErrNoReports, shardDirPrefix, args.Reports)
	}

	perShard := make([][]m.Report, len(shards))

	for i, dir := range shards {
		reports, err := w.LoadReports(ctx, dir)
		if errors.Is(err, adapter.ErrNoReports) {
			slog.Warn("Shard has no manifest", "dir", dir)
			continue
		}

		if err != nil {
			return fmt.Errorf("load shard %s: %w", dir, err)
		}

		perShard[i] = reports
	}

	merged := interleave(perShard)

	if err := w.SaveReports(ctx, args.Reports, merged); err != nil {
		return fmt.Errorf("save merged reports: %w", err)
	}

	slog.Info("Merged shard reports", "shards", len(shards), "mutants", len(merged))

	return nil
}

// orderShardDirs sorts shard directories by their numeric suffix.
func orderShardDirs(dirs []m.Path) []m.Path {
	type shard struct {
		index int
		dir   m.Path
	}

	shards := make([]shard, 0, len(dirs))

	for _, dir := range dirs {
		suffix := strings.TrimPrefix(filepath.Base(string(dir)), shardDirPrefix)

		index, err := strconv.Atoi(suffix)
		if err != nil || index < 0 {
			slog.Warn("Ignoring directory with shard prefix", "dir", dir)
			continue
		}

		shards = append(shards, shard{index: index, dir: dir})
	}

	sort.Slice(shards, func(i, j int) bool { return shards[i].index < shards[j].index })

	ordered := make([]m.Path, 0, len(shards))
	for _, s := range shards {
		ordered = append(ordered, s.dir)
	}

	return ordered
}

// interleave undoes round-robin sharding: item j of shard k was item j*n+k.
func interleave(perShard [][]m.Report) []m.Report {
	var merged []m.Report

	for j := 0; ; j++ {
		progressed := false

		for _, reports := range perShard {
			if j < len(reports) {
				merged = append(merged, reports[j])
				progressed = true
			}
		}

		if !progressed {
			return merged
		}
	}
}
