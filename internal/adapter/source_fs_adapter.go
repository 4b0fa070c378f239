// Package adapter contains the infrastructure adapters used by the bytemut workflows.
package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

// UnitFileSuffix marks files holding a processed unit.
const UnitFileSuffix = ".unit.yaml"

const recursiveSuffix = "/..."

// SourceFSAdapter abstracts the filesystem operations the workflows rely on
// so the domain layer can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Get resolves path patterns to a sorted list of unit files. A pattern
	// ending in /... is walked recursively; plain directories are not.
	// Files matching any exclude regex are dropped.
	Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Path, error)

	// Walk traverses root. When recursive is false only root's entries are visited.
	Walk(ctx context.Context, root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile writes content, creating parent directories as needed.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// SubDirs lists the directories directly under root whose name starts with prefix.
	SubDirs(ctx context.Context, root m.Path, prefix string) ([]m.Path, error)

	// RemoveAll removes a directory and all its contents.
	RemoveAll(ctx context.Context, path m.Path) error

	// JoinPath joins path elements into a single path.
	JoinPath(ctx context.Context, elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk without
// leaking the standard-library type into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Path, error) {
	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	seen := make(map[m.Path]struct{})

	var units []m.Path

	add := func(path string) {
		if !strings.HasSuffix(path, UnitFileSuffix) || isExcluded(path, excludes) {
			return
		}

		clean := m.Path(filepath.Clean(path))
		if _, ok := seen[clean]; ok {
			return
		}

		seen[clean] = struct{}{}
		units = append(units, clean)
	}

	for _, pattern := range paths {
		root, recursive := splitPattern(string(pattern))

		info, err := a.FileInfo(ctx, m.Path(root))
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", pattern, err)
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		err = a.Walk(ctx, m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.IsDir() {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Slice(units, func(i, j int) bool { return units[i] < units[j] })

	return units, nil
}

func splitPattern(pattern string) (string, bool) {
	pattern = filepath.ToSlash(pattern)

	switch {
	case pattern == "...":
		return ".", true
	case strings.HasSuffix(pattern, recursiveSuffix):
		root := strings.TrimSuffix(pattern, recursiveSuffix)
		if root == "" {
			root = "/"
		}

		return filepath.FromSlash(root), true
	default:
		return filepath.FromSlash(pattern), false
	}
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func isExcluded(path string, excludes []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(path)

	for _, re := range excludes {
		if re.MatchString(slashed) {
			return true
		}
	}

	return false
}

// Walk implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) Walk(ctx context.Context, root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr && (!recursive || strings.HasPrefix(info.Name(), ".")) {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) ReadFile(_ context.Context, path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) WriteFile(_ context.Context, path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// FileInfo implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) FileInfo(_ context.Context, path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// SubDirs implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) SubDirs(_ context.Context, root m.Path, prefix string) ([]m.Path, error) {
	entries, err := os.ReadDir(string(root))
	if err != nil {
		return nil, err
	}

	var dirs []m.Path

	for _, entry := range entries {
		if entry.Type()&fs.ModeDir == 0 || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		dirs = append(dirs, m.Path(filepath.Join(string(root), entry.Name())))
	}

	return dirs, nil
}

// RemoveAll implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) RemoveAll(_ context.Context, path m.Path) error {
	return os.RemoveAll(string(path))
}

// JoinPath implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) JoinPath(_ context.Context, elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
