// Package pkg provides utilities shared by the bytemut commands.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSpillDir is the directory spill files are created in when none is given.
var DefaultSpillDir = filepath.Join(os.TempDir(), "bytemut-spill")

// ErrSpillClosed is returned when appending to a closed spill.
var ErrSpillClosed = errors.New("filespill is closed")

// FileSpill is an append-only list of T kept on disk.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
	// Remove closes the spill and deletes its file.
	Remove() error
}

type fileSpillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// Append implements FileSpill.
func (f *fileSpillImpl[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return ErrSpillClosed
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	f.length++

	return nil
}

// Path implements FileSpill.
func (f *fileSpillImpl[T]) Path() string {
	return f.path
}

// AppendBatch implements FileSpill.
func (f *fileSpillImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := f.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements FileSpill. Items stay readable after Close.
func (f *fileSpillImpl[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closeLocked()
}

func (f *fileSpillImpl[T]) closeLocked() error {
	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil

	if err != nil {
		slog.Error("failed to close file", "path", f.path, "error", err)
		return err
	}

	slog.Debug("closed filespill", "path", f.path, "length", f.length)

	return nil
}

// Remove implements FileSpill.
func (f *fileSpillImpl[T]) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.closeLocked(); err != nil {
		return err
	}

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to remove filespill", "path", f.path, "error", err)
		return fmt.Errorf("failed to remove filespill: %w", err)
	}

	f.length = 0

	return nil
}

// Get implements FileSpill.
func (f *fileSpillImpl[T]) Get(index uint64) (T, error) {
	var found T

	err := f.Range(func(i uint64, item T) error {
		if i == index {
			found = item
			return errStopRange
		}

		return nil
	})

	switch {
	case errors.Is(err, errStopRange):
		return found, nil
	case err != nil:
		var zero T
		return zero, err
	default:
		var zero T

		slog.Warn("get index out of bounds", "path", f.path, "index", index)

		return zero, fmt.Errorf("index %d out of bounds (length %d)", index, f.Len())
	}
}

var errStopRange = errors.New("stop range")

// Len implements FileSpill.
func (f *fileSpillImpl[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Range implements FileSpill.
func (f *fileSpillImpl[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.length == 0 {
		return nil
	}

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open file for range", "path", f.path, "error", err)
		return fmt.Errorf("failed to open file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close file", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := range f.length {
		// gob leaves zero-valued fields untouched, so decode into a fresh value.
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item during range", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	slog.Debug("range completed", "path", f.path, "count", f.length)

	return nil
}

// NewFileSpill creates a FileSpill in DefaultSpillDir.
func NewFileSpill[T any]() (FileSpill[T], error) {
	return NewFileSpillIn[T](DefaultSpillDir)
}

// NewFileSpillIn creates a FileSpill backed by a new file in dir.
func NewFileSpillIn[T any](dir string) (FileSpill[T], error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "spill-*.gob")
	if err != nil {
		slog.Error("failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created filespill", "path", file.Name())

	return &fileSpillImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}
