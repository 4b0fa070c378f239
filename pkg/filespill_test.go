package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spillRecord struct {
	Name    string
	Line    int
	Finally bool
	Tags    []string
}

func newTestSpill[T any](t *testing.T) FileSpill[T] {
	t.Helper()

	spill, err := NewFileSpillIn[T](t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() { _ = spill.Remove() })

	return spill
}

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpillIn creates file in dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")

		spill, err := NewFileSpillIn[int](dir)
		require.NoError(t, err)
		defer spill.Remove()

		assert.Equal(t, dir, filepath.Dir(spill.Path()))
		assert.FileExists(t, spill.Path())
	})

	t.Run("NewFileSpill uses default dir", func(t *testing.T) {
		spill, err := NewFileSpill[int]()
		require.NoError(t, err)
		defer spill.Remove()

		assert.Equal(t, DefaultSpillDir, filepath.Dir(spill.Path()))
	})

	t.Run("Append and Get", func(t *testing.T) {
		spill := newTestSpill[string](t)

		require.NoError(t, spill.Append("first"))
		require.NoError(t, spill.Append("second"))

		val, err := spill.Get(0)
		require.NoError(t, err)
		assert.Equal(t, "first", val)

		val, err = spill.Get(1)
		require.NoError(t, err)
		assert.Equal(t, "second", val)

		val, err = spill.Get(3)
		require.Error(t, err)
		assert.Empty(t, val)
	})

	t.Run("Len counts appended items", func(t *testing.T) {
		spill := newTestSpill[int](t)

		assert.Equal(t, uint64(0), spill.Len())
		require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))
		assert.Equal(t, uint64(3), spill.Len())
	})

	t.Run("Range visits items in order", func(t *testing.T) {
		spill := newTestSpill[int](t)
		require.NoError(t, spill.AppendBatch([]int{10, 20, 30}))

		var got []int

		err := spill.Range(func(index uint64, item int) error {
			assert.Equal(t, uint64(len(got)), index)
			got = append(got, item)

			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{10, 20, 30}, got)
	})

	t.Run("Range stops on callback error", func(t *testing.T) {
		spill := newTestSpill[int](t)
		require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))

		stop := errors.New("stop")
		visited := 0

		err := spill.Range(func(_ uint64, _ int) error {
			visited++
			return stop
		})
		require.ErrorIs(t, err, stop)
		assert.Equal(t, 1, visited)
	})

	t.Run("Range on empty spill", func(t *testing.T) {
		spill := newTestSpill[int](t)

		err := spill.Range(func(_ uint64, _ int) error {
			t.Fatal("callback must not run")
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("zero fields do not leak between structs", func(t *testing.T) {
		spill := newTestSpill[spillRecord](t)

		records := []spillRecord{
			{Name: "a", Line: 10, Finally: true, Tags: []string{"x"}},
			{Name: "b"},
		}
		require.NoError(t, spill.AppendBatch(records))

		var got []spillRecord

		require.NoError(t, spill.Range(func(_ uint64, item spillRecord) error {
			got = append(got, item)
			return nil
		}))
		assert.Equal(t, records, got)

		second, err := spill.Get(1)
		require.NoError(t, err)
		assert.Equal(t, records[1], second)
	})

	t.Run("items stay readable after Close", func(t *testing.T) {
		spill := newTestSpill[int](t)
		require.NoError(t, spill.Append(7))
		require.NoError(t, spill.Close())
		require.NoError(t, spill.Close())

		val, err := spill.Get(0)
		require.NoError(t, err)
		assert.Equal(t, 7, val)

		assert.ErrorIs(t, spill.Append(8), ErrSpillClosed)
	})

	t.Run("Remove deletes the file", func(t *testing.T) {
		spill, err := NewFileSpillIn[int](t.TempDir())
		require.NoError(t, err)
		require.NoError(t, spill.Append(1))

		require.NoError(t, spill.Remove())
		require.NoError(t, spill.Remove())

		_, err = os.Stat(spill.Path())
		assert.True(t, os.IsNotExist(err))
		assert.Equal(t, uint64(0), spill.Len())
	})

	t.Run("concurrent appends", func(t *testing.T) {
		spill := newTestSpill[int](t)

		var wg sync.WaitGroup

		for i := range 50 {
			wg.Add(1)

			go func(n int) {
				defer wg.Done()
				assert.NoError(t, spill.Append(n))
			}(i)
		}

		wg.Wait()

		assert.Equal(t, uint64(50), spill.Len())

		sum := 0

		require.NoError(t, spill.Range(func(_ uint64, item int) error {
			sum += item
			return nil
		}))
		assert.Equal(t, 49*50/2, sum)
	})
}

func TestNewFileSpillIn_InvalidDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := NewFileSpillIn[int](filepath.Join(file, "sub"))
	require.Error(t, err)
}
