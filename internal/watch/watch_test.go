package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RerunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "example_data.csv")
	require.NoError(t, os.WriteFile(path, []byte("Time,Price\n"), 0o644))

	w, err := New(path, Config{Settle: 20 * time.Millisecond}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls <- struct{}{}
			return errors.New("rerun failure is only logged")
		})
	}()

	// 其他文件的变更不触发
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))
	select {
	case <-calls:
		t.Fatal("unexpected rerun for unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("Time,Price\n0,100\n"), 0o644))
	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("expected rerun after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "data.csv"), DefaultConfig(), nil)
	assert.Error(t, err)
}
