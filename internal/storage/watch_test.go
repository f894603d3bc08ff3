package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/clocklog/internal/logging"
	"github.com/Tiliavir/clocklog/internal/storage"
)

func TestWatchSeesAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.clk")
	other := filepath.Join(dir, "notes.txt")

	var hits, otherHits atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- storage.Watch(ctx, []string{path}, func(p string) {
			if filepath.Base(p) == "main.clk" {
				hits.Add(1)
			} else {
				otherHits.Add(1)
			}
		}, logging.Discard())
	}()

	// Give the watcher time to register the directory.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(other, []byte("x"), 0o600)
		_ = storage.AppendLines(path, []string{"1/3/2024"})
		return hits.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, otherHits.Load())
}
