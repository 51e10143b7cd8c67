package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/wireframe/logging"
)

func TestMain(m *testing.M) {
	logging.InitLogger("error")
	os.Exit(m.Run())
}

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "annotations.json")
	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	errCh := make(chan error, 1)
	go func() {
		errCh <- Watch(ctx, []string{target}, 50*time.Millisecond, func() { calls.Add(1) })
	}()

	// 等待 watcher 就绪
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte("[ ]"), 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch 未在取消后返回")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), []string{filepath.Join(t.TempDir(), "nope", "a.json")}, 0, func() {})
	require.Error(t, err)
}

func TestWatchLeavesGlobalLoggerAlone(t *testing.T) {
	saved := logging.Logger
	logging.Logger = nil
	t.Cleanup(func() { logging.Logger = saved })

	err := Watch(context.Background(), []string{filepath.Join(t.TempDir(), "nope", "a.json")}, 0, func() {})
	require.Error(t, err)
	require.Nil(t, logging.Logger)
}
