package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Constructor ---

func TestNewFileWatcher_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	f := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(f, []byte("key: val"), 0644))

	w, err := NewFileWatcher([]string{f})
	require.NoError(t, err)
	require.NotNil(t, w)

	assert.False(t, w.IsRunning())
	assert.Equal(t, time.Second, w.pollInterval)
	assert.Equal(t, 100*time.Millisecond, w.debounceDelay)
}

func TestNewFileWatcher_WithOptions(t *testing.T) {
	tmpDir := t.TempDir()
	f := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(f, []byte("key: val"), 0644))

	w, err := NewFileWatcher([]string{f},
		WithPollInterval(10*time.Millisecond),
		WithDebounceDelay(500*time.Millisecond),
		WithWatcherLogger(zap.NewNop()),
	)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, w.pollInterval)
	assert.Equal(t, 500*time.Millisecond, w.debounceDelay)
}

func TestNewFileWatcher_NonExistentPathWarns(t *testing.T) {
	// 不存在的路径只警告不报错：文件可能稍后创建
	w, err := NewFileWatcher([]string{"/nonexistent/path/config.yaml"})
	require.NoError(t, err)
	require.NotNil(t, w)
}

// --- Start / Stop ---

func TestFileWatcher_StartStop(t *testing.T) {
	tmpDir := t.TempDir()
	f := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(f, []byte("key: val"), 0644))

	w, err := NewFileWatcher([]string{f})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, w.Start(ctx))
	assert.True(t, w.IsRunning())

	// 重复启动报错
	assert.Error(t, w.Start(ctx))

	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())

	// 重复停止是幂等的
	assert.NoError(t, w.Stop())
}

// --- 变更检测 ---

func TestFileWatcher_DetectsWrite(t *testing.T) {
	tmpDir := t.TempDir()
	f := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(f, []byte("v: 1"), 0644))

	w, err := NewFileWatcher([]string{f},
		WithPollInterval(10*time.Millisecond),
		WithDebounceDelay(10*time.Millisecond),
	)
	require.NoError(t, err)

	var mu sync.Mutex
	var events []FileEvent
	w.OnChange(func(e FileEvent) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// 保证修改时间前进
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(f, []byte("v: 2"), 0644))
	now := time.Now()
	require.NoError(t, os.Chtimes(f, now, now))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e.Op == FileOpWrite && e.Path == f {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}

func TestFileWatcher_DetectsRemove(t *testing.T) {
	tmpDir := t.TempDir()
	f := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(f, []byte("v: 1"), 0644))

	w, err := NewFileWatcher([]string{f},
		WithPollInterval(10*time.Millisecond),
		WithDebounceDelay(10*time.Millisecond),
	)
	require.NoError(t, err)

	var mu sync.Mutex
	var gotRemove bool
	w.OnChange(func(e FileEvent) {
		mu.Lock()
		if e.Op == FileOpRemove {
			gotRemove = true
		}
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.Remove(f))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return gotRemove
	}, 2*time.Second, 20*time.Millisecond)
}

// --- FileOp ---

func TestFileOp_String(t *testing.T) {
	assert.Equal(t, "CREATE", FileOpCreate.String())
	assert.Equal(t, "WRITE", FileOpWrite.String())
	assert.Equal(t, "REMOVE", FileOpRemove.String())
	assert.Equal(t, "UNKNOWN", FileOp(99).String())
}
