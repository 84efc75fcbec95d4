package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func TestNew(t *testing.T) {
	w := New()
	assert.Equal(t, 100*time.Millisecond, w.debounce)
	assert.False(t, w.IsRunning())

	w = New(WithDebounce(0), WithLogger(nil))
	assert.Equal(t, time.Duration(0), w.debounce)
	assert.NotNil(t, w.logger)
}

func TestOperationString(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Operation
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove | fsnotify.Write, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in.String())
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in.String())
		}
	}
}

func TestWatchAndUnwatch(t *testing.T) {
	dir := t.TempDir()
	w := New()

	require.NoError(t, w.Watch(filepath.Join(dir, "b.json")))
	require.NoError(t, w.Watch(filepath.Join(dir, "a.json")))
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, w.WatchedFiles())

	require.NoError(t, w.Unwatch(filepath.Join(dir, "b.json")))
	assert.Equal(t, []string{filepath.Join(dir, "a.json")}, w.WatchedFiles())
}

func TestQueueEventCoalescing(t *testing.T) {
	base := time.Now()

	tests := []struct {
		name string
		ops  []Operation
		want Operation
	}{
		{"create then write", []Operation{OpCreate, OpWrite}, OpCreate},
		{"write then write", []Operation{OpWrite, OpWrite}, OpWrite},
		{"write then remove", []Operation{OpWrite, OpRemove}, OpRemove},
		{"remove then create", []Operation{OpRemove, OpCreate}, OpCreate},
		{"remove then write", []Operation{OpRemove, OpWrite}, OpRemove},
		{"write then rename", []Operation{OpWrite, OpRename}, OpRename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			for i, op := range tt.ops {
				w.queueEvent(Event{Path: "/s.json", Op: op, Time: base.Add(time.Duration(i) * time.Millisecond)})
			}
			require.Len(t, w.pendingFiles, 1)
			pending := w.pendingFiles["/s.json"]
			assert.Equal(t, tt.want, pending.Op)
			assert.Equal(t, base.Add(time.Duration(len(tt.ops)-1)*time.Millisecond), pending.Time)
		})
	}
}

func TestProcessPendingEvents(t *testing.T) {
	w := New(WithDebounce(50 * time.Millisecond))
	rec := &recorder{}
	w.OnChange(rec.handle)

	now := time.Now()
	w.queueEvent(Event{Path: "/old.json", Op: OpWrite, Time: now.Add(-time.Second)})
	w.queueEvent(Event{Path: "/fresh.json", Op: OpWrite, Time: now})

	w.processPendingEvents(now)

	events := rec.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, "/old.json", events[0].Path)
	assert.Contains(t, w.pendingFiles, "/fresh.json")

	w.processPendingEvents(now.Add(time.Second))
	assert.Len(t, rec.snapshot(), 2)
	assert.Empty(t, w.pendingFiles)
}

func TestHandlerPanicRecovered(t *testing.T) {
	w := New()
	rec := &recorder{}
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(rec.handle)

	assert.NotPanics(t, func() {
		w.emitEvent(Event{Path: "/s.json", Op: OpWrite})
	})
	assert.Len(t, rec.snapshot(), 1)
}

func TestStartTwice(t *testing.T) {
	w := New()
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	assert.ErrorIs(t, w.Start(context.Background()), ErrAlreadyRunning)
	assert.True(t, w.IsRunning())

	w.Stop()
	assert.False(t, w.IsRunning())
}

func TestWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	w := New(WithDebounce(20 * time.Millisecond))
	rec := &recorder{}
	w.OnChange(rec.handle)
	require.NoError(t, w.Watch(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`{"helix_mode": true}`), 0o644))

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	for _, e := range rec.snapshot() {
		assert.Equal(t, path, e.Path)
	}
}

func TestWatcherDetectsCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	w := New(WithDebounce(0))
	rec := &recorder{}
	w.OnChange(rec.handle)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(path, []byte("helix_mode = true\n"), 0o644))

	require.Eventually(t, func() bool {
		for _, e := range rec.snapshot() {
			if e.Op == OpCreate {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}
