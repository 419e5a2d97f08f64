package manifest

// Watcher event handling is tested by invoking handle directly with
// synthetic events, which keeps the tests deterministic and free of
// filesystem timing.

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, dirs []string) *Watcher {
	t.Helper()
	registry := newTestRegistry(t)
	w, err := NewWatcher(registry, dirs, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w
}

func TestWatcherManifestCreateRegisters(t *testing.T) {
	root := t.TempDir()
	dir := writePluginDir(t, root, "alpha", manifestFor("alpha"))
	w := newTestWatcher(t, []string{root})

	w.handle(context.Background(), fsnotify.Event{
		Name: filepath.Join(dir, FileName),
		Op:   fsnotify.Create,
	})

	assert.True(t, w.registry.IsRegistered("alpha"))
}

func TestWatcherManifestWriteReplaces(t *testing.T) {
	root := t.TempDir()
	dir := writePluginDir(t, root, "alpha", manifestFor("alpha"))
	manifestPath := filepath.Join(dir, FileName)
	w := newTestWatcher(t, []string{root})
	ctx := context.Background()

	w.handle(ctx, fsnotify.Event{Name: manifestPath, Op: fsnotify.Create})
	require.True(t, w.registry.IsRegistered("alpha"))

	// The plugin renames itself in place; the old name must go away.
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestFor("alpha_v2")), 0o644))
	w.handle(ctx, fsnotify.Event{Name: manifestPath, Op: fsnotify.Write})

	assert.False(t, w.registry.IsRegistered("alpha"))
	assert.True(t, w.registry.IsRegistered("alpha_v2"))
}

func TestWatcherManifestRemoveUnregisters(t *testing.T) {
	root := t.TempDir()
	dir := writePluginDir(t, root, "alpha", manifestFor("alpha"))
	manifestPath := filepath.Join(dir, FileName)
	w := newTestWatcher(t, []string{root})
	ctx := context.Background()

	w.handle(ctx, fsnotify.Event{Name: manifestPath, Op: fsnotify.Create})
	require.True(t, w.registry.IsRegistered("alpha"))

	w.handle(ctx, fsnotify.Event{Name: manifestPath, Op: fsnotify.Remove})
	assert.False(t, w.registry.IsRegistered("alpha"))
}

func TestWatcherRemoveOfUntrackedManifestIsNoop(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, []string{root})

	w.handle(context.Background(), fsnotify.Event{
		Name: filepath.Join(root, "ghost", FileName),
		Op:   fsnotify.Remove,
	})

	assert.Empty(t, w.registry.AllPlugins())
}

func TestWatcherNewDirectoryWithManifest(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, []string{root})

	// Simulates an atomic unpack: the directory event arrives with the
	// manifest already inside.
	dir := writePluginDir(t, root, "unpacked", manifestFor("unpacked"))
	w.handle(context.Background(), fsnotify.Event{Name: dir, Op: fsnotify.Create})

	assert.True(t, w.registry.IsRegistered("unpacked"))
}

func TestWatcherInvalidManifestIgnored(t *testing.T) {
	root := t.TempDir()
	dir := writePluginDir(t, root, "broken", "{not yaml: [")
	w := newTestWatcher(t, []string{root})

	w.handle(context.Background(), fsnotify.Event{
		Name: filepath.Join(dir, FileName),
		Op:   fsnotify.Create,
	})

	assert.Empty(t, w.registry.AllPlugins())
}

func TestWatcherTrackLinksExternalRegistration(t *testing.T) {
	root := t.TempDir()
	dir := writePluginDir(t, root, "alpha", manifestFor("alpha"))
	manifestPath := filepath.Join(dir, FileName)

	registry := newTestRegistry(t)
	loader := NewLoader(registry, []string{root}, quietLogger())
	ctx := context.Background()
	require.NoError(t, loader.RegisterFromDir(ctx, dir))

	w, err := NewWatcher(registry, []string{root}, quietLogger())
	require.NoError(t, err)
	defer w.Close()
	w.Track(manifestPath, "alpha")

	w.handle(ctx, fsnotify.Event{Name: manifestPath, Op: fsnotify.Remove})
	assert.False(t, registry.IsRegistered("alpha"))
}

func TestIsManifest(t *testing.T) {
	assert.True(t, isManifest(filepath.Join("plugins", "alpha", FileName)))
	assert.True(t, isManifest(FileName))
	assert.False(t, isManifest(filepath.Join("plugins", "alpha", "other.yaml")))
}
