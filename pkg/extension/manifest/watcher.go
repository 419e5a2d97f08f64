package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/hostpanel/hostpanel/pkg/extension"
)

// Watcher keeps the registry in sync with manifest files on disk: a new
// plugin.yaml registers its plugin, a rewrite re-registers it, and a removal
// unregisters it.
type Watcher struct {
	registry *extension.Registry
	watcher  *fsnotify.Watcher
	log      *logrus.Logger

	mu     sync.Mutex
	byPath map[string]string // manifest path -> plugin name

	done chan struct{}
}

// NewWatcher creates a watcher over the given plugin directories. Missing
// directories are skipped.
func NewWatcher(registry *extension.Registry, dirs []string, log *logrus.Logger) (*Watcher, error) {
	if log == nil {
		log = logrus.New()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			log.Debugf("Not watching plugin directory %s: %v", dir, err)
		}
	}

	return &Watcher{
		registry: registry,
		watcher:  fw,
		log:      log,
		byPath:   make(map[string]string),
		done:     make(chan struct{}),
	}, nil
}

// Track records that a manifest path was registered outside the watcher, so
// a later removal unregisters the right plugin.
func (w *Watcher) Track(manifestPath, pluginName string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.byPath[manifestPath] = pluginName
}

// Start consumes filesystem events until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnf("Plugin watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create) && isDir(event.Name):
		// A new plugin directory: watch it for its manifest.
		if err := w.watcher.Add(event.Name); err != nil {
			w.log.Debugf("Not watching new directory %s: %v", event.Name, err)
		}
		// The manifest may already be in place (e.g. atomic unpack).
		manifest := filepath.Join(event.Name, FileName)
		if exists(manifest) {
			w.register(ctx, manifest)
		}

	case isManifest(event.Name) && (event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write)):
		w.register(ctx, event.Name)

	case isManifest(event.Name) && (event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)):
		w.unregister(ctx, event.Name)
	}
}

// register loads the manifest and registers its plugin. A rewrite of an
// already-tracked manifest replaces the previous registration.
func (w *Watcher) register(ctx context.Context, manifestPath string) {
	w.mu.Lock()
	previous, tracked := w.byPath[manifestPath]
	w.mu.Unlock()

	if tracked {
		if err := w.registry.Unregister(ctx, previous); err != nil {
			w.log.WithField("plugin", previous).Warnf("Failed to replace plugin: %v", err)
			return
		}
	}

	m, err := Load(manifestPath)
	if err != nil {
		w.log.Warnf("Failed to load manifest %s: %v", manifestPath, err)
		return
	}
	d, err := m.Descriptor()
	if err != nil {
		w.log.Warnf("Invalid manifest %s: %v", manifestPath, err)
		return
	}
	if err := w.registry.Register(ctx, d); err != nil {
		w.log.Warnf("Failed to register plugin from %s: %v", manifestPath, err)
		return
	}

	w.mu.Lock()
	w.byPath[manifestPath] = d.Name
	w.mu.Unlock()
	w.log.Infof("Registered plugin from manifest: %s", d.Name)
}

func (w *Watcher) unregister(ctx context.Context, manifestPath string) {
	w.mu.Lock()
	name, ok := w.byPath[manifestPath]
	delete(w.byPath, manifestPath)
	w.mu.Unlock()
	if !ok {
		return
	}

	if err := w.registry.Unregister(ctx, name); err != nil {
		w.log.WithField("plugin", name).Warnf("Failed to unregister plugin: %v", err)
		return
	}
	w.log.Infof("Unregistered plugin after manifest removal: %s", name)
}

func isManifest(path string) bool {
	return strings.HasSuffix(path, string(filepath.Separator)+FileName) || filepath.Base(path) == FileName
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
