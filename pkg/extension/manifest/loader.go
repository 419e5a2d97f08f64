package manifest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/hostpanel/hostpanel/pkg/extension"
)

// Loader discovers plugin manifests under configured directories and
// registers them with the extension registry.
type Loader struct {
	registry *extension.Registry
	dirs     []string
	log      *logrus.Logger
}

// NewLoader creates a manifest loader over the given plugin directories.
func NewLoader(registry *extension.Registry, dirs []string, log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.New()
	}
	return &Loader{
		registry: registry,
		dirs:     dirs,
		log:      log,
	}
}

// DiscoverAndRegister walks every plugin directory, loading each subdirectory
// that contains a plugin.yaml. A failing plugin is logged and skipped; the
// rest keep loading. Returns the number of plugins registered.
func (l *Loader) DiscoverAndRegister(ctx context.Context) int {
	registered := 0

	for _, dir := range l.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				l.log.Warnf("Failed to read plugin directory %s: %v", dir, err)
			}
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			pluginDir := filepath.Join(dir, entry.Name())
			if _, err := os.Stat(filepath.Join(pluginDir, FileName)); err != nil {
				continue
			}
			if err := l.RegisterFromDir(ctx, pluginDir); err != nil {
				l.log.Warnf("Failed to load plugin from %s: %v", pluginDir, err)
				continue
			}
			registered++
		}
	}

	return registered
}

// RegisterFromDir loads and registers the plugin manifest in a directory.
func (l *Loader) RegisterFromDir(ctx context.Context, dir string) error {
	m, err := LoadFromDir(dir)
	if err != nil {
		return err
	}

	d, err := m.Descriptor()
	if err != nil {
		return err
	}

	if err := l.registry.Register(ctx, d); err != nil {
		return err
	}

	l.log.Infof("Loaded plugin manifest: %s v%s", d.Name, d.Version)
	return nil
}
