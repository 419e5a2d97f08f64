package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostpanel/hostpanel/pkg/extension"
	"github.com/hostpanel/hostpanel/pkg/extension/i18n"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestRegistry(t *testing.T) *extension.Registry {
	t.Helper()
	log := quietLogger()
	return extension.NewRegistry(i18n.NewLoader(i18n.NewCatalog(), nil, log), log)
}

func writePluginDir(t *testing.T, root, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
	return dir
}

func manifestFor(name string) string {
	return "name: " + name + "\nversion: 1.0.0\ndisplay_name: " + name + "\n"
}

func TestDiscoverAndRegister(t *testing.T) {
	root := t.TempDir()
	writePluginDir(t, root, "alpha", manifestFor("alpha"))
	writePluginDir(t, root, "beta", manifestFor("beta"))

	// A subdirectory without a manifest is skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-plugin"), 0o755))
	// A stray file at the top level is skipped.
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0o644))

	registry := newTestRegistry(t)
	loader := NewLoader(registry, []string{root}, quietLogger())

	count := loader.DiscoverAndRegister(context.Background())

	assert.Equal(t, 2, count)
	assert.True(t, registry.IsRegistered("alpha"))
	assert.True(t, registry.IsRegistered("beta"))
}

func TestDiscoverAndRegisterSkipsBrokenPlugins(t *testing.T) {
	root := t.TempDir()
	writePluginDir(t, root, "good", manifestFor("good"))
	writePluginDir(t, root, "bad-version", "name: bad\nversion: latest\ndisplay_name: Bad\n")
	writePluginDir(t, root, "bad-yaml", "{broken: [")

	registry := newTestRegistry(t)
	loader := NewLoader(registry, []string{root}, quietLogger())

	count := loader.DiscoverAndRegister(context.Background())

	assert.Equal(t, 1, count)
	assert.True(t, registry.IsRegistered("good"))
	assert.False(t, registry.IsRegistered("bad"))
}

func TestDiscoverAndRegisterMissingDir(t *testing.T) {
	registry := newTestRegistry(t)
	loader := NewLoader(registry, []string{"/does/not/exist"}, quietLogger())

	assert.Equal(t, 0, loader.DiscoverAndRegister(context.Background()))
}

func TestDiscoverAndRegisterMultipleDirs(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writePluginDir(t, rootA, "alpha", manifestFor("alpha"))
	writePluginDir(t, rootB, "beta", manifestFor("beta"))

	registry := newTestRegistry(t)
	loader := NewLoader(registry, []string{rootA, rootB}, quietLogger())

	assert.Equal(t, 2, loader.DiscoverAndRegister(context.Background()))
}

func TestRegisterFromDir(t *testing.T) {
	root := t.TempDir()
	dir := writePluginDir(t, root, "alpha", manifestFor("alpha"))

	registry := newTestRegistry(t)
	loader := NewLoader(registry, []string{root}, quietLogger())

	require.NoError(t, loader.RegisterFromDir(context.Background(), dir))
	assert.True(t, registry.IsRegistered("alpha"))

	// A second registration of the same manifest is a duplicate.
	err := loader.RegisterFromDir(context.Background(), dir)
	assert.Error(t, err)
}
