package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/hostpanel/hostpanel/pkg/extension"
	"github.com/hostpanel/hostpanel/pkg/extension/i18n"
)

// FileName is the manifest file looked up inside each plugin directory.
const FileName = "plugin.yaml"

var semverRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)

// Manifest is the YAML form of a callback-free plugin descriptor.
type Manifest struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description,omitempty"`
	Author       string `yaml:"author,omitempty"`
	HostVersions string `yaml:"host_versions,omitempty"`

	Routes      []extension.Route              `yaml:"routes,omitempty"`
	MenuItems   []extension.MenuItem           `yaml:"menu_items,omitempty"`
	Permissions []extension.Permission         `yaml:"permissions,omitempty"`
	Extensions  []extension.ComponentExtension `yaml:"extensions,omitempty"`
	Widgets     []extension.DashboardWidget    `yaml:"widgets,omitempty"`
	I18n        *i18nSection                   `yaml:"i18n,omitempty"`
}

type i18nSection struct {
	Domain           string            `yaml:"domain,omitempty"`
	DefaultLocale    string            `yaml:"default_locale"`
	SupportedLocales []string          `yaml:"supported_locales"`
	Keys             map[string]string `yaml:"keys"`
	TranslationURL   string            `yaml:"translation_url,omitempty"`
}

// Load parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// LoadFromDir loads the plugin.yaml manifest inside a plugin directory.
func LoadFromDir(dir string) (*Manifest, error) {
	return Load(filepath.Join(dir, FileName))
}

// Validate performs manifest-level checks beyond the registry's structural
// validation: version strings must be semver.
func (m *Manifest) Validate() error {
	if m.Version != "" && !semverRegex.MatchString(m.Version) {
		return fmt.Errorf("invalid semver version: %s", m.Version)
	}
	if m.HostVersions != "" && !semverRegex.MatchString(m.HostVersions) {
		return fmt.Errorf("invalid semver host version: %s", m.HostVersions)
	}
	return nil
}

// Descriptor converts the manifest into a registrable descriptor.
func (m *Manifest) Descriptor() (*extension.Descriptor, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	d := &extension.Descriptor{
		Name:                m.Name,
		Version:             m.Version,
		DisplayName:         m.DisplayName,
		Description:         m.Description,
		Author:              m.Author,
		HostVersions:        m.HostVersions,
		Routes:              m.Routes,
		MenuItems:           m.MenuItems,
		Permissions:         m.Permissions,
		ComponentExtensions: m.Extensions,
		DashboardWidgets:    m.Widgets,
	}

	if m.I18n != nil {
		d.I18n = &i18n.Config{
			Domain:           m.I18n.Domain,
			DefaultLocale:    m.I18n.DefaultLocale,
			SupportedLocales: m.I18n.SupportedLocales,
			Keys:             m.I18n.Keys,
			TranslationURL:   m.I18n.TranslationURL,
		}
	}
	return d, nil
}
