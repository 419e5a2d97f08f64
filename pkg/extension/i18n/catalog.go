package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// Config describes a plugin's bundled translations.
type Config struct {
	// Domain is the namespace the catalog is stored under. Defaults to the
	// plugin name when empty.
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`
	// DefaultLocale is the locale the bundled Keys are written in.
	DefaultLocale string `json:"default_locale" yaml:"default_locale"`
	// SupportedLocales lists every locale the plugin ships or fetches.
	SupportedLocales []string `json:"supported_locales" yaml:"supported_locales"`
	// Keys maps translation keys to their default-locale strings.
	Keys map[string]string `json:"keys" yaml:"keys"`
	// TranslationURL optionally points at a remote catalog endpoint.
	TranslationURL string `json:"translation_url,omitempty" yaml:"translation_url,omitempty"`
}

// TranslateFunc resolves a translation key to a localized string.
type TranslateFunc func(key string) string

// Catalog is a thread-safe store of translation catalogs keyed by
// (locale, namespace).
type Catalog struct {
	mu       sync.RWMutex
	catalogs map[catalogKey]map[string]string
	defaults map[string]string // namespace -> default locale
}

type catalogKey struct {
	locale    string
	namespace string
}

// NewCatalog creates an empty catalog store.
func NewCatalog() *Catalog {
	return &Catalog{
		catalogs: make(map[catalogKey]map[string]string),
		defaults: make(map[string]string),
	}
}

// Register stores a catalog under (locale, namespace), replacing any
// previously registered catalog for that pair. The keys map is copied.
func (c *Catalog) Register(locale, namespace string, keys map[string]string) error {
	if namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	copied := make(map[string]string, len(keys))
	for k, v := range keys {
		copied[k] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalogs[catalogKey{locale: locale, namespace: namespace}] = copied
	return nil
}

// SetDefaultLocale records the fallback locale for a namespace.
func (c *Catalog) SetDefaultLocale(namespace, locale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaults[namespace] = locale
}

// DefaultLocale returns the fallback locale registered for a namespace.
func (c *Catalog) DefaultLocale(namespace string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaults[namespace]
}

// RemoveNamespace drops every locale's catalog for the given namespace.
func (c *Catalog) RemoveNamespace(namespace string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.catalogs {
		if key.namespace == namespace {
			delete(c.catalogs, key)
		}
	}
	delete(c.defaults, namespace)
}

// HasNamespace reports whether any locale is registered for the namespace.
func (c *Catalog) HasNamespace(namespace string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for key := range c.catalogs {
		if key.namespace == namespace {
			return true
		}
	}
	return false
}

// Lookup returns the translation for key in the exact (locale, namespace)
// catalog, without any fallback.
func (c *Catalog) Lookup(locale, namespace, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	catalog, ok := c.catalogs[catalogKey{locale: locale, namespace: namespace}]
	if !ok {
		return "", false
	}
	value, ok := catalog[key]
	return value, ok
}

// Translate resolves key through the fallback chain: the requested locale,
// the namespace's default locale, and finally the key itself.
func (c *Catalog) Translate(locale, namespace, key string) string {
	if value, ok := c.Lookup(locale, namespace, key); ok {
		return value
	}
	if fallback := c.DefaultLocale(namespace); fallback != "" && fallback != locale {
		if value, ok := c.Lookup(fallback, namespace, key); ok {
			return value
		}
	}
	return key
}

// Namespace returns a snapshot copy of the catalog for (locale, namespace).
// Missing catalogs yield an empty map.
func (c *Catalog) Namespace(locale, namespace string) map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	catalog := c.catalogs[catalogKey{locale: locale, namespace: namespace}]
	copied := make(map[string]string, len(catalog))
	for k, v := range catalog {
		copied[k] = v
	}
	return copied
}

// Translator returns a TranslateFunc bound to a namespace and locale.
func (c *Catalog) Translator(namespace, locale string) TranslateFunc {
	return func(key string) string {
		return c.Translate(locale, namespace, key)
	}
}
