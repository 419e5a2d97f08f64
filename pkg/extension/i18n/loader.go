package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves a remote translation catalog for a single locale.
type Fetcher interface {
	Fetch(ctx context.Context, translationURL, locale string) (map[string]string, error)
}

// HTTPFetcher fetches remote catalogs as JSON objects of key -> string.
// Concurrent fetches for the same (url, locale) pair are deduplicated.
type HTTPFetcher struct {
	client *http.Client
	group  singleflight.Group
}

// NewHTTPFetcher creates a fetcher with the given timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a GET against translationURL with the locale as a query
// parameter and decodes the response as a flat key/value JSON object.
func (f *HTTPFetcher) Fetch(ctx context.Context, translationURL, locale string) (map[string]string, error) {
	key := translationURL + "|" + locale
	result, err, _ := f.group.Do(key, func() (interface{}, error) {
		return f.fetch(ctx, translationURL, locale)
	})
	if err != nil {
		return nil, err
	}
	return result.(map[string]string), nil
}

func (f *HTTPFetcher) fetch(ctx context.Context, translationURL, locale string) (map[string]string, error) {
	parsed, err := url.Parse(translationURL)
	if err != nil {
		return nil, fmt.Errorf("invalid translation URL: %w", err)
	}
	query := parsed.Query()
	query.Set("locale", locale)
	parsed.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog body: %w", err)
	}

	var keys map[string]string
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return keys, nil
}

// Loader registers plugin locale configurations into a Catalog, merging
// remote catalogs over the bundled defaults when a fetcher is available.
type Loader struct {
	catalog *Catalog
	fetcher Fetcher
	log     *logrus.Logger
}

// NewLoader creates a translation loader. fetcher may be nil, in which case
// only bundled keys are registered.
func NewLoader(catalog *Catalog, fetcher Fetcher, log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.New()
	}
	return &Loader{
		catalog: catalog,
		fetcher: fetcher,
		log:     log,
	}
}

// Catalog returns the underlying catalog store.
func (l *Loader) Catalog() *Catalog {
	return l.catalog
}

// Namespace returns the namespace a plugin's catalogs are stored under.
func Namespace(pluginName string, cfg *Config) string {
	if cfg != nil && cfg.Domain != "" {
		return cfg.Domain
	}
	return pluginName
}

// Load registers the plugin's catalogs for every supported locale. The
// bundled keys always serve as the fallback catalog; a remote catalog, when
// fetched, wins on key collisions. Remote failures are logged and degrade to
// the fallback. The returned error reports only total registration failure
// for a locale, which callers treat as non-fatal.
func (l *Loader) Load(ctx context.Context, pluginName string, cfg *Config) error {
	if cfg == nil {
		return nil
	}

	namespace := Namespace(pluginName, cfg)
	l.catalog.SetDefaultLocale(namespace, cfg.DefaultLocale)

	locales := cfg.SupportedLocales
	if !containsLocale(locales, cfg.DefaultLocale) {
		locales = append([]string{cfg.DefaultLocale}, locales...)
	}

	var firstErr error
	for _, locale := range locales {
		merged := make(map[string]string, len(cfg.Keys))
		for k, v := range cfg.Keys {
			merged[k] = v
		}

		if cfg.TranslationURL != "" && l.fetcher != nil {
			remote, err := l.fetcher.Fetch(ctx, cfg.TranslationURL, locale)
			if err != nil {
				l.log.WithFields(logrus.Fields{
					"plugin": pluginName,
					"locale": locale,
				}).Warnf("Remote catalog fetch failed, using bundled defaults: %v", err)
			} else {
				for k, v := range remote {
					merged[k] = v
				}
			}
		}

		if err := l.catalog.Register(locale, namespace, merged); err != nil {
			l.log.WithFields(logrus.Fields{
				"plugin": pluginName,
				"locale": locale,
			}).Warnf("Catalog registration failed, retrying with bundled defaults: %v", err)

			if err := l.catalog.Register(locale, namespace, cfg.Keys); err != nil {
				l.log.WithFields(logrus.Fields{
					"plugin": pluginName,
					"locale": locale,
				}).Warnf("Fallback catalog registration failed: %v", err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	return firstErr
}

// Remove drops every catalog registered under the namespace.
func (l *Loader) Remove(namespace string) {
	l.catalog.RemoveNamespace(namespace)
}

func containsLocale(locales []string, locale string) bool {
	for _, l := range locales {
		if l == locale {
			return true
		}
	}
	return false
}
