package i18n

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// stubFetcher returns canned catalogs per locale, or an error.
type stubFetcher struct {
	catalogs map[string]map[string]string
	err      error
	calls    int
}

func (f *stubFetcher) Fetch(ctx context.Context, translationURL, locale string) (map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.catalogs[locale], nil
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "acme_hosts", Namespace("acme_hosts", &Config{}))
	assert.Equal(t, "custom", Namespace("acme_hosts", &Config{Domain: "custom"}))
	assert.Equal(t, "acme_hosts", Namespace("acme_hosts", nil))
}

func TestLoaderBundledOnly(t *testing.T) {
	catalog := NewCatalog()
	loader := NewLoader(catalog, nil, quietLogger())

	cfg := &Config{
		DefaultLocale:    "en",
		SupportedLocales: []string{"en", "de"},
		Keys:             map[string]string{"greeting": "Hello"},
	}
	require.NoError(t, loader.Load(context.Background(), "hosts", cfg))

	// Bundled keys registered for every supported locale.
	assert.Equal(t, "Hello", catalog.Translate("en", "hosts", "greeting"))
	assert.Equal(t, "Hello", catalog.Translate("de", "hosts", "greeting"))
	assert.Equal(t, "en", catalog.DefaultLocale("hosts"))
}

func TestLoaderNilConfig(t *testing.T) {
	loader := NewLoader(NewCatalog(), nil, quietLogger())
	assert.NoError(t, loader.Load(context.Background(), "hosts", nil))
}

func TestLoaderDefaultLocaleAlwaysRegistered(t *testing.T) {
	catalog := NewCatalog()
	loader := NewLoader(catalog, nil, quietLogger())

	// Default locale absent from the supported list still gets a catalog.
	cfg := &Config{
		DefaultLocale:    "en",
		SupportedLocales: []string{"de", "fr"},
		Keys:             map[string]string{"greeting": "Hello"},
	}
	require.NoError(t, loader.Load(context.Background(), "hosts", cfg))

	_, ok := catalog.Lookup("en", "hosts", "greeting")
	assert.True(t, ok)
}

func TestLoaderRemoteMergeWinsOverBundled(t *testing.T) {
	catalog := NewCatalog()
	fetcher := &stubFetcher{catalogs: map[string]map[string]string{
		"en": {"greeting": "Hi there", "extra": "Remote only"},
		"de": {"greeting": "Hallo"},
	}}
	loader := NewLoader(catalog, fetcher, quietLogger())

	cfg := &Config{
		DefaultLocale:    "en",
		SupportedLocales: []string{"en", "de"},
		Keys:             map[string]string{"greeting": "Hello", "farewell": "Goodbye"},
		TranslationURL:   "https://translations.example.com/hosts",
	}
	require.NoError(t, loader.Load(context.Background(), "hosts", cfg))

	// Remote values win on collision, bundled values fill the gaps.
	assert.Equal(t, "Hi there", catalog.Translate("en", "hosts", "greeting"))
	assert.Equal(t, "Goodbye", catalog.Translate("en", "hosts", "farewell"))
	assert.Equal(t, "Remote only", catalog.Translate("en", "hosts", "extra"))
	assert.Equal(t, "Hallo", catalog.Translate("de", "hosts", "greeting"))
	assert.Equal(t, 2, fetcher.calls)
}

func TestLoaderRemoteFailureDegradesToBundled(t *testing.T) {
	catalog := NewCatalog()
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	loader := NewLoader(catalog, fetcher, quietLogger())

	cfg := &Config{
		DefaultLocale:    "en",
		SupportedLocales: []string{"en"},
		Keys:             map[string]string{"greeting": "Hello"},
		TranslationURL:   "https://translations.example.com/hosts",
	}
	require.NoError(t, loader.Load(context.Background(), "hosts", cfg))

	assert.Equal(t, "Hello", catalog.Translate("en", "hosts", "greeting"))
}

func TestLoaderInvalidLocaleSkipped(t *testing.T) {
	catalog := NewCatalog()
	loader := NewLoader(catalog, nil, quietLogger())

	cfg := &Config{
		DefaultLocale:    "en",
		SupportedLocales: []string{"en", "not a locale"},
		Keys:             map[string]string{"greeting": "Hello"},
	}
	err := loader.Load(context.Background(), "hosts", cfg)
	assert.Error(t, err)

	// The valid locale still registered.
	assert.Equal(t, "Hello", catalog.Translate("en", "hosts", "greeting"))
}

func TestLoaderRemove(t *testing.T) {
	catalog := NewCatalog()
	loader := NewLoader(catalog, nil, quietLogger())

	cfg := &Config{
		DefaultLocale:    "en",
		SupportedLocales: []string{"en"},
		Keys:             map[string]string{"k": "v"},
	}
	require.NoError(t, loader.Load(context.Background(), "hosts", cfg))
	loader.Remove("hosts")

	assert.False(t, catalog.HasNamespace("hosts"))
}

func TestHTTPFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("locale") {
		case "de":
			w.Write([]byte(`{"greeting": "Hallo"}`))
		case "broken":
			w.Write([]byte(`not json`))
		case "missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Write([]byte(`{"greeting": "Hello"}`))
		}
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(5 * time.Second)
	ctx := context.Background()

	t.Run("fetches locale catalog", func(t *testing.T) {
		keys, err := fetcher.Fetch(ctx, server.URL, "de")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"greeting": "Hallo"}, keys)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		_, err := fetcher.Fetch(ctx, server.URL, "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("invalid json is an error", func(t *testing.T) {
		_, err := fetcher.Fetch(ctx, server.URL, "broken")
		assert.Error(t, err)
	})

	t.Run("unreachable server is an error", func(t *testing.T) {
		down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		down.Close()
		_, err := fetcher.Fetch(ctx, down.URL, "en")
		assert.Error(t, err)
	})
}
