package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource map[string]*Config

func (s staticSource) TranslationConfigs() map[string]*Config { return s }

func TestRefreshSchedulerInvalidSpec(t *testing.T) {
	loader := NewLoader(NewCatalog(), nil, quietLogger())
	_, err := NewRefreshScheduler(loader, staticSource{}, "not a cron spec", quietLogger())
	assert.Error(t, err)
}

func TestRefreshNow(t *testing.T) {
	catalog := NewCatalog()
	fetcher := &stubFetcher{catalogs: map[string]map[string]string{
		"en": {"greeting": "Updated"},
	}}
	loader := NewLoader(catalog, fetcher, quietLogger())

	source := staticSource{
		"remote": {
			DefaultLocale:    "en",
			SupportedLocales: []string{"en"},
			Keys:             map[string]string{"greeting": "Bundled"},
			TranslationURL:   "https://translations.example.com/remote",
		},
		"local": {
			DefaultLocale:    "en",
			SupportedLocales: []string{"en"},
			Keys:             map[string]string{"greeting": "Local"},
		},
	}

	s, err := NewRefreshScheduler(loader, source, "@every 1h", quietLogger())
	require.NoError(t, err)

	s.RefreshNow(context.Background())

	// Only the config with a remote URL is refreshed.
	assert.Equal(t, "Updated", catalog.Translate("en", "remote", "greeting"))
	assert.False(t, catalog.HasNamespace("local"))
	assert.Equal(t, 1, fetcher.calls)
}
