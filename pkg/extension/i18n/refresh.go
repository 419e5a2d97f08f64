package i18n

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ConfigSource supplies the locale configurations that should be refreshed
// periodically, keyed by plugin name. The plugin registry implements this.
type ConfigSource interface {
	TranslationConfigs() map[string]*Config
}

// RefreshScheduler re-fetches remote catalogs on a cron schedule so that
// translation updates published by plugin authors reach running instances
// without a re-registration.
type RefreshScheduler struct {
	cron    *cron.Cron
	loader  *Loader
	source  ConfigSource
	log     *logrus.Logger
	timeout time.Duration
}

// NewRefreshScheduler creates a scheduler that refreshes every catalog with
// a remote URL according to the cron spec (e.g. "@every 1h").
func NewRefreshScheduler(loader *Loader, source ConfigSource, spec string, log *logrus.Logger) (*RefreshScheduler, error) {
	if log == nil {
		log = logrus.New()
	}

	s := &RefreshScheduler{
		cron:    cron.New(),
		loader:  loader,
		source:  source,
		log:     log,
		timeout: 30 * time.Second,
	}

	if _, err := s.cron.AddFunc(spec, s.refreshAll); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the schedule.
func (s *RefreshScheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish.
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RefreshNow refreshes every remote catalog immediately.
func (s *RefreshScheduler) RefreshNow(ctx context.Context) {
	s.refresh(ctx)
}

func (s *RefreshScheduler) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.refresh(ctx)
}

func (s *RefreshScheduler) refresh(ctx context.Context) {
	for plugin, cfg := range s.source.TranslationConfigs() {
		if cfg == nil || cfg.TranslationURL == "" {
			continue
		}
		if err := s.loader.Load(ctx, plugin, cfg); err != nil {
			s.log.WithField("plugin", plugin).Warnf("Catalog refresh failed: %v", err)
		}
	}
}
