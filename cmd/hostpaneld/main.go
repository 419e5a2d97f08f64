package main

import (
	"context"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hostpanel/hostpanel/pkg/api"
	"github.com/hostpanel/hostpanel/pkg/config"
	"github.com/hostpanel/hostpanel/pkg/contrib"
	"github.com/hostpanel/hostpanel/pkg/extension"
	"github.com/hostpanel/hostpanel/pkg/extension/i18n"
	"github.com/hostpanel/hostpanel/pkg/extension/manifest"
	"github.com/hostpanel/hostpanel/pkg/observability"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	pluginLog := logrus.New()

	var metrics *observability.Metrics
	var registryMetrics *extension.Metrics
	if cfg.Observability.MetricsEnabled {
		promRegistry := prometheus.NewRegistry()
		metrics = observability.NewMetrics(promRegistry)
		registryMetrics = extension.NewMetrics(promRegistry)
	}

	// Translation pipeline: catalog store, HTTP fetcher, loader.
	catalog := i18n.NewCatalog()
	fetcher := i18n.NewHTTPFetcher(cfg.I18n.FetchTimeout)
	translations := i18n.NewLoader(catalog, fetcher, pluginLog)

	registry := extension.NewRegistry(translations, pluginLog)
	registry.SetMetrics(registryMetrics)

	ctx := context.Background()

	if err := contrib.RegisterBuiltins(ctx, registry); err != nil {
		logger.WithError(err).Error("Built-in plugin registration failed")
		os.Exit(1)
	}

	// Discover third-party plugin manifests; failures degrade, never abort.
	loader := manifest.NewLoader(registry, cfg.Plugins.Dirs, pluginLog)
	count := loader.DiscoverAndRegister(ctx)
	logger.WithField("count", count).Info("Discovered plugin manifests")

	var watcher *manifest.Watcher
	if cfg.Plugins.Watch {
		watcher, err = manifest.NewWatcher(registry, cfg.Plugins.Dirs, pluginLog)
		if err != nil {
			logger.WithError(err).Warn("Plugin watching disabled")
		} else {
			watcher.Start(ctx)
		}
	}

	refresher, err := i18n.NewRefreshScheduler(translations, registry, cfg.I18n.RefreshSchedule, pluginLog)
	if err != nil {
		logger.WithError(err).Error("Invalid translation refresh schedule")
		os.Exit(1)
	}
	refresher.Start()

	server := api.NewServer(registry, catalog, logger, metrics)

	// Health and metrics on a separate port for k8s probes.
	healthMux := http.NewServeMux()
	observability.RegisterHealthRoutes(healthMux, observability.NewHealthChecker(loadStateSource{registry}))
	if metrics != nil {
		healthMux.Handle("/metrics", metrics.Handler())
	}
	healthServer := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.HealthPort,
		Handler: healthMux,
	}
	go func() {
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Health server failed")
		}
	}()

	httpServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	go func() {
		logger.WithField("addr", httpServer.Addr).Info("Host panel API listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("API server failed")
			os.Exit(1)
		}
	}()

	shutdown := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		server.Close()
		refresher.Stop()
		if watcher != nil {
			watcher.Close()
		}
		if err := healthServer.Shutdown(ctx); err != nil {
			return err
		}
		return registry.Close(ctx)
	})

	if err := shutdown.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("Shutdown incomplete")
		os.Exit(1)
	}
}

// loadStateSource adapts the registry's load state to the health checker.
type loadStateSource struct {
	registry *extension.Registry
}

func (s loadStateSource) LoadedPlugins() []string {
	return s.registry.LoadState().Loaded
}

func (s loadStateSource) FailedPlugins() []string {
	state := s.registry.LoadState()
	names := make([]string, 0, len(state.Failed))
	for _, f := range state.Failed {
		names = append(names, f.Name)
	}
	return names
}
