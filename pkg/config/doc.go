// Package config provides application configuration management from
// environment variables.
//
// # Configuration Structure
//
// Server settings:
//
//	HOSTPANEL_HOST="0.0.0.0"
//	HOSTPANEL_PORT="8080"
//	HOSTPANEL_HEALTH_PORT="9090"
//	HOSTPANEL_READ_TIMEOUT="15s"
//	HOSTPANEL_WRITE_TIMEOUT="15s"
//	HOSTPANEL_SHUTDOWN_TIMEOUT="30s"
//
// Plugin settings:
//
//	HOSTPANEL_PLUGIN_DIRS="/etc/hostpanel/plugins:./plugins"
//	HOSTPANEL_PLUGIN_WATCH="true"
//
// Translation settings:
//
//	HOSTPANEL_I18N_FETCH_TIMEOUT="10s"
//	HOSTPANEL_I18N_REFRESH_SCHEDULE="@every 1h"
//
// Observability settings:
//
//	HOSTPANEL_LOG_LEVEL="info"  # debug, info, warn, error
//	HOSTPANEL_METRICS_ENABLED="true"
package config
