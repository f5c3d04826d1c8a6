package config

import "github.com/dmitrijs2005/nutrisync/internal/flagx"

// parseEnv applies environment overrides. A malformed boolean panics like
// the other loaders do.
func parseEnv(cfg *Config) {
	enabled, err := flagx.BoolEnv(EnvSyncEnabled, cfg.SyncEnabled)
	if err != nil {
		panic(err)
	}
	cfg.SyncEnabled = enabled
}
