package config

import "time"

// EnvSyncEnabled toggles remote sync for the client process.
const EnvSyncEnabled = "NUTRISYNC_SYNC_ENABLED"

// Config holds runtime settings for the NutriSync CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client checks server reachability.
//   - SyncInterval: period of background sync passes; 0 disables the timer.
//   - SyncEnabled: when false the app never talks to the backend.
//   - DatabasePath: local SQLite file.
//   - LogFile: rotating JSON log file; kept off the terminal.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	SyncInterval        time.Duration
	SyncEnabled         bool
	DatabasePath        string
	LogFile             string
	Debug               bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.SyncInterval = 60 * time.Second
	c.SyncEnabled = true
	c.DatabasePath = "nutrisync.db"
	c.LogFile = "nutrisync.log"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
