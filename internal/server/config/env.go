package config

import "github.com/dmitrijs2005/nutrisync/internal/flagx"

// parseEnv lets deployments pass secrets without putting them on the
// command line.
func parseEnv(cfg *Config) {
	cfg.DatabaseDSN = flagx.StringEnv(EnvDatabaseDSN, cfg.DatabaseDSN)
	cfg.SecretKey = flagx.StringEnv(EnvSecretKey, cfg.SecretKey)
	cfg.AdminKey = flagx.StringEnv(EnvAdminKey, cfg.AdminKey)
}
