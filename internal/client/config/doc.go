// Package config loads runtime configuration for the NutriSync CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: NUTRISYNC_SYNC_ENABLED.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-s int      background sync interval (seconds), 0 disables it
//	-d string   local SQLite database file
//	-l string   log file
//	-sync bool  enable remote sync
//	-debug      debug logging
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "sync_interval": "1m",
//	  "sync_enabled": true,
//	  "database_path": "nutrisync.db",
//	  "log_file": "nutrisync.log"
//	}
//
// With sync disabled the client works purely offline against the local
// database and never dials the backend.
package config
