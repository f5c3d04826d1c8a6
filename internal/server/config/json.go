package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/flagx"
	"github.com/dmitrijs2005/nutrisync/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// use timex.Duration, so both "1m" and integer nanoseconds are accepted.
// Fields left out of the file keep the values already in Config.
type JsonConfig struct {
	EndpointAddrGRPC             string          `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string          `json:"database_dsn"`
	SecretKey                    string          `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	AdminKey                     string          `json:"admin_key"`
	PayloadOffloadBytes          *int64          `json:"payload_offload_bytes"`
	PullPageBytes                *int64          `json:"pull_page_bytes"`
	S3RootUser                   string          `json:"s3_root_user"`
	S3RootPassword               string          `json:"s3_root_password"`
	S3Bucket                     string          `json:"s3_bucket"`
	S3Region                     string          `json:"s3_region"`
	S3BaseEndpoint               string          `json:"s3_base_endpoint"`
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson loads configuration values from the file named by -c or
// -config. Without the flag nothing is loaded. Read and unmarshal errors
// panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	}
	overlay(&config.AdminKey, c.AdminKey)
	if c.PayloadOffloadBytes != nil {
		config.PayloadOffloadBytes = *c.PayloadOffloadBytes
	}
	if c.PullPageBytes != nil {
		config.PullPageBytes = *c.PullPageBytes
	}
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}
