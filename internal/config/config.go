// Package config handles configuration for the drivefetch CLI, including
// defaults, JSON overlay, environment fallbacks, and command-line flags.
package config

import (
	"time"

	"github.com/tealrobotco/drivefetch/internal/common"
)

// Backend selects the file-index implementation.
type Backend string

const (
	BackendDrive Backend = "drive"
	BackendS3    Backend = "s3"
)

// Config holds runtime settings for a single drivefetch invocation.
//
// Fields:
//   - FileName: exact name of the file to locate and download.
//   - CredentialsBase64: base64-encoded service-account JSON (Drive backend).
//   - ContainerID: Drive folder id, or "bucket[/prefix]" for S3.
//   - OutputPath: local destination; defaults to FileName in the working dir.
//   - MaxAttempts / RetryDelay: search retry budget and fixed backoff.
//   - Verbose: enables debug logging and container listings on a miss.
//   - Backend: "drive" (default) or "s3".
//   - ChunkSize: download read size in bytes.
//   - S3Region / S3AccessKey / S3SecretKey / S3BaseEndpoint: S3 settings;
//     the endpoint override targets MinIO-style deployments.
type Config struct {
	FileName          string
	CredentialsBase64 string
	ContainerID       string
	OutputPath        string
	MaxAttempts       int
	RetryDelay        time.Duration
	Verbose           bool
	Backend           Backend
	ChunkSize         int
	S3Region          string
	S3AccessKey       string
	S3SecretKey       string
	S3BaseEndpoint    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.MaxAttempts = 3
	c.RetryDelay = 5 * time.Second
	c.Backend = BackendDrive
	c.ChunkSize = 1 << 20
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)

	if cfg.OutputPath == "" {
		cfg.OutputPath = cfg.FileName
	}
	return cfg
}

// Validate checks the required settings. The returned sentinels are fatal:
// the caller surfaces them immediately, no retry applies.
func (c *Config) Validate() error {
	if c.FileName == "" {
		return common.ErrMissingFileName
	}
	if c.ContainerID == "" {
		return common.ErrMissingContainer
	}
	if c.MaxAttempts < 1 {
		return common.ErrInvalidAttempts
	}

	switch c.Backend {
	case BackendDrive:
		if c.CredentialsBase64 == "" {
			return common.ErrMissingCredentials
		}
	case BackendS3:
		// Anonymous access is valid for public buckets and MinIO test
		// setups, so credentials are not required here.
	default:
		return common.ErrUnknownBackend
	}
	return nil
}
