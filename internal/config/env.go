package config

import "os"

// Environment variables honored as fallbacks when the corresponding flags
// are absent. The DRIVE_* names match what CI pipelines already export for
// the upload side.
const (
	EnvCredentials = "DRIVE_CREDENTIALS"
	EnvFolderID    = "DRIVE_FOLDER_ID"
	EnvS3Region    = "DRIVEFETCH_S3_REGION"
	EnvS3Endpoint  = "DRIVEFETCH_S3_ENDPOINT"
	EnvS3AccessKey = "DRIVEFETCH_S3_ACCESS_KEY"
	EnvS3SecretKey = "DRIVEFETCH_S3_SECRET_KEY"
)

// parseEnv overlays Config with values from the process environment.
// Runs after the JSON overlay and before flags, so explicit flags win.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvCredentials); ok {
		cfg.CredentialsBase64 = v
	}
	if v, ok := os.LookupEnv(EnvFolderID); ok {
		cfg.ContainerID = v
	}
	if v, ok := os.LookupEnv(EnvS3Region); ok {
		cfg.S3Region = v
	}
	if v, ok := os.LookupEnv(EnvS3Endpoint); ok {
		cfg.S3BaseEndpoint = v
	}
	if v, ok := os.LookupEnv(EnvS3AccessKey); ok {
		cfg.S3AccessKey = v
	}
	if v, ok := os.LookupEnv(EnvS3SecretKey); ok {
		cfg.S3SecretKey = v
	}
}
