package config

import (
	"encoding/json"
	"os"

	"github.com/tealrobotco/drivefetch/internal/flagx"
	"github.com/tealrobotco/drivefetch/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the retry delay either as a string
// like "5s" or as integer nanoseconds. After parsing, set values are
// copied into the runtime Config.
type JsonConfig struct {
	FileName          string         `json:"filename"`
	CredentialsBase64 string         `json:"credentials_base64"`
	ContainerID       string         `json:"container_id"`
	OutputPath        string         `json:"output_path"`
	MaxAttempts       int            `json:"max_attempts"`
	RetryDelay        timex.Duration `json:"retry_delay"`
	Verbose           *bool          `json:"verbose"`
	Backend           string         `json:"backend"`
	ChunkSize         int            `json:"chunk_size"`
	S3Region          string         `json:"s3_region"`
	S3AccessKey       string         `json:"s3_access_key"`
	S3SecretKey       string         `json:"s3_secret_key"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present in the file override the defaults; read or
// unmarshal errors panic (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	applyJson(cfg, &jc)
}

func applyJson(cfg *Config, jc *JsonConfig) {
	if jc.FileName != "" {
		cfg.FileName = jc.FileName
	}
	if jc.CredentialsBase64 != "" {
		cfg.CredentialsBase64 = jc.CredentialsBase64
	}
	if jc.ContainerID != "" {
		cfg.ContainerID = jc.ContainerID
	}
	if jc.OutputPath != "" {
		cfg.OutputPath = jc.OutputPath
	}
	if jc.MaxAttempts != 0 {
		cfg.MaxAttempts = jc.MaxAttempts
	}
	if jc.RetryDelay.Duration != 0 {
		cfg.RetryDelay = jc.RetryDelay.Duration
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
	if jc.Backend != "" {
		cfg.Backend = Backend(jc.Backend)
	}
	if jc.ChunkSize != 0 {
		cfg.ChunkSize = jc.ChunkSize
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
}
