package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tealrobotco/drivefetch/internal/common"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, 3, c.MaxAttempts)
	assert.Equal(t, 5*time.Second, c.RetryDelay)
	assert.Equal(t, BackendDrive, c.Backend)
	assert.Equal(t, 1<<20, c.ChunkSize)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.False(t, c.Verbose)
}

func TestLoadConfig_OutputPathDefaultsToFileName(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-n", "artifact.zip"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "artifact.zip", cfg.FileName)
	assert.Equal(t, "artifact.zip", cfg.OutputPath)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			FileName:          "artifact.zip",
			CredentialsBase64: "Zm9v",
			ContainerID:       "FLD1",
			MaxAttempts:       3,
			Backend:           BackendDrive,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "ok drive", mutate: func(c *Config) {}},
		{name: "ok s3 without credentials", mutate: func(c *Config) {
			c.Backend = BackendS3
			c.CredentialsBase64 = ""
		}},
		{name: "missing filename", mutate: func(c *Config) { c.FileName = "" }, wantErr: common.ErrMissingFileName},
		{name: "missing container", mutate: func(c *Config) { c.ContainerID = "" }, wantErr: common.ErrMissingContainer},
		{name: "missing drive credentials", mutate: func(c *Config) { c.CredentialsBase64 = "" }, wantErr: common.ErrMissingCredentials},
		{name: "zero attempts", mutate: func(c *Config) { c.MaxAttempts = 0 }, wantErr: common.ErrInvalidAttempts},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "ftp" }, wantErr: common.ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
