package config

import (
	"flag"
	"os"
	"time"

	"github.com/tealrobotco/drivefetch/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-n string   name of the file to download
//	-k string   base64-encoded service account credentials JSON
//	-f string   container id (Drive folder id, or bucket[/prefix] for S3)
//	-o string   output path for the downloaded file
//	-m int      maximum number of search attempts
//	-r int      delay between attempts, seconds
//	-v          verbose output
//	-b string   storage backend: drive or s3
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-u string   S3 access key
//	-p string   S3 secret key
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components. Flag defaults are the current Config values, so flags left
// unset keep whatever JSON or the environment provided.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-n", "-k", "-f", "-o", "-m", "-r", "-v", "-b", "-g", "-e", "-u", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.FileName, "n", cfg.FileName, "name of the file to download")
	fs.StringVar(&cfg.CredentialsBase64, "k", cfg.CredentialsBase64, "base64-encoded service account credentials")
	fs.StringVar(&cfg.ContainerID, "f", cfg.ContainerID, "container (folder/bucket) id to search in")
	fs.StringVar(&cfg.OutputPath, "o", cfg.OutputPath, "output path for the downloaded file")
	maxAttempts := fs.Int("m", cfg.MaxAttempts, "maximum number of attempts")
	retryDelay := fs.Int("r", int(cfg.RetryDelay.Seconds()), "delay between attempts (in seconds)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "enable verbose output")
	backend := fs.String("b", string(cfg.Backend), "storage backend (drive or s3)")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.MaxAttempts = *maxAttempts
	cfg.RetryDelay = time.Duration(*retryDelay) * time.Second
	cfg.Backend = Backend(*backend)
}
