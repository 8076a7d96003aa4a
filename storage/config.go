package storage

import (
	"errors"
	"fmt"
)

// Backend constants for supported storage backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Default configuration values.
const (
	DefaultBackend  = BackendLocal
	DefaultBasePath = "/tmp/lucidscript"
	DefaultRegion   = "us-east-1"
)

// Config holds storage configuration for whichever backend is selected.
type Config struct {
	// Backend selects the storage backend: "local" or "s3".
	Backend string `mapstructure:"backend" json:"backend"`

	// BasePath is the root directory for local storage.
	BasePath string `mapstructure:"base_path" json:"base_path"`

	// Bucket is the S3 bucket name.
	Bucket string `mapstructure:"bucket" json:"bucket"`

	// Region is the AWS region for S3.
	Region string `mapstructure:"region" json:"region"`

	// Endpoint is a custom S3-compatible endpoint (e.g. MinIO).
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`

	// AccessKey is the AWS access key ID.
	AccessKey string `mapstructure:"access_key" json:"access_key"`

	// SecretKey is the AWS secret access key.
	SecretKey string `mapstructure:"secret_key" json:"secret_key"`

	// ForcePathStyle forces path-style URLs instead of virtual-hosted-style.
	ForcePathStyle bool `mapstructure:"force_path_style" json:"force_path_style"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

// Validate checks that the configuration is valid for the selected backend.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		if c.BasePath == "" {
			return errors.New("storage: base_path is required for local backend")
		}
	case BackendS3:
		var errs []error
		if c.Bucket == "" {
			errs = append(errs, errors.New("storage: bucket is required for s3 backend"))
		}
		if c.Region == "" {
			errs = append(errs, errors.New("storage: region is required for s3 backend"))
		}
		if len(errs) > 0 {
			return fmt.Errorf("storage: invalid s3 config: %w", errors.Join(errs...))
		}
	default:
		return fmt.Errorf("storage: unsupported backend %q", c.Backend)
	}
	return nil
}
