package config

import (
	"fmt"
	"os"
)

// S3Config locates the bucket exported resumes are uploaded to. Endpoint is
// set for S3-compatible stores such as R2 or MinIO.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// NewS3Config reads the EXPORT_S3_* variables. It returns nil without error
// when EXPORT_S3_BUCKET is unset.
func NewS3Config() (*S3Config, error) {
	bucket := os.Getenv("EXPORT_S3_BUCKET")
	if bucket == "" {
		return nil, nil
	}

	cfg := &S3Config{
		Bucket:    bucket,
		Region:    os.Getenv("EXPORT_S3_REGION"),
		Endpoint:  os.Getenv("EXPORT_S3_ENDPOINT"),
		AccessKey: os.Getenv("EXPORT_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("EXPORT_S3_SECRET_KEY"),
		Prefix:    os.Getenv("EXPORT_S3_PREFIX"),
	}
	if cfg.Region == "" {
		cfg.Region = "auto"
	}
	if (cfg.AccessKey == "") != (cfg.SecretKey == "") {
		return nil, fmt.Errorf("EXPORT_S3_ACCESS_KEY and EXPORT_S3_SECRET_KEY must be set together")
	}
	return cfg, nil
}

// StaticCredentials reports whether explicit keys were configured instead of
// the default AWS credential chain.
func (c *S3Config) StaticCredentials() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

// DatabaseURLFromEnv returns DATABASE_URL, falling back to fallback.
func DatabaseURLFromEnv(fallback string) string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	return fallback
}
