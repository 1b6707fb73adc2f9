// Package config loads the server configuration: defaults, then an optional
// YAML file, then command-line flags.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorageBadger   = "badger"
	StoragePostgres = "postgres"

	MediaBadger = "badger"
	MediaS3     = "s3"
)

// DefaultSecretKey is the placeholder signing key. It is public, so the
// server never signs sessions with it.
const DefaultSecretKey = "change-me"

type Config struct {
	Addr string `yaml:"addr"`

	Storage     string `yaml:"storage"`
	BadgerPath  string `yaml:"badger_path"`
	DatabaseDSN string `yaml:"database_dsn"`

	Media          string `yaml:"media"`
	S3Bucket       string `yaml:"s3_bucket"`
	S3Region       string `yaml:"s3_region"`
	S3BaseEndpoint string `yaml:"s3_base_endpoint"`
	S3AccessKey    string `yaml:"s3_access_key"`
	S3SecretKey    string `yaml:"s3_secret_key"`

	SecretKey  string        `yaml:"secret_key"`
	SessionTTL time.Duration `yaml:"session_ttl"`

	PageSize     int           `yaml:"page_size"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	CacheMaxCost int64         `yaml:"cache_max_cost"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func LoadDefaults() *Config {
	return &Config{
		Addr:         ":8080",
		Storage:      StorageBadger,
		BadgerPath:   "data/badger",
		Media:        MediaBadger,
		S3Region:     "us-east-1",
		SecretKey:    DefaultSecretKey,
		SessionTTL:   24 * time.Hour,
		PageSize:     10,
		CacheMaxCost: 64 << 20,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// LoadYAML overlays the settings found in r onto c.
func (c *Config) LoadYAML(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return c.LoadYAML(f)
}

// Load builds the configuration from defaults, the file named by -c/-config
// and the remaining flags. Flags win over the file. extra registers
// command-specific flags on the same set.
func Load(name string, args []string, output io.Writer, extra ...func(*flag.FlagSet)) (*Config, error) {
	cfg := LoadDefaults()

	// The file is read first so explicit flags can override it.
	path := configPath(args)
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.String("c", path, "path to YAML config file")
	fs.String("config", path, "path to YAML config file")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend: badger or postgres")
	fs.StringVar(&cfg.BadgerPath, "badger-path", cfg.BadgerPath, "badger data directory")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "postgres DSN")
	fs.StringVar(&cfg.Media, "media", cfg.Media, "media backend: badger or s3")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket for uploads")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "s3-endpoint", cfg.S3BaseEndpoint, "S3 endpoint, e.g. a MinIO URL")
	fs.StringVar(&cfg.S3AccessKey, "s3-access-key", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "s3-secret-key", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.SecretKey, "secret", cfg.SecretKey, "session signing key")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "session lifetime")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "posts per page")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "index page cache TTL, 0 keeps entries until cleared")
	fs.Int64Var(&cfg.CacheMaxCost, "cache-max-cost", cfg.CacheMaxCost, "index page cache size in bytes")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	for _, register := range extra {
		register(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageBadger:
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("postgres storage requires a DSN")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}

	switch c.Media {
	case MediaBadger:
		if c.Storage != StorageBadger {
			return errors.New("badger media requires badger storage")
		}
	case MediaS3:
		if c.S3Bucket == "" {
			return errors.New("s3 media requires a bucket")
		}
	default:
		return fmt.Errorf("unknown media backend %q", c.Media)
	}

	if c.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.SecretKey == "" {
		return errors.New("secret key must not be empty")
	}
	return nil
}

// EnsureSecret swaps the placeholder signing key for a random one and
// reports whether it did. Sessions signed with a generated key do not
// survive a restart.
func (c *Config) EnsureSecret() (bool, error) {
	if c.SecretKey != DefaultSecretKey {
		return false, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return false, fmt.Errorf("failed to generate secret key: %w", err)
	}
	c.SecretKey = hex.EncodeToString(buf)
	return true, nil
}

// configPath finds the value of -c or -config without parsing the other flags.
func configPath(args []string) string {
	for i, a := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || (name != "c" && name != "config") {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
