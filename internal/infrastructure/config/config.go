package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// Config is the whole service configuration, read from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// CredentialTempDir is where signers that need files get their staged FIEL copies.
	CredentialTempDir string `env:"CREDENTIAL_TEMP_DIR"`

	AWS       AWSConfig
	Dynamo    DynamoConfig
	Storage   StorageConfig
	Vault     VaultConfig
	Gateway   GatewayConfig
	Retriever RetrieverConfig
	Poll      PollConfig
}

// AWSConfig is local-friendly: DynamoDB Local and MinIO ignore the static credentials.
type AWSConfig struct {
	Region           string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID      string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey  string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`
	S3Endpoint       string `env:"S3_ENDPOINT"`
}

type DynamoConfig struct {
	SnapshotTable    string `env:"DYNAMODB_SNAPSHOTS_TABLE" envDefault:"lifecycle_snapshots"`
	SecretTable      string `env:"DYNAMODB_SECRETS_TABLE" envDefault:"lifecycle_secrets"`
	RequestIDIndex   string `env:"DYNAMODB_REQUEST_ID_INDEX" envDefault:"request_id-index"`
	LifecycleIDIndex string `env:"DYNAMODB_LIFECYCLE_ID_INDEX" envDefault:"lifecycle_id-index"`
}

const (
	StorageBackendFS = "fs"
	StorageBackendS3 = "s3"
)

type StorageConfig struct {
	Backend  string `env:"PACKAGE_STORAGE" envDefault:"fs"`
	Dir      string `env:"DOWNLOAD_DIR" envDefault:"downloads"`
	Bucket   string `env:"S3_BUCKET"`
	Prefix   string `env:"S3_PREFIX" envDefault:"downloads"`
	MaxBytes int64  `env:"PACKAGE_MAX_BYTES" envDefault:"536870912"`
}

// VaultConfig holds the base64 AES-256 key that seals stored credentials.
type VaultConfig struct {
	Key string `env:"VAULT_KEY"`
}

type GatewayConfig struct {
	Mock           bool          `env:"SAT_GATEWAY_MOCK" envDefault:"false"`
	MockPolls      int           `env:"SAT_MOCK_POLLS" envDefault:"2"`
	MockPackages   int           `env:"SAT_MOCK_PACKAGES" envDefault:"2"`
	BridgeURL      string        `env:"SAT_BRIDGE_URL"`
	BridgeTimeout  time.Duration `env:"SAT_BRIDGE_TIMEOUT" envDefault:"60s"`
	BridgeRetryMax int           `env:"SAT_BRIDGE_RETRY_MAX" envDefault:"3"`
}

type RetrieverConfig struct {
	Concurrency int `env:"RETRIEVER_CONCURRENCY" envDefault:"4"`
}

// PollConfig is the exponential backoff used while waiting for a request to finish.
type PollConfig struct {
	InitialInterval time.Duration `env:"POLL_INITIAL_INTERVAL" envDefault:"5s"`
	MaxInterval     time.Duration `env:"POLL_MAX_INTERVAL" envDefault:"1m"`
	MaxElapsed      time.Duration `env:"POLL_MAX_ELAPSED" envDefault:"10m"`
}

// Load parses the environment and checks cross-field requirements.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageBackendFS:
		if c.Storage.Dir == "" {
			return errors.New("DOWNLOAD_DIR is required for the fs package storage")
		}
	case StorageBackendS3:
		if c.Storage.Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 package storage")
		}
	default:
		return errors.Newf("unknown PACKAGE_STORAGE %q", c.Storage.Backend)
	}
	if !c.Gateway.Mock && c.Gateway.BridgeURL == "" {
		return errors.New("SAT_BRIDGE_URL is required unless SAT_GATEWAY_MOCK=true")
	}
	if c.Retriever.Concurrency < 1 {
		return errors.Newf("RETRIEVER_CONCURRENCY must be positive, got %d", c.Retriever.Concurrency)
	}
	return nil
}
