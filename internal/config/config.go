package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Solana   SolanaConfig
	Storage  StorageConfig
	Custody  CustodyConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// AuthConfig holds identity provider and session configuration
type AuthConfig struct {
	ProviderIssuer       string
	ProviderJWKSURL      string
	JWTSecret            string
	AccessExpiry         time.Duration
	RefreshExpiry        time.Duration
	SessionEncryptionKey string
}

// SolanaConfig holds Solana cluster and workflow policy configuration
type SolanaConfig struct {
	RPCURL              string
	Cluster             string
	AirdropLamports     uint64
	AirdropAttempts     int
	MintAttempts        int
	MintBackoffBase     time.Duration
	ConfirmTimeout      time.Duration
	BalancePollInterval time.Duration
}

// StorageConfig holds off-chain content storage configuration
type StorageConfig struct {
	Backend string // "github" or "s3"
	GitHub  GitHubStorageConfig
	S3      S3StorageConfig
}

// GitHubStorageConfig holds GitHub contents API configuration
type GitHubStorageConfig struct {
	Owner  string
	Repo   string
	Branch string
	Token  string
}

// S3StorageConfig holds S3-compatible object storage configuration
type S3StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	CDNBaseURL      string
}

// CustodyConfig holds embedded-wallet keystore configuration
type CustodyConfig struct {
	KeystoreSecret string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "suburbia"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Auth: AuthConfig{
			ProviderIssuer:       getEnv("AUTH_PROVIDER_ISSUER", "https://auth.civic.com/oauth"),
			ProviderJWKSURL:      getEnv("AUTH_PROVIDER_JWKS_URL", "https://auth.civic.com/oauth/jwks"),
			JWTSecret:            getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:         getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry:        getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
		},
		Solana: SolanaConfig{
			RPCURL:              getEnv("SOLANA_RPC_URL", "https://api.devnet.solana.com"),
			Cluster:             getEnv("SOLANA_CLUSTER", "devnet"),
			AirdropLamports:     getEnvAsUint64("SOLANA_AIRDROP_LAMPORTS", 1_000_000_000), // 1 SOL
			AirdropAttempts:     getEnvAsInt("SOLANA_AIRDROP_ATTEMPTS", 3),
			MintAttempts:        getEnvAsInt("SOLANA_MINT_ATTEMPTS", 3),
			MintBackoffBase:     getEnvAsDuration("SOLANA_MINT_BACKOFF_BASE", 500*time.Millisecond),
			ConfirmTimeout:      getEnvAsDuration("SOLANA_CONFIRM_TIMEOUT", 90*time.Second),
			BalancePollInterval: getEnvAsDuration("SOLANA_BALANCE_POLL_INTERVAL", 10*time.Second),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "github"),
			GitHub: GitHubStorageConfig{
				Owner:  getEnv("GITHUB_STORAGE_OWNER", ""),
				Repo:   getEnv("GITHUB_STORAGE_REPO", "suburbia-skate-board-asset"),
				Branch: getEnv("GITHUB_STORAGE_BRANCH", "main"),
				Token:  getEnv("GITHUB_TOKEN", ""),
			},
			S3: S3StorageConfig{
				Bucket:          getEnv("S3_BUCKET_NAME", ""),
				Region:          getEnv("S3_REGION", "auto"),
				Endpoint:        getEnv("S3_ENDPOINT", ""),
				AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
				AccessKeySecret: getEnv("S3_ACCESS_KEY_SECRET", ""),
				CDNBaseURL:      getEnv("CDN_BASE_URL", ""),
			},
		},
		Custody: CustodyConfig{
			KeystoreSecret: getEnv("CUSTODY_KEYSTORE_SECRET", "change-this-in-production"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseUint(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
