package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string
	LogLevel string

	PostgresDSN string
	SQLitePath  string

	AdminAPIKey string

	ArtifactsRoot    string
	LocalRepoPath    string
	ToolchainVersion string

	RemoteRepoID             string
	RemoteRepoURL            string
	RemoteRepoUniqueVersions bool
	RemoteRepoUsername       string
	RemoteRepoPassword       string

	SigningKeyPath       string
	SigningKeyPassphrase string

	PolicyBundlePath string

	RateLimitRequests      int
	RateLimitWindowSeconds int
	RateLimitFailClosed    bool
	RateLimitMaxKeys       int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:                 addr,
		LogLevel:                 envDefault("LOG_LEVEL", "info"),
		PostgresDSN:              os.Getenv("POSTGRES_DSN"),
		SQLitePath:               os.Getenv("SQLITE_PATH"),
		AdminAPIKey:              os.Getenv("ADMIN_API_KEY"),
		ArtifactsRoot:            envDefault("ARTIFACTS_ROOT", "builds"),
		LocalRepoPath:            envDefault("LOCAL_REPO_PATH", "local-repo"),
		ToolchainVersion:         envDefault("TOOLCHAIN_VERSION", "3.9.6"),
		RemoteRepoID:             os.Getenv("REMOTE_REPO_ID"),
		RemoteRepoURL:            os.Getenv("REMOTE_REPO_URL"),
		RemoteRepoUniqueVersions: envBoolDefault("REMOTE_REPO_UNIQUE_VERSIONS", true),
		RemoteRepoUsername:       os.Getenv("REMOTE_REPO_USERNAME"),
		RemoteRepoPassword:       os.Getenv("REMOTE_REPO_PASSWORD"),
		SigningKeyPath:           os.Getenv("SIGNING_KEY_PATH"),
		SigningKeyPassphrase:     os.Getenv("SIGNING_KEY_PASSPHRASE"),
		PolicyBundlePath:         os.Getenv("POLICY_BUNDLE_PATH"),
		RateLimitRequests:        envIntDefault("RATE_LIMIT_REQUESTS", 0),
		RateLimitWindowSeconds:   envIntDefault("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitFailClosed:      envBoolDefault("RATE_LIMIT_FAIL_CLOSED", false),
		RateLimitMaxKeys:         envIntDefault("RATE_LIMIT_MAX_KEYS", 10000),
		RedisAddr:                os.Getenv("REDIS_ADDR"),
		RedisPassword:            os.Getenv("REDIS_PASSWORD"),
		RedisDB:                  envIntDefault("REDIS_DB", 0),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func envBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "No":
		return false
	default:
		return def
	}
}

func (c Config) RateLimitWindow() time.Duration {
	if c.RateLimitWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}
