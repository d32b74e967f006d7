// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables, and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string

	// RedisAddr is the address of the redis side cache. Empty means the
	// in-memory fallback cache is used.
	RedisAddr string

	// JWTSecret signs and verifies access tokens.
	JWTSecret string

	// TokenTTL is the access-token lifetime.
	TokenTTL time.Duration

	// CacheTTL is the time-to-live for side-cache entries.
	CacheTTL time.Duration

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{
	TokenTTL: time.Hour,
	CacheTTL: 300 * time.Second,
}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "postgres dsn")
	flag.StringVar(&options.RedisAddr, "r", "", "redis address")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// loadDotenv loads the first .env file found near the working directory.
func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
			return
		}
	}
}

// Parse parses the command-line flags, the optional config file, and
// environment variables to set configuration values. It returns a pointer
// to the Options struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()
	loadDotenv()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		options.RedisAddr = redisAddr
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
