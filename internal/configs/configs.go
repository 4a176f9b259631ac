/*
Package configs is responsible for loading and parsing the application's configuration settings.

The chat server takes its TCP port as a positional command-line argument
(`server <port>`); everything else — logging, the optional admin HTTP
surface, CORS, the optional Postgres event archive, the optional S3 log
archival, and the per-IP connect rate limit — is configured through
environment variables.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// Environment defines the application's operating environment (e.g., "development", "production").
	Environment string

	// Port is the TCP port the chat listener binds to. Required, 0 < Port <= 10000.
	Port int

	// LogPath is the file the exact-format protocol log is appended to.
	LogPath string

	// AdminAddr is the listen address for the optional admin HTTP+WebSocket surface.
	// Empty disables the admin surface entirely.
	AdminAddr string

	// AdminSecret signs and validates admin bearer tokens. Empty disables
	// token checking on the admin surface (suitable only for local development).
	AdminSecret string

	// AllowedOrigins is the list of origins permitted for CORS on the admin surface.
	AllowedOrigins []string

	// DatabaseDSN is the optional Postgres DSN for the event archive. Empty disables it.
	DatabaseDSN string

	// S3Bucket, S3Endpoint, S3Region, S3AccessKeyID, S3SecretAccessKey configure the
	// optional log archival sink. S3Bucket empty disables it.
	S3Bucket          string
	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// ConnectRate and ConnectBurst parameterize the per-IP token bucket guarding the
	// chat listener's accept loop.
	ConnectRate  rate.Limit
	ConnectBurst int
}

// LoadConfig reads the TCP port from args (expected to be os.Args[1:]) and the rest of
// the configuration from environment variables, applying defaults and validation.
func LoadConfig(args []string) (*AppConfig, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("usage: server <port>")
	}

	port, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", args[0], err)
	}
	if port <= 0 || port > 10000 {
		return nil, fmt.Errorf("port %d outside allowed range (1-10000)", port)
	}

	cfg := &AppConfig{Port: port}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.LogPath = os.Getenv("LOG_PATH")
	if cfg.LogPath == "" {
		cfg.LogPath = "server.log"
	}

	cfg.AdminAddr = os.Getenv("ADMIN_ADDR")
	cfg.AdminSecret = os.Getenv("ADMIN_SECRET")

	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")
	cfg.S3Bucket = os.Getenv("S3_BUCKET")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3Region = os.Getenv("S3_REGION")
	cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")

	rateStr := os.Getenv("CONNECT_RATE")
	if rateStr == "" {
		rateStr = "5"
	}
	rateVal, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CONNECT_RATE environment variable: %w", err)
	}
	cfg.ConnectRate = rate.Limit(rateVal)

	burstStr := os.Getenv("CONNECT_BURST")
	if burstStr == "" {
		burstStr = "10"
	}
	burst, err := strconv.Atoi(burstStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CONNECT_BURST environment variable: %w", err)
	}
	cfg.ConnectBurst = burst

	return cfg, nil
}
