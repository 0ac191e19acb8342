package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/reg-hunter/pkg/stringsutil"
)

const (
	defaultPort      = "8080"
	defaultBodyLimit = "32M"
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	// BodyLimit caps request bodies, in echo's size notation (e.g. "32M").
	// Submissions above the blob threshold still have to fit.
	BodyLimit       string
	ShutdownTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := stringsutil.RemoveEmptyStrings(splitTrim(os.Getenv("CORS_ORIGINS")))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	bodyLimit := os.Getenv("BODY_LIMIT")
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	shutdown := GracefulShutdownTimeout
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT value: %q", v)
		}
		shutdown = d
	}

	return &Config{
		Port:            port,
		UseHttp2:        os.Getenv("USE_HTTP2") == "true",
		CorsOrigins:     origins,
		BodyLimit:       bodyLimit,
		ShutdownTimeout: shutdown,
	}, nil
}

func splitTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
