// Package config loads service settings for the serve and batch commands.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gnzgo/MartianRobots/sim/trace"
)

// Config holds the complete service configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Batch  BatchConfig  `koanf:"batch"`
	Log    LogConfig    `koanf:"log"`
	Trace  TraceConfig  `koanf:"trace"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	BodyLimit       string        `koanf:"body_limit"` // echo size notation, e.g. "64K"
	RateLimit       float64       `koanf:"rate_limit"` // requests per second per client; 0 disables
	Burst           int           `koanf:"burst"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// BatchConfig holds batch processor configuration.
type BatchConfig struct {
	Workers      int           `koanf:"workers"`
	Pattern      string        `koanf:"pattern"`
	OutputSuffix string        `koanf:"output_suffix"`
	Settle       time.Duration `koanf:"settle"` // quiet period before a watched file is processed
}

// LogConfig holds the logrus level name.
type LogConfig struct {
	Level string `koanf:"level"`
}

// TraceConfig holds the step trace level.
type TraceConfig struct {
	Level string `koanf:"level"`
}

// Validate rejects values the services cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port))
	}
	if c.Server.BodyLimit == "" {
		errs = append(errs, errors.New("server.body_limit cannot be empty"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit cannot be negative, got %g", c.Server.RateLimit))
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		errs = append(errs, fmt.Errorf("server.burst must be at least 1 when rate limiting, got %d", c.Server.Burst))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout))
	}
	if c.Batch.Workers < 1 {
		errs = append(errs, fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers))
	}
	if _, err := filepath.Match(c.Batch.Pattern, ""); err != nil || c.Batch.Pattern == "" {
		errs = append(errs, fmt.Errorf("batch.pattern %q is not a valid glob", c.Batch.Pattern))
	}
	if c.Batch.OutputSuffix == "" {
		errs = append(errs, errors.New("batch.output_suffix cannot be empty"))
	}
	if c.Batch.Settle <= 0 {
		errs = append(errs, fmt.Errorf("batch.settle must be positive, got %s", c.Batch.Settle))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if !trace.IsValidTraceLevel(c.Trace.Level) {
		errs = append(errs, fmt.Errorf("trace.level %q must be one of none, steps", c.Trace.Level))
	}
	return errors.Join(errs...)
}
