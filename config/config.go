// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/trace"
)

var (
	ErrInvalidCores    = errors.New("authVerificationCores must be positive")
	ErrInvalidLockSize = errors.New("stateLockMapSize must not be negative")
)

type Config struct {
	LogLevel     string `json:"logLevel"`
	LogDirectory string `json:"logDirectory"` // no file logging when empty
	LogMaxSize   int    `json:"logMaxSize"`   // megabytes
	LogMaxFiles  int    `json:"logMaxFiles"`
	LogMaxAge    int    `json:"logMaxAge"` // days
	LogCompress  bool   `json:"logCompress"`

	TraceConfig   trace.Config  `json:"traceConfig"`
	StorageConfig pebble.Config `json:"storageConfig"`

	AuthVerificationCores int           `json:"authVerificationCores"`
	StateLockMapSize      int           `json:"stateLockMapSize"`
	CounterCacheTTL       time.Duration `json:"counterCacheTTL"`
	CounterCacheCleanup   time.Duration `json:"counterCacheCleanup"`
}

func NewConfig() Config {
	return Config{
		LogLevel:    logging.Info.String(),
		LogMaxSize:  8,
		LogMaxFiles: 5,
		LogMaxAge:   30,

		TraceConfig:   trace.Config{Enabled: false},
		StorageConfig: pebble.NewDefaultConfig(),

		AuthVerificationCores: 1,
		StateLockMapSize:      1_024,
		CounterCacheTTL:       30 * time.Second,
		CounterCacheCleanup:   time.Minute,
	}
}

// Parse overlays [b] on the defaults of [NewConfig].
func Parse(b []byte) (Config, error) {
	c := NewConfig()
	if len(b) > 0 {
		if err := json.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	return c, c.Verify()
}

// Load reads the JSON config at [path].
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

func (c *Config) Verify() error {
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return err
	}
	if c.AuthVerificationCores <= 0 {
		return ErrInvalidCores
	}
	if c.StateLockMapSize < 0 {
		return ErrInvalidLockSize
	}
	return nil
}
