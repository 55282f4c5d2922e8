// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	require := require.New(t)

	c, err := Parse(nil)
	require.NoError(err)
	require.Equal(NewConfig(), c)
}

func TestParseOverrides(t *testing.T) {
	require := require.New(t)

	c, err := Parse([]byte(`{"logLevel":"debug","authVerificationCores":4,"counterCacheTTL":1000000000}`))
	require.NoError(err)
	require.Equal("debug", c.LogLevel)
	require.Equal(4, c.AuthVerificationCores)
	require.Equal(time.Second, c.CounterCacheTTL)
	require.Equal(NewConfig().StateLockMapSize, c.StateLockMapSize)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		b    string
		err  error
	}{
		{name: "cores", b: `{"authVerificationCores":0}`, err: ErrInvalidCores},
		{name: "lock map", b: `{"stateLockMapSize":-1}`, err: ErrInvalidLockSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.b))
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Parse([]byte(`{"logLevel":"loud"}`))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	c := NewConfig()
	c.LogDirectory = dir
	f, err := os.CreateTemp(dir, "console")
	require.NoError(err)

	log, err := c.NewLogger("countervm", f)
	require.NoError(err)
	log.Info("hello")
	log.Stop()

	require.FileExists(filepath.Join(dir, "countervm.log"))
}

func TestLoad(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(path, []byte(`{"stateLockMapSize":8}`), 0o600))
	c, err := Load(path)
	require.NoError(err)
	require.Equal(8, c.StateLockMapSize)
}
