// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"io"
	"os"
	"path"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger writes to [w] and, when [Config.LogDirectory] is set, to a
// rotating file named after [name].
func (c *Config) NewLogger(name string, w io.WriteCloser) (logging.Logger, error) {
	level, err := logging.ToLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(level, w, logging.Colors.ConsoleEncoder()),
	}
	if c.LogDirectory != "" {
		rw := &lumberjack.Logger{
			Filename:   path.Join(c.LogDirectory, name+".log"),
			MaxSize:    c.LogMaxSize,  // megabytes
			MaxAge:     c.LogMaxAge,   // days
			MaxBackups: c.LogMaxFiles, // files
			Compress:   c.LogCompress,
		}
		cores = append(cores, logging.NewWrappedCore(level, rw, logging.Plain.FileEncoder()))
	}
	return logging.NewLogger(name, cores...), nil
}
