// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"
	"path"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cfmm-labs/pairpool/internal/config"
)

// newLogger builds the daemon logger: a colored console core on stderr,
// plus a rotated JSON file core when a log directory is configured.
func newLogger(cfg config.LogConfig) (logging.Logger, error) {
	level, err := logging.ToLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	consoleCore := logging.NewWrappedCore(level, os.Stderr, logging.Colors.ConsoleEncoder())
	if cfg.Directory == "" {
		return logging.NewLogger("pairpoold", consoleCore), nil
	}

	rw := &lumberjack.Logger{
		Filename:   path.Join(cfg.Directory, "pairpoold.log"),
		MaxSize:    cfg.MaxSize,  // megabytes
		MaxAge:     cfg.MaxAge,   // days
		MaxBackups: cfg.MaxFiles, // files
		Compress:   cfg.Compress,
	}
	fileCore := logging.NewWrappedCore(level, rw, logging.JSON.FileEncoder())
	return logging.NewLogger("pairpoold", consoleCore, fileCore), nil
}
