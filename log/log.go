// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log constructs the structured loggers used across the simulator.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style zap logger at the given level, writing
// console-encoded output. Used by the CLI entry point.
func New(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

// NewNoOp returns a logger that discards everything, the same kind of
// logger a node constructed without an explicit logger uses.
func NewNoOp() *zap.Logger {
	return zap.NewNop()
}
