// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config builds the flag set and viper binding for the simulator
// CLI, following the teacher's BuildFlagSet/BuildViper split so the same
// settings could later be supplied via environment variables or a config
// file without touching the command layer.
package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names, exported so cmd/avalanche-playground and tests agree on them.
const (
	NodesKey  = "nodes"
	RoundsKey = "rounds"
	SeedKey   = "seed"
	KKey      = "k"
	AlphaKey  = "alpha"
	Beta1Key  = "beta1"
	Beta2Key  = "beta2"
	LogLevel  = "log-level"
)

// Simulation is the fully resolved configuration for one simulator run.
type Simulation struct {
	Nodes    int
	Rounds   int
	Seed     int64
	K        int
	Alpha    float64
	Beta1    int
	Beta2    int
	LogLevel string
}

// BuildFlagSet declares every flag the simulator CLI accepts, with the
// defaults recommended by the protocol's reference implementation.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("avalanche-playground", pflag.ContinueOnError)

	fs.Int(NodesKey, 51, "number of nodes in the simulated network")
	fs.Int(RoundsKey, 10, "rounds to run per injection step")
	fs.Int64(SeedKey, 0, "random seed; 0 means entropy-based")
	fs.Int(KKey, 10, "peers sampled per polled transaction")
	fs.Float64(AlphaKey, 0.75, "portion of sampled peers required for a positive round")
	fs.Int(Beta1Key, 10, "confidence threshold for early commit")
	fs.Int(Beta2Key, 10, "consecutive-round threshold for counted commit")
	fs.String(LogLevel, "info", "log level: debug, info, warn, error")

	return fs
}

// BuildViper binds fs into a fresh viper.Viper and parses args against it.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

// GetSimulation reads the resolved Simulation out of v.
func GetSimulation(v *viper.Viper) Simulation {
	return Simulation{
		Nodes:    v.GetInt(NodesKey),
		Rounds:   v.GetInt(RoundsKey),
		Seed:     v.GetInt64(SeedKey),
		K:        v.GetInt(KKey),
		Alpha:    v.GetFloat64(AlphaKey),
		Beta1:    v.GetInt(Beta1Key),
		Beta2:    v.GetInt(Beta2Key),
		LogLevel: v.GetString(LogLevel),
	}
}
