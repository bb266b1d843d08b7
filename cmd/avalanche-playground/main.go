// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command avalanche-playground runs the Avalanche-family consensus
// simulator: a network of nodes is built, the reference double-spend and
// pile-on scenario is injected, and the resulting acceptance state is
// printed.
package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bwasti/avalanche-playground/config"
	"github.com/bwasti/avalanche-playground/consensus/avalanche"
	"github.com/bwasti/avalanche-playground/log"
	"github.com/bwasti/avalanche-playground/metrics"
	"github.com/bwasti/avalanche-playground/render"
	"github.com/bwasti/avalanche-playground/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	fs := config.BuildFlagSet()

	cmd := &cobra.Command{
		Use:     "avalanche-playground",
		Short:   "Simulate an Avalanche-family metastable consensus network",
		Version: version.String,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sim, err := resolveSimulation(cmd)
			if err != nil {
				return err
			}
			return withNetwork(sim, func(primary *avalanche.Node) error {
				return printAcceptance(os.Stdout, primary)
			})
		},
	}
	cmd.PersistentFlags().AddFlagSet(fs)
	cmd.AddCommand(newRenderCommand())
	return cmd
}

func newRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Run the scenario and print the primary node's full DAG state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sim, err := resolveSimulation(cmd)
			if err != nil {
				return err
			}
			return withNetwork(sim, func(primary *avalanche.Node) error {
				return render.Node(os.Stdout, primary)
			})
		},
	}
}

func resolveSimulation(cmd *cobra.Command) (config.Simulation, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config.Simulation{}, err
	}
	return config.GetSimulation(v), nil
}

// withNetwork builds a network per sim, runs the reference double-spend
// and pile-on scenario on it (sim.Rounds rounds after each injection), and
// invokes fn with the primary (injecting) node once those rounds have run.
// No convergence check is made.
func withNetwork(sim config.Simulation, fn func(primary *avalanche.Node) error) error {
	logger, err := buildLogger(sim.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	reg := prometheus.NewRegistry()
	collector, err := metrics.New(reg, "avalanche_playground")
	if err != nil {
		return fmt.Errorf("couldn't register metrics: %w", err)
	}

	params := avalanche.Parameters{
		K:     sim.K,
		Alpha: sim.Alpha,
		Beta1: sim.Beta1,
		Beta2: sim.Beta2,
	}

	universe := avalanche.NewUniverse()
	nodes := make([]*avalanche.Node, sim.Nodes)
	for i := range nodes {
		nodes[i] = avalanche.NewNode("", params, universe, logger)
		if sim.Seed != 0 {
			nodes[i].SetSeed(sim.Seed + int64(i))
		}
		nodes[i].SetQueryObserver(func(_ *avalanche.Transaction, positives, threshold, _ int) {
			collector.ObserveQuery(positives, threshold)
		})
	}
	for _, node := range nodes {
		node.SetPeers(nodes)
	}

	primary := nodes[0]
	run := func() {
		collector.RoundsTotal.Add(float64(sim.Rounds * len(nodes)))
		avalanche.RunNodes(nodes, sim.Rounds)
	}

	tx0 := avalanche.NewTransaction(0, nil, "tx0")
	tx1 := avalanche.NewTransaction(1, []*avalanche.Transaction{tx0}, "tx1")
	tx2 := avalanche.NewTransaction(1, []*avalanche.Transaction{tx0}, "tx2")

	primary.Receive(tx0)
	run()
	primary.Receive(tx1)
	run()
	primary.Receive(tx2)
	run()

	for i := 2; i < 24; i += 2 {
		step := avalanche.NewTransaction(i, []*avalanche.Transaction{tx1}, "")
		primary.Receive(step)
		run()

		next := avalanche.NewTransaction(i+1, []*avalanche.Transaction{step}, "")
		primary.Receive(next)
		run()
	}

	accepted := 0
	for _, tx := range primary.Transactions() {
		if primary.IsAccepted(tx) {
			accepted++
		}
	}
	collector.TransactionsAccepted.Set(float64(accepted))

	return fn(primary)
}

func printAcceptance(w *os.File, primary *avalanche.Node) error {
	for _, tx := range primary.Transactions() {
		if _, err := fmt.Fprintf(w, "%s accepted=%t\n", tx, primary.IsAccepted(tx)); err != nil {
			return err
		}
	}
	return nil
}

func buildLogger(level string) (*zap.Logger, error) {
	parsed, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	logger, err := log.New(parsed)
	if err != nil {
		return nil, fmt.Errorf("couldn't build logger: %w", err)
	}
	return logger, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
