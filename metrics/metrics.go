// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics registers the Prometheus instrumentation the simulator's
// CLI exposes alongside the consensus core. The core itself never reads
// these back — they are purely observational.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the gauges and counters for one simulation run.
type Collector struct {
	RoundsTotal          prometheus.Counter
	QueryTotal           prometheus.Counter
	QueryPositiveTotal   prometheus.Counter
	TransactionsAccepted prometheus.Gauge
}

// New registers a Collector's metrics on reg and returns it. namespace
// prefixes every metric name (e.g. "avalanche_playground").
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		RoundsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "# of Run() invocations across all nodes",
		}),
		QueryTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_total",
			Help:      "# of transactions polled across all nodes",
		}),
		QueryPositiveTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_positive_total",
			Help:      "# of polls that met the alpha threshold and set a chit",
		}),
		TransactionsAccepted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transactions_accepted",
			Help:      "# of transactions accepted on the primary node, as of the last sample",
		}),
	}

	for name, collector := range map[string]prometheus.Collector{
		"rounds_total":          c.RoundsTotal,
		"query_total":           c.QueryTotal,
		"query_positive_total":  c.QueryPositiveTotal,
		"transactions_accepted": c.TransactionsAccepted,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("couldn't register metric %s: %w", name, err)
		}
	}
	return c, nil
}

// ObserveQuery records one poll's outcome: positives >= threshold means the
// poll set a chit this round.
func (c *Collector) ObserveQuery(positives, threshold int) {
	c.QueryTotal.Inc()
	if positives >= threshold {
		c.QueryPositiveTotal.Inc()
	}
}
