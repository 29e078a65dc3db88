// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	deposits  prometheus.Counter
	swaps     prometheus.Counter
	withdraws prometheus.Counter

	reserveA prometheus.Gauge
	reserveB prometheus.Gauge
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		deposits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pool",
			Name:      "deposits",
			Help:      "number of successful deposits",
		}),
		swaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pool",
			Name:      "swaps",
			Help:      "number of successful swaps",
		}),
		withdraws: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pool",
			Name:      "withdraws",
			Help:      "number of successful withdrawals",
		}),
		reserveA: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pool",
			Name:      "reserve_a",
			Help:      "reserve of asset A in internal precision",
		}),
		reserveB: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pool",
			Name:      "reserve_b",
			Help:      "reserve of asset B in internal precision",
		}),
	}
	errs := []error{
		r.Register(m.deposits),
		r.Register(m.swaps),
		r.Register(m.withdraws),
		r.Register(m.reserveA),
		r.Register(m.reserveB),
	}
	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}
	return r, m, nil
}

// Assumes the pool lock is held.
func (m *metrics) observeReserves(reserveA *big.Int, reserveB *big.Int) {
	a, _ := new(big.Float).SetInt(reserveA).Float64()
	b, _ := new(big.Float).SetInt(reserveB).Float64()
	m.reserveA.Set(a)
	m.reserveB.Set(b)
}
