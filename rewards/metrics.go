// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package rewards

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcReadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nftrewards",
		Subsystem: "rpc",
		Name:      "reads_total",
		Help:      "Count of contract reads.",
	}, []string{"operation", "status"})
	rpcReadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nftrewards",
		Subsystem: "rpc",
		Name:      "read_duration_seconds",
		Help:      "Duration of contract reads.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
	transactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nftrewards",
		Name:      "transactions_total",
		Help:      "Count of submitted transactions and receipts.",
	}, []string{"kind", "status"})
	censusHolders = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "nftrewards",
		Name:      "census_holders",
		Help:      "Unique holders found by the last census.",
	})
	censusDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nftrewards",
		Name:      "census_duration_seconds",
		Help:      "Duration of holder censuses.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})
	poolClampedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "nftrewards",
		Name:      "pool_clamped_total",
		Help:      "Times the unallocated pool formula went negative and was floored at zero.",
	})
	unallocatedPool = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "nftrewards",
		Name:      "unallocated_pool",
		Help:      "Unallocated reward pool in the token's smallest unit.",
	})
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func observeRead(operation string, err error, started time.Time) {
	s := status(err)
	rpcReadsTotal.WithLabelValues(operation, s).Inc()
	rpcReadDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}

func observeTx(kind string, err error) {
	transactionsTotal.WithLabelValues(kind, status(err)).Inc()
}
