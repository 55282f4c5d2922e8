// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/crypto"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/tstate"
)

type Metrics struct {
	txsSubmitted        prometheus.Counter
	txsSucceeded        prometheus.Counter
	txsFailed           *prometheus.CounterVec
	countersInitialized prometheus.Counter
	stateChanges        prometheus.Counter
	execute             prometheus.Histogram
	verifySignatures    prometheus.Histogram
}

func newMetrics() (*prometheus.Registry, *Metrics, error) {
	r := prometheus.NewRegistry()
	m := &Metrics{
		txsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_submitted",
			Help:      "number of txs submitted to vm",
		}),
		txsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_succeeded",
			Help:      "number of txs committed to state",
		}),
		txsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_failed",
			Help:      "number of txs that failed by reason",
		}, []string{"reason"}),
		countersInitialized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "counter",
			Name:      "initialized",
			Help:      "number of counters created",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of state changes",
		}),
		execute: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chain",
			Name:      "execute",
			Help:      "time spent executing a tx (seconds)",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		verifySignatures: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chain",
			Name:      "verify_signatures",
			Help:      "time spent verifying the signatures of a batch (seconds)",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsSubmitted),
		r.Register(m.txsSucceeded),
		r.Register(m.txsFailed),
		r.Register(m.countersInitialized),
		r.Register(m.stateChanges),
		r.Register(m.execute),
		r.Register(m.verifySignatures),
	)
	return r, m, errs.Err
}

// failureReason buckets [err] for the txs_failed metric.
func failureReason(err error) string {
	switch {
	case errors.Is(err, actions.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, actions.ErrCounterOverflow):
		return "counter_overflow"
	case errors.Is(err, actions.ErrNotCounterOwner), errors.Is(err, actions.ErrCounterAddressMismatch):
		return "not_owner"
	case errors.Is(err, storage.ErrCounterNotFound):
		return "counter_not_found"
	case errors.Is(err, storage.ErrAlreadyInitialized):
		return "already_initialized"
	case errors.Is(err, storage.ErrInsufficientBalance), errors.Is(err, chain.ErrMaxFeeExceeded):
		return "fee"
	case errors.Is(err, crypto.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrDuplicateTx):
		return "duplicate"
	case errors.Is(err, tstate.ErrInvalidKeyOrPermission):
		return "invalid_key"
	default:
		return "other"
	}
}
