// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "github.com/prometheus/client_golang/prometheus"

type Option func(*VM)

// WithClock replaces the wall clock used to check transaction expiry.
func WithClock(now func() int64) Option {
	return func(vm *VM) {
		vm.now = now
	}
}

// WithGatherer exposes [g] alongside the metrics of the VM.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(vm *VM) {
		vm.gatherers = append(vm.gatherers, g)
	}
}
