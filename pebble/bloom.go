// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
)

const bloomBitsPerKey = 10

func pebbleBloomFilter() pebble.FilterPolicy {
	return bloom.FilterPolicy(bloomBitsPerKey)
}
