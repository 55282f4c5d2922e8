// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lockmap

import (
	"slices"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/ava-labs/countervm/state"
)

type holderLock struct {
	holders int
	mu      sync.RWMutex
}

// Lockmap hands out a lock per key. Entries are dropped once nobody holds
// or waits on them.
type Lockmap struct {
	l sync.Mutex
	m map[string]*holderLock
}

func New(initSize int) *Lockmap {
	return &Lockmap{
		m: make(map[string]*holderLock, initSize),
	}
}

func (l *Lockmap) Lock(key string) {
	l.lock(key, true)
}

func (l *Lockmap) Unlock(key string) {
	l.unlock(key, true)
}

func (l *Lockmap) RLock(key string) {
	l.lock(key, false)
}

func (l *Lockmap) RUnlock(key string) {
	l.unlock(key, false)
}

func (l *Lockmap) lock(key string, write bool) {
	l.l.Lock()
	hl, ok := l.m[key]
	if !ok {
		hl = &holderLock{}
		l.m[key] = hl
	}
	hl.holders++
	l.l.Unlock()

	if write {
		hl.mu.Lock()
	} else {
		hl.mu.RLock()
	}
}

func (l *Lockmap) unlock(key string, write bool) {
	l.l.Lock()
	defer l.l.Unlock()

	hl := l.m[key]
	if write {
		hl.mu.Unlock()
	} else {
		hl.mu.RUnlock()
	}
	hl.holders--
	if hl.holders == 0 {
		delete(l.m, key)
	}
}

// LockKeys locks every key of [keys] in sorted order, taking a write lock
// when the key may be allocated or written. The returned func releases them.
func (l *Lockmap) LockKeys(keys state.Keys) func() {
	sorted := maps.Keys(keys)
	slices.Sort(sorted)
	for _, k := range sorted {
		l.lock(k, needsWrite(keys[k]))
	}
	return func() {
		for i := len(sorted) - 1; i >= 0; i-- {
			k := sorted[i]
			l.unlock(k, needsWrite(keys[k]))
		}
	}
}

func needsWrite(p state.Permissions) bool {
	return p.Has(state.Allocate) || p.Has(state.Write)
}

func (l *Lockmap) Locks() int {
	l.l.Lock()
	defer l.l.Unlock()

	return len(l.m)
}
