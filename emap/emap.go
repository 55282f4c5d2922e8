// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emap

import (
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/countervm/heap"
)

type bucket struct {
	t     int64
	items []ids.ID
}

// Item is anything identified by an ID that stops being valid after Expiry.
type Item interface {
	ID() ids.ID
	Expiry() int64
}

// EMap tracks the IDs of items until their expiry passes. It is used to
// reject an item that was already accepted while it could still be valid.
type EMap[T Item] struct {
	mu sync.Mutex

	bh    *heap.Heap[*bucket, int64]
	seen  set.Set[ids.ID]
	times map[int64]*bucket
}

func NewEMap[T Item]() *EMap[T] {
	return &EMap[T]{
		seen:  set.Set[ids.ID]{},
		times: make(map[int64]*bucket),
		bh:    heap.New[*bucket, int64](120, true),
	}
}

// Add records [item] and reports whether it was not already present.
func (e *EMap[T]) Add(item T) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := item.ID()
	if e.seen.Contains(id) {
		return false
	}
	e.seen.Add(id)

	t := item.Expiry()
	if b, ok := e.times[t]; ok {
		b.items = append(b.items, id)
		return true
	}
	b := &bucket{
		t:     t,
		items: []ids.ID{id},
	}
	e.times[t] = b
	e.bh.Push(&heap.Entry[*bucket, int64]{
		ID:    id,
		Val:   t,
		Item:  b,
		Index: e.bh.Len(),
	})
	return true
}

// Remove forgets [item]. Its bucket is dropped on the next [SetMin].
func (e *EMap[T]) Remove(item T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seen.Remove(item.ID())
}

// SetMin evicts every item that expired before [t] and returns their IDs.
func (e *EMap[T]) SetMin(t int64) []ids.ID {
	e.mu.Lock()
	defer e.mu.Unlock()

	evicted := []ids.ID{}
	for {
		b := e.bh.First()
		if b == nil || b.Val >= t {
			break
		}
		e.bh.Pop()
		for _, id := range b.Item.items {
			if !e.seen.Contains(id) {
				continue
			}
			e.seen.Remove(id)
			evicted = append(evicted, id)
		}
		delete(e.times, b.Val)
	}
	return evicted
}

func (e *EMap[T]) Contains(item T) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.seen.Contains(item.ID())
}

func (e *EMap[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.seen.Len()
}
