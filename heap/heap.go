// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package heap

import (
	"cmp"
	"container/heap"

	"github.com/ava-labs/avalanchego/ids"
)

// Entry is an item of a [Heap] ordered by [Val].
type Entry[I any, V cmp.Ordered] struct {
	ID    ids.ID
	Val   V
	Item  I
	Index int
}

// Heap[I,V] is used to track objects of [I] by [Val].
//
// This data structure does not perform any synchronization and is not
// safe to use concurrently without external locking.
type Heap[I any, V cmp.Ordered] struct {
	ih *innerHeap[I, V]
}

// New returns an instance of Heap[I,V]
func New[I any, V cmp.Ordered](items int, isMinHeap bool) *Heap[I, V] {
	return &Heap[I, V]{&innerHeap[I, V]{
		isMinHeap: isMinHeap,
		items:     make([]*Entry[I, V], 0, items),
		lookup:    make(map[ids.ID]*Entry[I, V], items),
	}}
}

// Len returns the number of items in h.
func (h *Heap[I, V]) Len() int { return h.ih.Len() }

// Get returns the entry associated with [id], and a bool if [id] was found.
func (h *Heap[I, V]) Get(id ids.ID) (*Entry[I, V], bool) {
	e, ok := h.ih.lookup[id]
	return e, ok
}

func (h *Heap[I, V]) Has(id ids.ID) bool {
	_, ok := h.ih.lookup[id]
	return ok
}

func (h *Heap[I, V]) Push(e *Entry[I, V]) {
	heap.Push(h.ih, e)
}

// Pop removes the first item of the heap. It returns nil if the heap is empty.
func (h *Heap[I, V]) Pop() *Entry[I, V] {
	if len(h.ih.items) == 0 {
		return nil
	}
	return heap.Pop(h.ih).(*Entry[I, V])
}

// Remove removes the entry at [index].
func (h *Heap[I, V]) Remove(index int) *Entry[I, V] {
	if index >= len(h.ih.items) {
		return nil
	}
	return heap.Remove(h.ih, index).(*Entry[I, V])
}

// First returns the first item in the heap. This is the smallest item in
// a minHeap and the largest item in a maxHeap.
//
// If no items are in the heap, it will return nil.
func (h *Heap[I, V]) First() *Entry[I, V] {
	if len(h.ih.items) == 0 {
		return nil
	}
	return h.ih.items[0]
}

var _ heap.Interface = (*innerHeap[any, int])(nil)

type innerHeap[I any, V cmp.Ordered] struct {
	isMinHeap bool
	items     []*Entry[I, V]
	lookup    map[ids.ID]*Entry[I, V]
}

func (h *innerHeap[I, V]) Len() int { return len(h.items) }

func (h *innerHeap[I, V]) Less(i, j int) bool {
	if h.isMinHeap {
		return h.items[i].Val < h.items[j].Val
	}
	return h.items[i].Val > h.items[j].Val
}

func (h *innerHeap[I, V]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].Index = i
	h.items[j].Index = j
}

func (h *innerHeap[I, V]) Push(x any) {
	e := x.(*Entry[I, V])
	e.Index = len(h.items)
	h.items = append(h.items, e)
	h.lookup[e.ID] = e
}

func (h *innerHeap[I, V]) Pop() any {
	n := len(h.items)
	e := h.items[n-1]
	h.items[n-1] = nil
	h.items = h.items[:n-1]
	delete(h.lookup, e.ID)
	return e
}
