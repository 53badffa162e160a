// Implements PriorityQueue, the binary min-heap shared by the class queues
// and the event scheduler.

package sim

import (
	"container/heap"
	"fmt"
	"strings"
)

// PriorityQueue is a binary min-heap ordered by an injected comparator.
// Elements that compare equal are returned in insertion order.
//
// The key function identifies elements for Update and Remove. Both are O(n)
// linear scans and are not meant for hot paths; Push and Pop are O(log n).
//
// Not safe for concurrent use.
type PriorityQueue[T any, K comparable] struct {
	entries queueEntries[T]
	key     func(T) K
	nextSeq uint64
}

type queueEntry[T any] struct {
	item T
	seq  uint64 // insertion order, tie-breaker for equal items
}

// queueEntries implements heap.Interface.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type queueEntries[T any] struct {
	items []queueEntry[T]
	less  func(a, b T) bool
}

func (q *queueEntries[T]) Len() int { return len(q.items) }

func (q *queueEntries[T]) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if q.less(a.item, b.item) {
		return true
	}
	if q.less(b.item, a.item) {
		return false
	}
	return a.seq < b.seq
}

func (q *queueEntries[T]) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *queueEntries[T]) Push(x any) {
	q.items = append(q.items, x.(queueEntry[T]))
}

func (q *queueEntries[T]) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	var zero queueEntry[T]
	old[n-1] = zero // drop the reference so the item can be collected
	q.items = old[0 : n-1]
	return item
}

// NewPriorityQueue creates an empty queue. less reports whether a must be
// popped before b; key extracts the identity used by Update and Remove.
func NewPriorityQueue[T any, K comparable](less func(a, b T) bool, key func(T) K) *PriorityQueue[T, K] {
	if less == nil || key == nil {
		panic("NewPriorityQueue: less and key must not be nil")
	}
	return &PriorityQueue[T, K]{
		entries: queueEntries[T]{less: less},
		key:     key,
	}
}

// Push inserts item and restores heap order.
func (pq *PriorityQueue[T, K]) Push(item T) {
	heap.Push(&pq.entries, queueEntry[T]{item: item, seq: pq.nextSeq})
	pq.nextSeq++
}

// Pop removes and returns the minimal item.
// Returns false if the queue is empty.
func (pq *PriorityQueue[T, K]) Pop() (T, bool) {
	if pq.entries.Len() == 0 {
		var zero T
		return zero, false
	}
	return heap.Pop(&pq.entries).(queueEntry[T]).item, true
}

// Peek returns the minimal item without removing it.
// Returns false if the queue is empty.
func (pq *PriorityQueue[T, K]) Peek() (T, bool) {
	if pq.entries.Len() == 0 {
		var zero T
		return zero, false
	}
	return pq.entries.items[0].item, true
}

// Len returns the number of queued items.
func (pq *PriorityQueue[T, K]) Len() int {
	return pq.entries.Len()
}

// IsEmpty reports whether the queue holds no items.
func (pq *PriorityQueue[T, K]) IsEmpty() bool {
	return pq.entries.Len() == 0
}

// Update replaces the first item whose key matches key(item) and restores heap
// order around it. The replaced item keeps its original insertion sequence.
// Returns the previous item, or false if no item matched.
func (pq *PriorityQueue[T, K]) Update(item T) (T, bool) {
	i := pq.indexOf(pq.key(item))
	if i < 0 {
		var zero T
		return zero, false
	}
	old := pq.entries.items[i].item
	pq.entries.items[i].item = item
	// heap.Fix sifts down, then up if nothing moved
	heap.Fix(&pq.entries, i)
	return old, true
}

// Remove deletes the first item with key k.
// Returns the removed item, or false if no item matched.
func (pq *PriorityQueue[T, K]) Remove(k K) (T, bool) {
	i := pq.indexOf(k)
	if i < 0 {
		var zero T
		return zero, false
	}
	return heap.Remove(&pq.entries, i).(queueEntry[T]).item, true
}

// Items returns a copy of the queued items in heap (not sorted) order.
func (pq *PriorityQueue[T, K]) Items() []T {
	out := make([]T, len(pq.entries.items))
	for i, e := range pq.entries.items {
		out[i] = e.item
	}
	return out
}

func (pq *PriorityQueue[T, K]) indexOf(k K) int {
	for i, e := range pq.entries.items {
		if pq.key(e.item) == k {
			return i
		}
	}
	return -1
}

func (pq *PriorityQueue[T, K]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, e := range pq.entries.items {
		sb.WriteString(fmt.Sprint(e.item))
		if i < len(pq.entries.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
