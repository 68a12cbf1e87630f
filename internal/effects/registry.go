// Package effects tracks timed effects (cooldowns, debuffs) as deadlines in a
// min-heap that the game drains once per tick.
//
// Nothing here runs on its own goroutine: an effect expires when the owner
// calls Advance with a time at or past its deadline. That keeps expiry
// ordering deterministic and lets the owner apply the state flip atomically
// with respect to a simulation step.
package effects

import (
	"container/heap"
	"fmt"
	"time"
)

// Policy selects what happens when a key is armed while already pending.
type Policy int

const (
	// PolicySupersede replaces the pending deadline: only the latest Arm fires.
	PolicySupersede Policy = iota

	// PolicyLegacy keeps every armed deadline live. The first one due fires,
	// even if a later Arm for the same key meant to extend the effect.
	PolicyLegacy
)

// String returns the config name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicySupersede:
		return "supersede"
	case PolicyLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a config name into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "supersede":
		return PolicySupersede, nil
	case "legacy":
		return PolicyLegacy, nil
	default:
		return PolicySupersede, fmt.Errorf("effects: unknown rearm policy %q", s)
	}
}

type entry[K comparable] struct {
	key      K
	deadline time.Time
	seq      uint64 // arm order, breaks deadline ties
}

type entryHeap[K comparable] []*entry[K]

func (h entryHeap[K]) Len() int { return len(h) }

func (h entryHeap[K]) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h entryHeap[K]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap[K]) Push(x any) { *h = append(*h, x.(*entry[K])) }

func (h *entryHeap[K]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Registry holds pending deadlines keyed by K.
// It is not safe for concurrent use; the game loop owns it.
type Registry[K comparable] struct {
	policy  Policy
	heap    entryHeap[K]
	latest  map[K]uint64 // seq of the newest entry per key
	pending map[K]int    // entries per key that will still fire
	seq     uint64
}

// NewRegistry creates an empty registry with the given re-arm policy.
func NewRegistry[K comparable](policy Policy) *Registry[K] {
	return &Registry[K]{
		policy:  policy,
		latest:  make(map[K]uint64),
		pending: make(map[K]int),
	}
}

// Policy returns the re-arm policy.
func (r *Registry[K]) Policy() Policy {
	return r.policy
}

// Arm schedules key to expire at deadline.
func (r *Registry[K]) Arm(key K, deadline time.Time) {
	r.seq++
	r.latest[key] = r.seq
	if r.policy == PolicyLegacy {
		r.pending[key]++
	} else {
		r.pending[key] = 1
	}
	heap.Push(&r.heap, &entry[K]{
		key:      key,
		deadline: deadline,
		seq:      r.seq,
	})
}

// Pending reports whether key has a deadline that has not fired yet.
func (r *Registry[K]) Pending(key K) bool {
	return r.pending[key] > 0
}

// Deadline returns the deadline at which key will next fire.
// Under PolicyLegacy that is the earliest outstanding entry for key.
func (r *Registry[K]) Deadline(key K) (time.Time, bool) {
	var (
		best  time.Time
		found bool
	)
	for _, e := range r.heap {
		if e.key != key || !r.live(e) {
			continue
		}
		if !found || e.deadline.Before(best) {
			best = e.deadline
			found = true
		}
	}
	return best, found
}

// Remaining returns how long until key fires, zero when not pending or overdue.
func (r *Registry[K]) Remaining(key K, now time.Time) time.Duration {
	d, ok := r.Deadline(key)
	if !ok || !d.After(now) {
		return 0
	}
	return d.Sub(now)
}

// Advance pops every entry due at or before now, in deadline order, and
// returns the keys that fired. A key appears at most once per call.
func (r *Registry[K]) Advance(now time.Time) []K {
	var fired []K
	seen := make(map[K]bool)
	for r.heap.Len() > 0 {
		next := r.heap[0]
		if next.deadline.After(now) {
			break
		}
		heap.Pop(&r.heap)
		if !r.live(next) {
			continue
		}
		r.pending[next.key]--
		if r.pending[next.key] <= 0 {
			delete(r.pending, next.key)
			delete(r.latest, next.key)
		}
		if !seen[next.key] {
			seen[next.key] = true
			fired = append(fired, next.key)
		}
	}
	return fired
}

// Shift moves every pending deadline later by d.
// A uniform shift keeps heap order intact.
func (r *Registry[K]) Shift(d time.Duration) {
	for _, e := range r.heap {
		e.deadline = e.deadline.Add(d)
	}
}

// Len returns the number of keys with a pending deadline.
func (r *Registry[K]) Len() int {
	return len(r.pending)
}

// Clear drops every pending deadline.
func (r *Registry[K]) Clear() {
	for i := range r.heap {
		r.heap[i] = nil
	}
	r.heap = r.heap[:0]
	clear(r.latest)
	clear(r.pending)
}

// live reports whether an entry will still fire under the policy.
// Superseded entries stay in the heap until popped and are skipped then.
func (r *Registry[K]) live(e *entry[K]) bool {
	if r.pending[e.key] <= 0 {
		return false
	}
	if r.policy == PolicyLegacy {
		return true
	}
	return r.latest[e.key] == e.seq
}
