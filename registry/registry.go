// Package registry keeps the kill tally: the set of living enemies and the
// running count of confirmed kills.
package registry

import (
	"slices"
)

// ID is a stable enemy identifier. Hosts use the ECS entity handle.
type ID uint64

// Registry is the single-owner kill tally. It is not safe for concurrent use;
// see Actor for a serialized wrapper.
type Registry struct {
	active      map[ID]struct{}
	totalKilled int
}

func New() *Registry {
	return &Registry{active: make(map[ID]struct{})}
}

// Register adds id to the active set. It reports false if id was already
// present.
func (r *Registry) Register(id ID) bool {
	if _, ok := r.active[id]; ok {
		return false
	}
	r.active[id] = struct{}{}
	return true
}

// Killed removes id from the active set and counts the kill. Unknown or
// already removed ids are ignored so each enemy is counted at most once.
func (r *Registry) Killed(id ID) bool {
	if _, ok := r.active[id]; !ok {
		return false
	}
	delete(r.active, id)
	r.totalKilled++
	return true
}

// Forget drops id without counting a kill.
func (r *Registry) Forget(id ID) bool {
	if _, ok := r.active[id]; !ok {
		return false
	}
	delete(r.active, id)
	return true
}

func (r *Registry) Contains(id ID) bool {
	_, ok := r.active[id]
	return ok
}

func (r *Registry) Active() int { return len(r.active) }

func (r *Registry) TotalKilled() int { return r.totalKilled }

// ActiveIDs returns the living ids in ascending order.
func (r *Registry) ActiveIDs() []ID {
	ids := make([]ID, 0, len(r.active))
	for id := range r.active {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Snapshot is a point-in-time copy of the tally.
type Snapshot struct {
	Active      int
	TotalKilled int
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{Active: len(r.active), TotalKilled: r.totalKilled}
}
