package ecs

import (
	"github.com/milk9111/watchtower/combat"
	"github.com/milk9111/watchtower/common"
)

// EventType identifies an outward event.
type EventType string

const (
	EventFired        EventType = "fired"
	EventTrail        EventType = "trail"
	EventKilled       EventType = "killed"
	EventRemoved      EventType = "removed"
	EventSpawned      EventType = "spawned"
	EventWeaponSwitch EventType = "weapon_switch"
	EventReload       EventType = "reload"
)

// Event is an ECS event payload.
type Event struct {
	Type  EventType
	Frame uint64
	Data  any
}

// FiredEvent is the payload of EventFired.
type FiredEvent struct {
	Shooter Entity
	Fire    combat.FireEvent
	Hits    int
}

// TrailEvent is the payload of EventTrail.
type TrailEvent struct {
	Start common.Vec3
	End   common.Vec3
	Hit   bool
}

// KilledEvent is the payload of EventKilled: the death transition of a
// tracked enemy.
type KilledEvent struct {
	Entity Entity
	Kind   string
	Weapon combat.WeaponKind
	Points int
}

// RemovedEvent is the payload of EventRemoved.
type RemovedEvent struct {
	Entity  Entity
	Spawner Entity
}

// SpawnedEvent is the payload of EventSpawned.
type SpawnedEvent struct {
	Entity   Entity
	Type     string
	Spawner  Entity
	Position common.Vec3
}

// WeaponEvent is the payload of EventWeaponSwitch and EventReload.
type WeaponEvent struct {
	Wielder Entity
	Weapon  combat.WeaponKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
