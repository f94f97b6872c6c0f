package ecs

import (
	"github.com/milk9111/watchtower/ecs/component"
)

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, the simulation clock and the
// per-tick outward event queue.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]store
	scheduler Scheduler
	events    EventQueue

	now   float64
	dt    float64
	frame uint64

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle. It
// reports false for stale or dead handles.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every living entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// AddSystem appends a system to the tick order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Systems returns the tick order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Tick advances the clock by dt and runs every system once. Events queued
// by the previous tick are discarded first; hosts drain them between ticks.
func (w *World) Tick(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.events.flush()
	w.dt = dt
	w.now += dt
	w.frame++
	w.scheduler.Update(w)
}

// Now is the simulation time in seconds.
func (w *World) Now() float64 { return w.now }

// DeltaTime is the length of the current tick in seconds.
func (w *World) DeltaTime() float64 { return w.dt }

// Frame counts completed calls to Tick.
func (w *World) Frame() uint64 { return w.frame }

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Emit queues an outward event for the host.
func (w *World) Emit(t EventType, data any) {
	if w == nil {
		return
	}
	w.events.Push(Event{Type: t, Frame: w.frame, Data: data})
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}
