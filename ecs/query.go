package ecs

import "github.com/milk9111/watchtower/ecs/component"

func smallest(stores ...store) store {
	var best store
	for _, s := range stores {
		if best == nil || s.len() < best.len() {
			best = s
		}
	}
	return best
}

// Query returns the living entities that carry every given kind.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}

	var out []Entity
	for _, e := range smallest(stores...).entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for _, s := range stores {
			if !s.has(e.id()) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}
