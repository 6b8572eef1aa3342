package ecs

import "github.com/milk9111/attractors/ecs/component"

// Kind is the type-erased part of a component.ComponentKind.
type Kind interface {
	ID() component.ComponentID
}

// Query returns the entities holding every kind, iterating the smallest
// storage.
func Query(w *World, kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]storage, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := 0
	for i, s := range sets {
		if s.len() < sets[smallest].len() {
			smallest = i
		}
	}
	out := make([]Entity, 0, sets[smallest].len())
outer:
	for _, e := range sets[smallest].entities() {
		for i, s := range sets {
			if i != smallest && !s.has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}
