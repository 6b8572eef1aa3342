package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/attractors/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false the second time")
				}
				if w.Len() != c.create-1 {
					t.Fatalf("expected %d live entities, got %d", c.create-1, w.Len())
				}
			}
		})
	}
}

func TestEntityGenerations(t *testing.T) {
	w := NewWorld()
	first := CreateEntity(w)
	if !first.Valid() {
		t.Fatalf("issued entity should be valid")
	}
	if Entity(0).Valid() {
		t.Fatalf("zero entity should be invalid")
	}

	DestroyEntity(w, first)
	reused := CreateEntity(w)
	if reused.id() != first.id() {
		t.Fatalf("expected slot %d to be reused, got %d", first.id(), reused.id())
	}
	if reused.generation() != first.generation()+1 {
		t.Fatalf("expected generation %d, got %d", first.generation()+1, reused.generation())
	}
	if IsAlive(w, first) {
		t.Fatalf("stale handle %s must not be alive", first)
	}
	if !IsAlive(w, reused) {
		t.Fatalf("reused handle %s should be alive", reused)
	}
	if got := reused.String(); got != "1v1" {
		t.Fatalf("expected 1v1, got %s", got)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]("int")
		h2 := component.NewComponent[string]("string")
		h3 := component.NewComponent[float64]("float")

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get(w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove(w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove(w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get(w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove(w, e1, h3.Kind()) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})

	t.Run("get_is_shared", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]("int")
		e := CreateEntity(w)
		if err := Add(w, e, h.Kind(), intPtr(1)); err != nil {
			t.Fatal(err)
		}
		v, _ := Get(w, e, h.Kind())
		*v = 42
		again, _ := Get(w, e, h.Kind())
		if *again != 42 {
			t.Fatalf("expected write through Get to persist, got %d", *again)
		}
	})

	t.Run("destroy_clears_components", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]("int")
		e := CreateEntity(w)
		if err := Add(w, e, h.Kind(), intPtr(1)); err != nil {
			t.Fatal(err)
		}
		DestroyEntity(w, e)
		if Count(w, h.Kind()) != 0 {
			t.Fatalf("expected no components after destroy, got %d", Count(w, h.Kind()))
		}
	})
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")
	alive := CreateEntity(w)
	dead := CreateEntity(w)
	DestroyEntity(w, dead)

	tests := []struct {
		name string
		add  func() error
		want error
	}{
		{"invalid_kind", func() error { return Add(w, alive, component.ComponentKind[int]{}, intPtr(1)) }, component.ErrInvalidComponentKind},
		{"nil_value", func() error { return Add(w, alive, h.Kind(), nil) }, component.ErrNilComponent},
		{"dead_entity", func() error { return Add(w, dead, h.Kind(), intPtr(1)) }, component.ErrEntityNotAlive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.add(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]("int")

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})
}

func TestForEach2(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	ka := component.NewComponentKind[int]("a")
	kb := component.NewComponentKind[int]("b")

	for _, add := range []error{
		Add(w, e1, ka, intPtr(1)),
		Add(w, e2, ka, intPtr(2)),
		Add(w, e2, kb, intPtr(3)),
		Add(w, e3, kb, intPtr(4)),
	} {
		if add != nil {
			t.Fatal(add)
		}
	}

	var res []Entity
	ForEach2(w, ka, kb, func(e Entity, a *int, b *int) {
		if *a != 2 || *b != 3 {
			t.Fatalf("unexpected values %d %d", *a, *b)
		}
		res = append(res, e)
	})
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]("a")
				kb := component.NewComponentKind[string]("b")

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, stringPtr("x")); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, stringPtr("y")); err != nil {
					t.Fatal(err)
				}

				res := Query(w, ka, kb)
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := component.NewComponentKind[int]("a")
				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}
				if res := Query(w, ka); len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := component.NewComponentKind[int]("a")
				kb := component.NewComponentKind[int]("b")
				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if res := Query(w, ka, kb); res != nil {
					t.Fatalf("expected nil when other store missing, got %v", res)
				}
			},
		},
		{
			name: "insertion_order",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]("a")
				var want []Entity
				for i := 0; i < 4; i++ {
					e := CreateEntity(w)
					if err := Add(w, e, ka, intPtr(i)); err != nil {
						t.Fatal(err)
					}
					want = append(want, e)
				}
				res := Query(w, ka)
				for i := range want {
					if res[i] != want[i] {
						t.Fatalf("expected %v, got %v", want, res)
					}
				}
				first, ok := First(w, ka)
				if !ok || first != want[0] {
					t.Fatalf("expected first %s, got %s ok=%v", want[0], first, ok)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

type countingSystem struct {
	calls *[]string
	name  string
}

func (s countingSystem) Update(*World) {
	*s.calls = append(*s.calls, s.name)
}

func TestScheduler(t *testing.T) {
	w := NewWorld()
	var calls []string
	s := NewScheduler(countingSystem{&calls, "a"}, nil, countingSystem{&calls, "b"})
	if len(s.Systems()) != 2 {
		t.Fatalf("nil systems should be skipped, got %d", len(s.Systems()))
	}

	s.Update(w)
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("expected [a b], got %v", calls)
	}

	s.Stop()
	s.Update(w)
	if len(calls) != 2 {
		t.Fatalf("stopped scheduler must not run systems, got %v", calls)
	}
	if !s.Stopped() {
		t.Fatalf("expected scheduler to report stopped")
	}
}
