package ecs

import (
	"testing"

	"github.com/milk9111/roomcam/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
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
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for dead entity")
				}
			}
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := w.CreateEntity()
	if err := Add(w, old, h, 1); err != nil {
		t.Fatal(err)
	}
	w.DestroyEntity(old)

	reused := w.CreateEntity()
	if reused.id() != old.id() {
		t.Fatalf("expected id reuse, got %v and %v", old, reused)
	}
	if reused == old {
		t.Fatalf("reused handle must differ by generation")
	}
	if Has(w, reused, h) {
		t.Fatalf("components must not survive destruction")
	}
	if err := Add(w, reused, h, 2); err != nil {
		t.Fatal(err)
	}
	if _, ok := Get(w, old, h); ok {
		t.Fatalf("stale handle must not resolve")
	}
	if Remove(w, old, h) {
		t.Fatalf("stale handle must not remove the new owner's component")
	}
	if err := Add(w, old, h, 3); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if v, _ := Get(w, reused, h); v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1)
				if !ok || v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2, "a"); err != nil {
					return err
				}
				return Add(w, e2, h2, "b")
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2) || !Has(w, e2, h2) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h2) },
		},
		{
			name:  "update_in_place",
			setup: func() error { return Add(w, e2, h1, 1) },
			check: func(t *testing.T) {
				if !Update(w, e2, h1, func(v *int) { *v += 41 }) {
					t.Fatalf("update failed")
				}
				if v, _ := Get(w, e2, h1); v != 42 {
					t.Fatalf("expected 42, got %d", v)
				}
				if Update(w, e1, h1, func(v *int) {}) {
					t.Fatalf("update of a missing component must fail")
				}
			},
			teardown: func() bool { return Remove(w, e2, h1) },
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
				e1 := w.CreateEntity()
				e2 := w.CreateEntity()
				e3 := w.CreateEntity()

				ka := component.NewComponent[int]()
				kb := component.NewComponent[int]()

				if err := Add(w, e1, ka, 1); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, 2); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, 3); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, 4); err != nil {
					t.Fatal(err)
				}

				res := w.Query(ka.Kind(), kb.Kind())
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := w.CreateEntity()
				ka := component.NewComponent[int]()
				if err := Add(w, e, ka, 1); err != nil {
					t.Fatal(err)
				}
				if !w.DestroyEntity(e) {
					t.Fatal("failed to destroy entity")
				}
				if res := w.Query(ka.Kind()); len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
				if _, ok := w.First(ka.Kind()); ok {
					t.Fatalf("First must skip dead entities")
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := w.CreateEntity()
				ka := component.NewComponent[int]()
				kb := component.NewComponent[int]()
				if err := Add(w, e, ka, 1); err != nil {
					t.Fatal(err)
				}
				if res := w.Query(ka.Kind(), kb.Kind()); len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
		{
			name: "first",
			run: func(t *testing.T) {
				w := NewWorld()
				w.CreateEntity()
				e := w.CreateEntity()
				ka := component.NewComponent[string]()
				if err := Add(w, e, ka, "x"); err != nil {
					t.Fatal(err)
				}
				got, ok := w.First(ka.Kind())
				if !ok || got != e {
					t.Fatalf("expected %v, got %v ok=%v", e, got, ok)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestWorldUpdateAdvancesClockAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	var seen []uint64
	var queued int
	w.AddSystem(SystemFunc(func(w *World) {
		seen = append(seen, w.Clock().Ticks())
		w.Events().Push(Event{Type: "tick"})
	}))
	w.AddSystem(SystemFunc(func(w *World) {
		queued = w.Events().Len()
	}))

	for i := 0; i < 3; i++ {
		w.Update()
		if queued != 1 {
			t.Fatalf("events must be flushed between updates, saw %d", queued)
		}
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Fatalf("unexpected ticks %v", seen)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("expected empty queue after update")
	}
}

func TestClockNow(t *testing.T) {
	c := NewClock(60)
	for i := 0; i < 60; i++ {
		c.Advance()
	}
	if c.Now() != 1000 {
		t.Fatalf("expected 1000ms after 60 ticks, got %d", c.Now())
	}
	if NewClock(0).tps != DefaultTPS {
		t.Fatalf("expected default tps")
	}
}
