package ecs

import (
	"reflect"
	"testing"
)

type testPosition struct {
	X, Y float64
}

type testVelocity struct {
	DX, DY float64
}

func TestCreateEntityAssignsUniqueIDs(t *testing.T) {
	em := NewEntityManager()

	a := em.CreateEntity()
	b := em.CreateEntity()

	if a == 0 || b == 0 {
		t.Error("entity id 0 is reserved as invalid")
	}
	if a == b {
		t.Errorf("ids not unique: %d == %d", a, b)
	}
}

func TestAddGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	pos := &testPosition{X: 3, Y: 4}

	em.AddComponent(id, pos)

	got, ok := GetComponent[*testPosition](em, id)
	if !ok {
		t.Fatal("component not found")
	}
	if got != pos {
		t.Error("returned a different instance")
	}

	if _, ok := GetComponent[*testVelocity](em, id); ok {
		t.Error("found a component that was never added")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPosition{})

	posType := reflect.TypeOf(&testPosition{})
	if !em.HasComponent(id, posType) {
		t.Error("HasComponent false after add")
	}

	em.RemoveComponent(id, posType)
	if em.HasComponent(id, posType) {
		t.Error("HasComponent true after remove")
	}
}

func TestGetEntitiesWithFiltersByAllTypes(t *testing.T) {
	em := NewEntityManager()

	both := em.CreateEntity()
	em.AddComponent(both, &testPosition{})
	em.AddComponent(both, &testVelocity{})

	posOnly := em.CreateEntity()
	em.AddComponent(posOnly, &testPosition{})

	got := GetEntitiesWith2[*testPosition, *testVelocity](em)
	if len(got) != 1 || got[0] != both {
		t.Errorf("GetEntitiesWith2: got %v, want [%d]", got, both)
	}

	if n := len(GetEntitiesWith1[*testPosition](em)); n != 2 {
		t.Errorf("GetEntitiesWith1: got %d entities, want 2", n)
	}
}

func TestDeferredDestroy(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPosition{})

	em.DestroyEntity(id)

	// Still queryable until cleanup runs.
	if _, ok := GetComponent[*testPosition](em, id); !ok {
		t.Error("entity vanished before RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()
	if _, ok := GetComponent[*testPosition](em, id); ok {
		t.Error("entity survived RemoveMarkedEntities")
	}
}

func TestAddComponentToUnknownEntity(t *testing.T) {
	em := NewEntityManager()

	// Never created: silently ignored, never queryable.
	em.AddComponent(EntityID(999), &testPosition{})
	if _, ok := GetComponent[*testPosition](em, EntityID(999)); ok {
		t.Error("component attached to unknown entity")
	}
}
