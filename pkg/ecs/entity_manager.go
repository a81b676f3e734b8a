// Package ecs provides a minimal entity/component store. Components are
// plain data; all behavior lives in systems that query the manager each
// frame.
package ecs

import "reflect"

// EntityID uniquely identifies an entity. 0 is reserved as invalid.
type EntityID uint64

// EntityManager owns all entities and their components.
type EntityManager struct {
	nextID uint64

	// EntityID -> component type -> component instance
	components map[EntityID]map[reflect.Type]interface{}

	// Entities marked for deferred removal.
	entitiesToDestroy []EntityID
}

// NewEntityManager creates an empty manager.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1,
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity allocates a new entity and returns its id.
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// DestroyEntity marks an entity for removal. The entity stays queryable
// until RemoveMarkedEntities runs, so systems iterating this frame see a
// consistent view.
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// AddComponent attaches a component instance to an entity.
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent detaches the component of the given type.
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponentByType returns the entity's component of the given type.
func (em *EntityManager) GetComponentByType(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent reports whether the entity carries the given type.
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities drops every entity passed to DestroyEntity since
// the last call.
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// GetEntitiesWith returns the ids of all entities carrying every listed
// component type. Order is unspecified.
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	return result
}

// GetComponent is the typed accessor systems should prefer: it avoids
// spelling out reflect.TypeOf at every call site. T is the component's
// pointer type, e.g. GetComponent[*components.AnimationComponent](em, id).
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponentByType(id, reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// GetEntitiesWith1 returns all entities carrying a component of type T.
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeFor[T]())
}

// GetEntitiesWith2 returns all entities carrying components of both
// types.
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeFor[T1](), reflect.TypeFor[T2]())
}
