// Package systems implements the frame-driven behavior over the ECS
// component data.
package systems

import (
	"log"

	"github.com/gonewx/animkit/pkg/components"
	"github.com/gonewx/animkit/pkg/ecs"
)

// AnimationSystem drives every entity's playback controller once per
// frame: it executes pending play requests, keeps the controller bound
// to the entity's model graph, and advances playback time.
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem creates the per-frame animation driver.
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// Update is the external tick: one call per frame with the elapsed time
// in seconds.
func (s *AnimationSystem) Update(deltaTime float64) {
	s.processPlayRequests()

	entities := ecs.GetEntitiesWith2[*components.AnimationComponent, *components.ModelComponent](s.entityManager)
	for _, id := range entities {
		animComp, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		if !ok || animComp.Controller == nil {
			continue
		}
		model, _ := ecs.GetComponent[*components.ModelComponent](s.entityManager, id)

		s.syncBinding(animComp, model)
		animComp.Controller.Advance(deltaTime)
	}
}

// syncBinding keeps the controller's pose-graph binding consistent with
// the model component: attach binds (replaying the recorded animation),
// detach tears the backend down and stops playback.
func (s *AnimationSystem) syncBinding(animComp *components.AnimationComponent, model *components.ModelComponent) {
	c := animComp.Controller
	if model.Attached && model.Graph != nil {
		if c.Bound() != model.Graph {
			c.Rebind(model.Graph)
		}
	} else if c.Bound() != nil {
		c.Rebind(nil)
	}
}

// processPlayRequests executes all unprocessed PlayRequestComponents.
// Failures are logged and the request is still marked processed, so a
// bad name cannot retry every frame.
func (s *AnimationSystem) processPlayRequests() {
	entities := ecs.GetEntitiesWith2[*components.PlayRequestComponent, *components.AnimationComponent](s.entityManager)
	for _, id := range entities {
		req, ok := ecs.GetComponent[*components.PlayRequestComponent](s.entityManager, id)
		if !ok || req.Processed {
			continue
		}
		animComp, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		if !ok || animComp.Controller == nil {
			req.Processed = true
			continue
		}

		if err := animComp.Controller.Play(req.Name, req.BlendSeconds); err != nil {
			log.Printf("[AnimationSystem] play request failed: entity=%d, anim=%s, err=%v", id, req.Name, err)
		}
		req.Processed = true
	}
}
