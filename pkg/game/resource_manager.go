// Package game provides the concrete collaborators around the animation
// engine core: the clip resource manager (the engine's asset provider)
// and persisted playback settings.
package game

import (
	"fmt"
	"log"

	"github.com/gonewx/animkit/internal/clipfile"
	"github.com/gonewx/animkit/pkg/anim"
)

// ResourceManager is responsible for centralized management of clip
// assets. It loads clip files named by a YAML manifest, caches the
// resolved clips, and delivers asset lifecycle events (ready, changed,
// removed) to subscribers. It is the anim.AssetProvider implementation
// the BindingManager consumes.
//
// All notification is synchronous: Load, Reload, and Remove fire their
// events on the caller's goroutine before returning.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use
// standard Go maps. The engine is single-threaded and frame-driven, so
// no synchronization is needed; callers that load from multiple
// goroutines must synchronize externally.
type ResourceManager struct {
	config *ResourceConfig

	// Resolved clip resources: asset id -> resource
	cache map[string]*anim.AssetResource

	// Per-asset event subscribers
	subscribers map[string][]anim.AssetSubscriber
}

// NewResourceManager creates a manager over a parsed manifest.
//
// Parameters:
//   - config: The clip asset manifest. Must not be nil.
//
// Returns:
//   - A pointer to a newly initialized ResourceManager with empty caches.
func NewResourceManager(config *ResourceConfig) *ResourceManager {
	if config == nil {
		panic("game: resource manager requires a manifest")
	}
	return &ResourceManager{
		config:      config,
		cache:       make(map[string]*anim.AssetResource),
		subscribers: make(map[string][]anim.AssetSubscriber),
	}
}

// Get returns the asset's resolved resource, if it has been loaded.
func (rm *ResourceManager) Get(id string) (*anim.AssetResource, bool) {
	res, ok := rm.cache[id]
	return res, ok
}

// Load resolves a clip asset and notifies subscribers that it is ready.
// Already-loaded assets are served from cache without re-reading the
// file. A failed load is logged and the asset simply stays unresolved;
// no event fires.
func (rm *ResourceManager) Load(id string) {
	if _, ok := rm.cache[id]; ok {
		return
	}

	res, err := rm.resolve(id)
	if err != nil {
		log.Printf("[ResourceManager] Warning: failed to load clip asset %q: %v", id, err)
		return
	}
	rm.cache[id] = res

	for _, s := range rm.subscribers[id] {
		s.AssetReady(res)
	}
}

// Reload re-reads a clip asset from disk and notifies subscribers with
// both the old and new resolutions, mirroring an asset re-import. A
// reload of an asset that was never loaded behaves like Load.
//
// Returns:
//   - error: The resolution error, if re-reading the file failed. The
//     previously cached resource stays in place on failure.
func (rm *ResourceManager) Reload(id string) error {
	old, wasLoaded := rm.cache[id]
	if !wasLoaded {
		rm.Load(id)
		return nil
	}

	next, err := rm.resolve(id)
	if err != nil {
		return fmt.Errorf("failed to reload clip asset %q: %w", id, err)
	}
	rm.cache[id] = next

	for _, s := range rm.subscribers[id] {
		s.AssetChanged(old, next)
	}
	return nil
}

// Remove drops a clip asset from the cache and notifies subscribers.
// Removing an unknown asset is a no-op.
func (rm *ResourceManager) Remove(id string) {
	old, ok := rm.cache[id]
	if !ok {
		return
	}
	delete(rm.cache, id)

	for _, s := range rm.subscribers[id] {
		s.AssetRemoved(old)
	}
}

// Subscribe registers s for the asset's lifecycle events.
func (rm *ResourceManager) Subscribe(id string, s anim.AssetSubscriber) {
	rm.subscribers[id] = append(rm.subscribers[id], s)
}

// Unsubscribe removes s from the asset's lifecycle events.
func (rm *ResourceManager) Unsubscribe(id string, s anim.AssetSubscriber) {
	list := rm.subscribers[id]
	for i, sub := range list {
		if sub == s {
			rm.subscribers[id] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Topology returns the joint hierarchy declared by a loaded clip asset,
// for allocating pose graph instances against it.
func (rm *ResourceManager) Topology(id string) ([]clipfile.JointDef, error) {
	path, ok := rm.config.ClipPath(id)
	if !ok {
		return nil, fmt.Errorf("unknown clip asset %q", id)
	}
	cf, err := clipfile.ParseClipFile(path)
	if err != nil {
		return nil, err
	}
	return cf.Joints, nil
}

// resolve parses the asset's clip file and converts every take into an
// engine clip.
func (rm *ResourceManager) resolve(id string) (*anim.AssetResource, error) {
	path, ok := rm.config.ClipPath(id)
	if !ok {
		return nil, fmt.Errorf("clip asset %q not in manifest", id)
	}

	cf, err := clipfile.ParseClipFile(path)
	if err != nil {
		return nil, err
	}

	clips := make([]*anim.Clip, 0, len(cf.Takes))
	for i := range cf.Takes {
		clips = append(clips, anim.NewClipFromTake(cf, &cf.Takes[i]))
	}
	return &anim.AssetResource{ID: id, Clips: clips}, nil
}

var _ anim.AssetProvider = (*ResourceManager)(nil)
