package anim

import "log"

// AssetResource is an asset's resolved contribution: one or more named
// clips (a multi-take file contributes each take under its own name).
type AssetResource struct {
	ID    string
	Clips []*Clip
}

// AssetSubscriber receives lifecycle notifications for a tracked asset.
// Notifications are delivered synchronously on the engine's thread as a
// side effect of the external loader completing work.
type AssetSubscriber interface {
	// AssetReady fires when an asset's resources finish resolving.
	AssetReady(res *AssetResource)

	// AssetChanged fires when a resource is swapped in place, e.g.,
	// after a re-import. Both the old and new resolutions are supplied.
	AssetChanged(old, new *AssetResource)

	// AssetRemoved fires when the asset is unloaded or deleted.
	AssetRemoved(res *AssetResource)
}

// AssetProvider is the external asset system at its interface boundary.
// It is always passed in explicitly; the engine never reaches for
// ambient registries.
type AssetProvider interface {
	// Get returns the asset's resolved resource, if available.
	Get(id string) (*AssetResource, bool)

	// Load requests resolution of an asset. Completion is reported via
	// the AssetReady subscription; a never-ready asset simply never
	// contributes clips.
	Load(id string)

	// Subscribe registers s for the asset's lifecycle events.
	Subscribe(id string, s AssetSubscriber)

	// Unsubscribe removes s from the asset's lifecycle events.
	Unsubscribe(id string, s AssetSubscriber)
}

// BindingManager keeps the ClipStore and the currently-playing animation
// consistent with external asset lifecycle events, without visible
// glitches. It owns the set of tracked asset ids and the subscription
// lifecycle for each.
type BindingManager struct {
	provider   AssetProvider
	store      *ClipStore
	controller *Controller
	assets     []string
}

// NewBindingManager wires a binding manager to its collaborators. The
// provider is required; store and controller are the engine components
// the manager keeps consistent. The manager installs itself as the
// store's observer so clip replacements are noticed no matter which
// event committed them.
func NewBindingManager(provider AssetProvider, store *ClipStore, controller *Controller) *BindingManager {
	if provider == nil {
		panic("anim: binding manager requires an asset provider")
	}
	m := &BindingManager{
		provider:   provider,
		store:      store,
		controller: controller,
	}
	store.SetObserver(m)
	return m
}

// Assets returns the ordered list of tracked asset ids.
func (m *BindingManager) Assets() []string {
	return m.assets
}

// SetAssets replaces the tracked asset set. Ids no longer tracked are
// unsubscribed first (stopping playback if the current animation came
// from one of them), then new ids are subscribed and load is requested
// for any not yet resolved.
func (m *BindingManager) SetAssets(ids []string) {
	next := make(map[string]bool, len(ids))
	for _, id := range ids {
		next[id] = true
	}

	for _, id := range m.assets {
		if next[id] {
			continue
		}
		m.provider.Unsubscribe(id, m)
		removed := m.store.UnregisterAsset(id)
		m.stopIfCurrentRemoved(removed)
	}

	prev := make(map[string]bool, len(m.assets))
	for _, id := range m.assets {
		prev[id] = true
	}
	m.assets = append([]string(nil), ids...)

	for _, id := range ids {
		if prev[id] {
			continue
		}
		m.provider.Subscribe(id, m)
		if res, ok := m.provider.Get(id); ok {
			m.AssetReady(res)
		} else {
			m.provider.Load(id)
		}
	}
}

// Close unsubscribes from every tracked asset and stops playback. Used
// when the owning entity is destroyed.
func (m *BindingManager) Close() {
	for _, id := range m.assets {
		m.provider.Unsubscribe(id, m)
	}
	m.assets = nil
	m.controller.Stop()
}

// AssetReady registers the asset's clips and applies the auto-activation
// rule: when nothing is playing yet, activateOnLoad is set, and the
// controller is enabled, the first newly available clip starts with zero
// blend.
func (m *BindingManager) AssetReady(res *AssetResource) {
	if res == nil || len(res.Clips) == 0 {
		return
	}
	m.store.RegisterBatch(res.ID, res.Clips)

	c := m.controller
	if c.CurrentAnimation() == "" && c.ActivateOnLoad() && c.Enabled() {
		if err := c.Play(res.Clips[0].Name(), 0); err != nil {
			log.Printf("[BindingManager] Warning: auto-activate of %q failed: %v", res.Clips[0].Name(), err)
		}
	}
}

// AssetChanged atomically swaps the asset's contribution: the old names
// are unregistered, the new set registered. The store observer restarts
// playback of the current animation when its name still resolves after
// the swap, so no reference to stale clip data survives; what remains
// here is stopping when the swap dropped the name entirely.
func (m *BindingManager) AssetChanged(old, new *AssetResource) {
	playing := m.controller.CurrentAnimation()

	var removed []string
	if old != nil {
		removed = m.store.UnregisterAsset(old.ID)
	}
	if new != nil && len(new.Clips) > 0 {
		m.store.RegisterBatch(new.ID, new.Clips)
	}

	if playing != "" && containsName(removed, playing) && !m.store.Has(playing) {
		m.controller.Stop()
	}
}

// AssetRemoved unregisters every name the asset contributed and stops
// playback if the current animation was among them.
func (m *BindingManager) AssetRemoved(res *AssetResource) {
	if res == nil {
		return
	}
	removed := m.store.UnregisterAsset(res.ID)
	m.stopIfCurrentRemoved(removed)
}

func (m *BindingManager) stopIfCurrentRemoved(removed []string) {
	current := m.controller.CurrentAnimation()
	if current != "" && containsName(removed, current) {
		m.controller.Stop()
	}
}

// AnimationsChanged runs after every clip store batch commit. When the
// commit replaced the clip instance behind the currently-playing name
// (another asset took the name over), playback restarts in place with
// zero blend; otherwise the backend would keep sampling the stale clip
// while lookups resolve to the new one.
func (m *BindingManager) AnimationsChanged() {
	name := m.controller.CurrentAnimation()
	if name == "" {
		return
	}
	next, err := m.store.Lookup(name)
	if err != nil {
		// The name is gone mid-swap; the asset event that removed it
		// decides whether playback stops.
		return
	}
	if next == m.controller.currentClip {
		return
	}
	if err := m.controller.Play(name, 0); err != nil {
		m.controller.Stop()
	}
}

var (
	_ AssetSubscriber = (*BindingManager)(nil)
	_ StoreObserver   = (*BindingManager)(nil)
)
