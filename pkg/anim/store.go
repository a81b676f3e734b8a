package anim

// StoreObserver is notified after the clip store commits a batch of
// changes. Observers never see a partially-updated store: notification
// fires exactly once per batch, after every index has been updated.
type StoreObserver interface {
	AnimationsChanged()
}

// ClipStore owns the mapping from animation name to clip data and the
// reverse index from asset id to the names that asset contributed.
// A multi-resource asset registers each of its clips under its own name
// in a single atomic batch.
//
// Invariant: every name listed in the asset index has an entry in the
// name index.
type ClipStore struct {
	clips    map[string]*Clip
	byAsset  map[string][]string
	observer StoreObserver
}

// NewClipStore creates an empty clip store.
func NewClipStore() *ClipStore {
	return &ClipStore{
		clips:   make(map[string]*Clip),
		byAsset: make(map[string][]string),
	}
}

// SetObserver installs the observer notified after each committed batch.
// Pass nil to remove it.
func (s *ClipStore) SetObserver(o StoreObserver) {
	s.observer = o
}

// Register inserts or overwrites a single clip contributed by assetID.
// Equivalent to a one-element RegisterBatch.
func (s *ClipStore) Register(assetID string, clip *Clip) {
	s.RegisterBatch(assetID, []*Clip{clip})
}

// RegisterBatch inserts or overwrites all clips contributed by assetID as
// one atomic batch: every index is updated before the observer is
// notified. Clips registered by the same asset under a previous batch
// are kept; names colliding with clips from other assets are taken over.
func (s *ClipStore) RegisterBatch(assetID string, clips []*Clip) {
	if len(clips) == 0 {
		return
	}
	names := s.byAsset[assetID]
	for _, c := range clips {
		if c == nil || c.Name() == "" {
			continue
		}
		s.clips[c.Name()] = c
		if !containsName(names, c.Name()) {
			names = append(names, c.Name())
		}
	}
	s.byAsset[assetID] = names
	s.notify()
}

// UnregisterAsset removes every clip the asset contributed and returns
// the removed names. The removal is atomic with respect to the observer.
// Names that were since taken over by another asset are left in place.
func (s *ClipStore) UnregisterAsset(assetID string) []string {
	names, ok := s.byAsset[assetID]
	if !ok {
		return nil
	}
	delete(s.byAsset, assetID)

	removed := make([]string, 0, len(names))
	for _, name := range names {
		if s.ownedElsewhere(assetID, name) {
			continue
		}
		delete(s.clips, name)
		removed = append(removed, name)
	}
	if len(removed) > 0 {
		s.notify()
	}
	return removed
}

// Lookup returns the clip registered under name.
func (s *ClipStore) Lookup(name string) (*Clip, error) {
	c, ok := s.clips[name]
	if !ok {
		return nil, ErrUnknownAnimation
	}
	return c, nil
}

// Has reports whether name is registered.
func (s *ClipStore) Has(name string) bool {
	_, ok := s.clips[name]
	return ok
}

// AssetNames returns the names contributed by assetID, or nil.
func (s *ClipStore) AssetNames(assetID string) []string {
	return s.byAsset[assetID]
}

// Len returns the number of registered clips.
func (s *ClipStore) Len() int {
	return len(s.clips)
}

func (s *ClipStore) notify() {
	if s.observer != nil {
		s.observer.AnimationsChanged()
	}
}

// ownedElsewhere reports whether another asset currently claims name.
func (s *ClipStore) ownedElsewhere(assetID, name string) bool {
	for id, names := range s.byAsset {
		if id == assetID {
			continue
		}
		if containsName(names, name) {
			return true
		}
	}
	return false
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
