package light

// Store owns the run-time state of every light in the scene.
//
// It has a single writer (the frame orchestrator) and is never accessed
// concurrently, so it carries no lock. SetIntensity marks the store dirty only
// when a stored value actually changes; the orchestrator uses that to skip
// re-uploading unchanged light data.
type Store struct {
	lights []Light
	byID   map[int]Light
	dirty  bool
}

// NewStore creates a Store holding the given lights in declaration order.
// The store starts dirty so the first frame always uploads light data.
//
// Parameters:
//   - lights: the lights created from the scene description
//
// Returns:
//   - *Store: the new store
func NewStore(lights []Light) *Store {
	s := &Store{
		lights: make([]Light, 0, len(lights)),
		byID:   make(map[int]Light, len(lights)),
		dirty:  true,
	}
	for _, l := range lights {
		s.lights = append(s.lights, l)
		s.byID[l.ID()] = l
	}
	return s
}

// Get returns a copy of the state of the light with the given ID. Changing the
// copy does not affect the store.
//
// Parameters:
//   - id: the light ID
//
// Returns:
//   - State: the light state, or the zero State
//   - bool: false if no light has that ID
func (s *Store) Get(id int) (State, bool) {
	l, ok := s.byID[id]
	if !ok {
		return State{}, false
	}
	return l.State(), true
}

// Len returns the number of lights in the store.
func (s *Store) Len() int {
	return len(s.lights)
}

// SetIntensity clamps value into the light's valid range and applies it.
// Unknown IDs are ignored.
//
// Parameters:
//   - id: the light ID
//   - value: the requested intensity
//
// Returns:
//   - float32: the intensity now held by the light
//   - bool: false if no light has that ID
func (s *Store) SetIntensity(id int, value float32) (float32, bool) {
	l, ok := s.byID[id]
	if !ok {
		return 0, false
	}
	before := l.Intensity()
	applied := l.SetIntensity(value)
	if applied != before {
		s.dirty = true
	}
	return applied, true
}

// Dirty reports whether any light changed since the last ClearDirty.
func (s *Store) Dirty() bool {
	return s.dirty
}

// ClearDirty resets the dirty flag after the renderer has consumed the state.
func (s *Store) ClearDirty() {
	s.dirty = false
}

// Snapshot copies the state of every light in declaration order.
//
// Returns:
//   - []State: one entry per light
func (s *Store) Snapshot() []State {
	out := make([]State, len(s.lights))
	for i, l := range s.lights {
		out[i] = l.State()
	}
	return out
}
