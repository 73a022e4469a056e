package light

import "testing"

func newTestStore() *Store {
	return NewStore([]Light{
		NewLight(0, WithTag("center"), WithIntensity(1000), WithIntensityBounds(200, 2000)),
		NewLight(1, WithTag("fill"), WithIntensity(500), WithIntensityBounds(100, 1000)),
	})
}

func TestStoreGet(t *testing.T) {
	s := newTestStore()
	l, ok := s.Get(1)
	if !ok || l.Tag != "fill" {
		t.Fatalf("Get(1) = %v, %v", l, ok)
	}
	if _, ok := s.Get(9); ok {
		t.Errorf("Get(9) should miss")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStoreStartsDirty(t *testing.T) {
	s := newTestStore()
	if !s.Dirty() {
		t.Fatal("new store should be dirty so the first frame uploads")
	}
	s.ClearDirty()
	if s.Dirty() {
		t.Fatal("ClearDirty did not clear")
	}
}

func TestStoreSetIntensityDirtyOnlyOnChange(t *testing.T) {
	s := newTestStore()
	s.ClearDirty()

	if got, ok := s.SetIntensity(0, 1000); !ok || got != 1000 {
		t.Fatalf("SetIntensity same value = %v, %v", got, ok)
	}
	if s.Dirty() {
		t.Error("unchanged value should not mark the store dirty")
	}

	if got, _ := s.SetIntensity(0, 1500); got != 1500 {
		t.Fatalf("SetIntensity = %v, want 1500", got)
	}
	if !s.Dirty() {
		t.Error("changed value should mark the store dirty")
	}
}

func TestStoreSetIntensityClampsOutOfRange(t *testing.T) {
	s := newTestStore()
	for _, v := range []float32{-5, 0, 1e9} {
		got, _ := s.SetIntensity(0, v)
		if got < 200 || got > 2000 {
			t.Errorf("SetIntensity(%v) = %v escaped [200, 2000]", v, got)
		}
	}
}

func TestStoreSetIntensityUnknownID(t *testing.T) {
	s := newTestStore()
	s.ClearDirty()
	if _, ok := s.SetIntensity(42, 1); ok {
		t.Error("unknown id should report false")
	}
	if s.Dirty() {
		t.Error("unknown id should not dirty the store")
	}
}

func TestStoreSnapshotOrder(t *testing.T) {
	s := newTestStore()
	snap := s.Snapshot()
	if len(snap) != 2 || snap[0].ID != 0 || snap[1].ID != 1 {
		t.Fatalf("snapshot order = %+v", snap)
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := newTestStore()
	s.ClearDirty()

	l, _ := s.Get(0)
	l.Intensity = 1900
	l.Position[0] = 9

	again, _ := s.Get(0)
	if again.Intensity != 1000 || again.Position[0] != 0 {
		t.Errorf("Get(0) after editing a copy = %+v", again)
	}
	if s.Dirty() {
		t.Error("editing a copy marked the store dirty")
	}
	if snap := s.Snapshot(); snap[0].Intensity != 1000 {
		t.Errorf("snapshot intensity = %v, want 1000", snap[0].Intensity)
	}
}
