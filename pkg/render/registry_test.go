package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/retain/pkg/vdom"
)

func TestRegistryAdopt(t *testing.T) {
	reg := NewRegistry()
	a, b := vdom.Div(), vdom.Text("x")

	reg.Adopt(a)
	reg.Adopt(b)
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("IDs = %d, %d; want 1, 2", a.ID, b.ID)
	}

	// Live entries keep their ID.
	a.Handle = 7
	if evicted := reg.Adopt(a); evicted != vdom.NoID || a.ID != 1 || a.Handle != 7 {
		t.Errorf("re-adopting a live node changed it: ID %d handle %d evicted %d", a.ID, a.Handle, evicted)
	}

	// Tombstoned entries start over under a new ID.
	a.Tombstone = true
	if evicted := reg.Adopt(a); evicted != 1 {
		t.Errorf("evicted = %d, want 1", evicted)
	}
	if a.ID != 3 || a.Tombstone || a.Handle != 0 {
		t.Errorf("re-adopted node = ID %d tombstone %v handle %d", a.ID, a.Tombstone, a.Handle)
	}
	if reg.Get(1) != nil {
		t.Error("old entry still registered")
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}

func TestRegistryAdoptForeignNode(t *testing.T) {
	other, reg := NewRegistry(), NewRegistry()
	n := vdom.Div()
	other.Adopt(n)
	other.Adopt(vdom.Div())
	other.Adopt(n) // no-op

	reg.Adopt(vdom.Div())
	reg.Adopt(vdom.Div())
	reg.Adopt(n)
	if n.ID != 3 || reg.Get(3) != n {
		t.Errorf("foreign node got ID %d", n.ID)
	}
}

func TestRegistryCollect(t *testing.T) {
	reg := NewRegistry()
	nodes := make([]*vdom.Node, 5)
	for i := range nodes {
		nodes[i] = vdom.Text("n")
		reg.Adopt(nodes[i])
	}
	nodes[1].Tombstone = true
	nodes[3].Tombstone = true

	if _, swept := reg.Collect(5); swept {
		t.Error("Collect(5) swept a registry of 5")
	}

	dead, swept := reg.Collect(4)
	if !swept {
		t.Fatal("Collect(4) did not sweep")
	}
	if diff := cmp.Diff([]vdom.ID{2, 4}, dead); diff != "" {
		t.Errorf("collected (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]vdom.ID{1, 3, 5}, reg.LiveIDs()); diff != "" {
		t.Errorf("LiveIDs (-want +got):\n%s", diff)
	}

	// IDs are never reused.
	n := vdom.Div()
	reg.Adopt(n)
	if n.ID != 6 {
		t.Errorf("new ID = %d, want 6", n.ID)
	}
}

func TestStateStore(t *testing.T) {
	s := NewStateStore()

	if v := s.Init(1, 0, "a"); v != "a" {
		t.Errorf("Init = %v, want a", v)
	}
	if v := s.Init(1, 0, "ignored"); v != "a" {
		t.Errorf("second Init = %v, want a", v)
	}

	s.Set(1, 2, 42)
	if v, ok := s.Get(1, 1); !ok || v != nil {
		t.Errorf("Get(1, 1) = %v, %v; want nil, true", v, ok)
	}
	if _, ok := s.Get(1, 3); ok {
		t.Error("Get(1, 3) reported a value")
	}

	s.Move(1, 9)
	if _, ok := s.Get(1, 0); ok {
		t.Error("slots still under the old ID")
	}
	if v, _ := s.Get(9, 2); v != 42 {
		t.Errorf("Get(9, 2) = %v, want 42", v)
	}

	s.Init(4, 0, true)
	if diff := cmp.Diff([]vdom.ID{4, 9}, s.IDs()); diff != "" {
		t.Errorf("IDs (-want +got):\n%s", diff)
	}

	s.Delete(9)
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
