package lsmnode_test

import (
	"testing"

	"github.com/Giulio2002/lsmnode"
	"github.com/Giulio2002/lsmnode/codec"
	"github.com/Giulio2002/lsmnode/pagestore"
)

const testPageBytes = 1024

func init() {
	lsmnode.RegisterEncoderVersion(lsmnode.EncodersVersionDefault, lsmnode.EncoderSet{
		Key:          codec.U32BE{},
		Value:        codec.U32BE{},
		PagePointer:  codec.U64BE{},
		PagePosition: codec.U32BE{},
	})
}

func u32Cmp(a, b any) int {
	x, y := a.(uint32), b.(uint32)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func newLeaf(t *testing.T, pageBytes int) *lsmnode.Node {
	t.Helper()
	buf := pagestore.NewMemBuffer(pageBytes, 0)
	n := lsmnode.Bind(buf, u32Cmp)
	s := n.CreateSession(pagestore.Noop)
	if err := s.Create(true, lsmnode.EncodersVersionDefault); err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Close()
	return n
}

func newInternal(t *testing.T, pageBytes int) *lsmnode.Node {
	t.Helper()
	buf := pagestore.NewMemBuffer(pageBytes, 1)
	n := lsmnode.Bind(buf, u32Cmp)
	s := n.CreateSession(pagestore.Noop)
	if err := s.Create(false, lsmnode.EncodersVersionDefault); err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Close()
	return n
}

// Scenario 1: create-leaf.
func TestCreateLeaf(t *testing.T) {
	n := newLeaf(t, testPageBytes)
	s, err := n.Read(pagestore.Noop)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer s.Close()

	if s.Size() != 0 {
		t.Errorf("Size() = %d, want 0", s.Size())
	}
	if !s.IsLeaf() {
		t.Errorf("IsLeaf() = false, want true")
	}
	if got, want := s.GetFreeBytes(), testPageBytes-56; got != want {
		t.Errorf("GetFreeBytes() = %d, want %d", got, want)
	}
}

// Scenario 2: leaf round-trip.
func TestLeafRoundTrip(t *testing.T) {
	n := newLeaf(t, testPageBytes)
	s, err := n.Write(pagestore.Noop)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	inserts := []uint32{1, 3, 2}
	for _, k := range inserts {
		r := s.IndexOf(k)
		if !lsmnode.IsInsertionPoint(r) {
			t.Fatalf("IndexOf(%d) = %d, want a miss before insert", k, r)
		}
		s.InsertValue(r, k, 4, k*10, 4)
	}
	s.Close()

	s, err = n.Read(pagestore.Noop)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer s.Close()

	r := s.IndexOf(uint32(2))
	if r != 1 {
		t.Fatalf("IndexOf(2) = %d, want 1", r)
	}
	v, err := s.ValueAt(1)
	if err != nil || v.(uint32) != 20 {
		t.Fatalf("ValueAt(1) = %v, %v, want 20, nil", v, err)
	}

	var keys []uint32
	for i := 0; i < s.Size(); i++ {
		k, err := s.KeyAt(i)
		if err != nil {
			t.Fatalf("KeyAt(%d): %v", i, err)
		}
		keys = append(keys, k.(uint32))
	}
	want := []uint32{1, 2, 3}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

// Scenario 3: leaf delete middle.
func TestLeafDeleteMiddle(t *testing.T) {
	n := newLeaf(t, testPageBytes)
	s, err := n.Write(pagestore.Noop)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	for _, k := range []uint32{1, 3, 2} {
		s.InsertValue(s.IndexOf(k), k, 4, k*10, 4)
	}
	freeBeforeDelete := s.GetFreeBytes()
	recordSize := (testPageBytes - 56 - s.GetFreeBytes()) / s.Size()

	s.Delete(1, 4, 4)

	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}
	k0, _ := s.KeyAt(0)
	k1, _ := s.KeyAt(1)
	if k0.(uint32) != 1 || k1.(uint32) != 3 {
		t.Fatalf("keys after delete = %v, %v, want 1, 3", k0, k1)
	}
	if got, want := s.GetFreeBytes(), freeBeforeDelete+recordSize; got != want {
		t.Fatalf("GetFreeBytes() after delete = %d, want %d", got, want)
	}
	s.Close()
}

// Scenario 4: internal insert with marker.
func TestInternalInsertWithMarker(t *testing.T) {
	n := newInternal(t, testPageBytes)
	s, err := n.Write(pagestore.Noop)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	defer s.Close()

	s.SetLeftPointer(100)
	s.InsertPointer(s.IndexOf(uint32(5)), uint32(5), 4, 200, 7, 3)

	if got := s.PointerAt(-1); got != 100 {
		t.Fatalf("PointerAt(-1) = %d, want 100", got)
	}
	if got := s.PointerAt(0); got != 200 {
		t.Fatalf("PointerAt(0) = %d, want 200", got)
	}
	m := s.MarkerAt(0)
	if m.BlockIndex != 7 || m.PagesUsed != 3 {
		t.Fatalf("MarkerAt(0) = %+v, want {BlockIndex:7 PagesUsed:3}", m)
	}
}
