package lsmnode_test

import (
	"testing"

	"github.com/Giulio2002/lsmnode"
	"github.com/Giulio2002/lsmnode/pagestore"
)

// Scenario 5: fill a leaf until an insert would no longer fit, then
// split it with MoveTailTo.
func TestTailMoveSplitsLeaf(t *testing.T) {
	n := newLeaf(t, testPageBytes)
	s, err := n.Write(pagestore.Noop)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	var filled uint32
	for k := uint32(1); ; k++ {
		full := s.FullEntrySize(4, 4)
		if !s.DeltaFits(full) {
			break
		}
		s.InsertValue(s.IndexOf(k), k, 4, k, 4)
		filled = k
	}
	nInserted := filled // number of keys inserted, keys are 1..filled

	l := s.CountEntriesToMoveUntilHalfFree()
	if l <= 0 || l > s.Size() {
		t.Fatalf("CountEntriesToMoveUntilHalfFree() = %d, want in (0, %d]", l, s.Size())
	}

	dst := newLeaf(t, testPageBytes)
	ds, err := dst.Write(pagestore.Noop)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	defer ds.Close()

	oldSize := s.Size()
	oldFree := s.GetFreeBytes()
	s.MoveTailTo(ds, l)
	defer s.Close()

	if got, want := s.Size(), oldSize-l; got != want {
		t.Fatalf("this.Size() after move = %d, want %d", got, want)
	}
	if got := ds.Size(); got != l {
		t.Fatalf("dst.Size() after move = %d, want %d", got, l)
	}
	if s.GetFreeBytes() <= oldFree {
		t.Fatalf("this.GetFreeBytes() after move = %d, want > %d", s.GetFreeBytes(), oldFree)
	}

	lastThis, err := s.KeyAt(s.Size() - 1)
	if err != nil {
		t.Fatalf("KeyAt: %v", err)
	}
	firstDst, err := ds.KeyAt(0)
	if err != nil {
		t.Fatalf("KeyAt: %v", err)
	}
	if lastThis.(uint32) >= firstDst.(uint32) {
		t.Fatalf("this's last key %v is not less than dst's first key %v", lastThis, firstDst)
	}

	// concatenation of this then dst keys equals original key sequence 1..nInserted
	var all []uint32
	for i := 0; i < s.Size(); i++ {
		k, _ := s.KeyAt(i)
		all = append(all, k.(uint32))
	}
	for i := 0; i < ds.Size(); i++ {
		k, _ := ds.KeyAt(i)
		all = append(all, k.(uint32))
	}
	if uint32(len(all)) != nInserted {
		t.Fatalf("got %d keys after split, want %d", len(all), nInserted)
	}
	for i, k := range all {
		if k != uint32(i+1) {
			t.Fatalf("all[%d] = %d, want %d", i, k, i+1)
		}
	}
}

func TestCloneFromByteIdentical(t *testing.T) {
	srcBuf := pagestore.NewMemBuffer(testPageBytes, 0)
	src := lsmnode.Bind(srcBuf, u32Cmp)
	cs := src.CreateSession(pagestore.Noop)
	if err := cs.Create(true, lsmnode.EncodersVersionDefault); err != nil {
		t.Fatalf("Create: %v", err)
	}
	cs.Close()
	ss, err := src.Write(pagestore.Noop)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	for _, k := range []uint32{1, 2, 3} {
		ss.InsertValue(ss.IndexOf(k), k, 4, k*10, 4)
	}
	ss.Close()

	dstBuf := pagestore.NewMemBuffer(testPageBytes, 1)
	dst := lsmnode.Bind(dstBuf, u32Cmp)
	cs = dst.CreateSession(pagestore.Noop)
	if err := cs.Create(true, lsmnode.EncodersVersionDefault); err != nil {
		t.Fatalf("Create: %v", err)
	}
	cs.Close()
	ds, err := dst.Write(pagestore.Noop)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	rs, err := src.Read(pagestore.Noop)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := ds.CloneFrom(rs); err != nil {
		t.Fatalf("CloneFrom: %v", err)
	}
	rs.Close()

	if string(dstBuf.Read(0, testPageBytes)) != string(srcBuf.Read(0, testPageBytes)) {
		t.Fatalf("page bytes differ after CloneFrom")
	}

	if got, want := ds.Size(), 3; got != want {
		t.Fatalf("Size() after clone = %d, want %d", got, want)
	}
	for i := 0; i < 3; i++ {
		k, err := ds.KeyAt(i)
		if err != nil || k.(uint32) != uint32(i+1) {
			t.Fatalf("KeyAt(%d) after clone = %v, %v, want %d", i, k, err, i+1)
		}
	}
	ds.Close()
}
