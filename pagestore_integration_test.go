package lsmnode_test

import (
	"path/filepath"
	"testing"

	"github.com/Giulio2002/lsmnode"
	"github.com/Giulio2002/lsmnode/pagestore"
)

// TestPagestoreIntegration exercises the node through the real
// mmap/latch path rather than the in-memory double the other tests
// use, so the on-page layout is verified against an actual page file.
func TestPagestoreIntegration(t *testing.T) {
	dir := t.TempDir()
	p, err := pagestore.New(filepath.Join(dir, "tree.db"), testPageBytes)
	if err != nil {
		t.Fatalf("pagestore.New: %v", err)
	}
	defer p.Close()

	pgno, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	buf, unlatch, err := p.Acquire(pgno, true)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	n := lsmnode.Bind(buf, u32Cmp)
	cs := n.CreateSession(unlatch)
	if err := cs.Create(true, lsmnode.EncodersVersionDefault); err != nil {
		t.Fatalf("Create: %v", err)
	}
	cs.Close()

	buf, unlatch, err = p.Acquire(pgno, true)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	n = lsmnode.Bind(buf, u32Cmp)
	s, err := n.Write(unlatch)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	for _, k := range []uint32{5, 1, 9, 3} {
		s.InsertValue(s.IndexOf(k), k, 4, k*100, 4)
	}
	s.Close()

	buf, unlatch, err = p.Acquire(pgno, false)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	n = lsmnode.Bind(buf, u32Cmp)
	s, err = n.Read(unlatch)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer s.Close()

	want := []uint32{1, 3, 5, 9}
	if s.Size() != len(want) {
		t.Fatalf("Size() = %d, want %d", s.Size(), len(want))
	}
	for i, k := range want {
		got, err := s.KeyAt(i)
		if err != nil || got.(uint32) != k {
			t.Fatalf("KeyAt(%d) = %v, %v, want %d", i, got, err, k)
		}
	}
	v, err := s.ValueAt(s.IndexOf(uint32(9)))
	if err != nil || v.(uint32) != 900 {
		t.Fatalf("ValueAt(IndexOf(9)) = %v, %v, want 900", v, err)
	}
}
