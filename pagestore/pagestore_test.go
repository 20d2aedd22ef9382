package pagestore_test

import (
	"path/filepath"
	"testing"

	"github.com/Giulio2002/lsmnode/pagestore"
)

func TestAllocAndAcquireRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p, err := pagestore.New(filepath.Join(dir, "pages.db"), 1024)
	if err != nil {
		t.Fatalf("New: %v", err)
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
	buf.SetU32(0, 0xdeadbeef)
	unlatch()

	buf2, unlatch2, err := p.Acquire(pgno, false)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer unlatch2()
	if got := buf2.GetU32(0); got != 0xdeadbeef {
		t.Fatalf("GetU32(0) = %x, want deadbeef", got)
	}
	if buf2.PageNo() != pgno {
		t.Fatalf("PageNo() = %d, want %d", buf2.PageNo(), pgno)
	}
	if buf2.Len() != 1024 {
		t.Fatalf("Len() = %d, want 1024", buf2.Len())
	}
}

func TestAllocGrowsAcrossMultiplePages(t *testing.T) {
	dir := t.TempDir()
	p, err := pagestore.New(filepath.Join(dir, "pages.db"), 256)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	var pages []uint32
	for i := 0; i < 8; i++ {
		pgno, err := p.Alloc()
		if err != nil {
			t.Fatalf("Alloc: %v", err)
		}
		pages = append(pages, pgno)
	}
	for i, pgno := range pages {
		if int(pgno) != i {
			t.Fatalf("pages[%d] = %d, want %d (no reuse, monotonic)", i, pgno, i)
		}
		buf, unlatch, err := p.Acquire(pgno, true)
		if err != nil {
			t.Fatalf("Acquire(%d): %v", pgno, err)
		}
		buf.SetU32(0, uint32(i))
		unlatch()
	}
	for i, pgno := range pages {
		buf, unlatch, err := p.Acquire(pgno, false)
		if err != nil {
			t.Fatalf("Acquire(%d): %v", pgno, err)
		}
		if got := buf.GetU32(0); got != uint32(i) {
			t.Fatalf("page %d: GetU32(0) = %d, want %d", pgno, got, i)
		}
		unlatch()
	}
}

func TestUnlatchTwicePanics(t *testing.T) {
	dir := t.TempDir()
	p, err := pagestore.New(filepath.Join(dir, "pages.db"), 256)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	pgno, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	_, unlatch, err := p.Acquire(pgno, false)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	unlatch()

	defer func() {
		if recover() == nil {
			t.Fatalf("calling Unlatch twice did not panic")
		}
	}()
	unlatch()
}

func TestAcquireOutOfRangeFails(t *testing.T) {
	dir := t.TempDir()
	p, err := pagestore.New(filepath.Join(dir, "pages.db"), 256)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	if _, _, err := p.Acquire(42, false); err == nil {
		t.Fatalf("Acquire on an unallocated page did not fail")
	}
}
