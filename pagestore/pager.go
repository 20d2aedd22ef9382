// Package pagestore is a minimal reference implementation of the page
// cache lsmnode.Node expects as its external collaborator: an
// mmap-backed flat file of fixed-size pages, a page table mapping page
// numbers to pinned buffer slots, and one shared/exclusive latch per
// slot.
//
// It is a reference and test harness, not a production buffer pool:
// there is no eviction, no write-back scheduling, and no write-ahead
// log. Alloc never reuses a freed page number. Callers needing a real
// cache should implement lsmnode.PageBuffer and the latch protocol
// themselves; this package exists so lsmnode's own tests — and anyone
// experimenting with it — have at least one working binding.
package pagestore

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/Giulio2002/lsmnode/internal/fastmap"
	"github.com/Giulio2002/lsmnode/mmap"
)

type slot struct {
	latch sync.RWMutex
	buf   Buffer
}

// Pager is an mmap-backed flat-file page store. PAGE_BYTES is fixed
// for the lifetime of one Pager, per spec's construction-parameter
// design (PageSize, not a compile-time constant).
type Pager struct {
	mu        sync.Mutex
	file      *os.File
	mapping   *mmap.Map
	pageSize  int
	table     *fastmap.Uint32Map
	highWater uint32
}

// New opens (creating if necessary) the flat file at path as a page
// store of pageSize-byte pages. An empty or newly created file starts
// with zero allocated pages; Alloc grows the file as needed.
func New(path string, pageSize int) (*Pager, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("pagestore: invalid page size %d", pageSize)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	size := fi.Size()
	highWater := uint32(size / int64(pageSize))
	mapSize := size
	if mapSize == 0 {
		// mmap requires a non-empty file; stage room for one page so
		// New never has to special-case an empty mapping.
		mapSize = int64(pageSize)
		if err := f.Truncate(mapSize); err != nil {
			f.Close()
			return nil, err
		}
	}

	m, err := mmap.New(int(f.Fd()), 0, int(mapSize), true)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Pager{
		file:      f,
		mapping:   m,
		pageSize:  pageSize,
		table:     &fastmap.Uint32Map{},
		highWater: highWater,
	}, nil
}

// PageSize returns PAGE_BYTES for this Pager.
func (p *Pager) PageSize() int { return p.pageSize }

// Alloc returns a fresh page number, growing the backing file and
// mapping if necessary. There is no free-list: page numbers are never
// reused, matching this module's explicit non-goal of allocation
// policy.
func (p *Pager) Alloc() (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pgno := p.highWater
	p.highWater++

	need := int64(p.highWater) * int64(p.pageSize)
	if need > p.mapping.Size() {
		if err := p.file.Truncate(need); err != nil {
			return 0, err
		}
		if err := p.mapping.Remap(need); err != nil {
			return 0, err
		}
	}
	return pgno, nil
}

func (p *Pager) slotFor(pgno uint32) *slot {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ptr := p.table.Get(pgno); ptr != nil {
		return (*slot)(ptr)
	}
	off := int64(pgno) * int64(p.pageSize)
	s := &slot{buf: Buffer{pgno: pgno, data: p.mapping.Data()[off : off+int64(p.pageSize)]}}
	p.table.Set(pgno, unsafe.Pointer(s))
	return s
}

// Acquire latches page pgno — shared (RLock) if exclusive is false,
// exclusive (Lock) if true — and returns its Buffer together with an
// Unlatch closure that releases the matching lock exactly once.
// Calling the closure twice panics.
func (p *Pager) Acquire(pgno uint32, exclusive bool) (*Buffer, func(), error) {
	end := (int64(pgno) + 1) * int64(p.pageSize)
	if end > p.mapping.Size() {
		return nil, nil, fmt.Errorf("pagestore: page %d not allocated", pgno)
	}

	s := p.slotFor(pgno)
	if exclusive {
		s.latch.Lock()
	} else {
		s.latch.RLock()
	}

	var released bool
	unlatch := func() {
		if released {
			panic("pagestore: Unlatch called twice")
		}
		released = true
		if exclusive {
			s.latch.Unlock()
		} else {
			s.latch.RUnlock()
		}
	}
	return &s.buf, unlatch, nil
}

// Close flushes and releases the underlying mapping and file.
func (p *Pager) Close() error {
	if err := p.mapping.Sync(); err != nil {
		return err
	}
	if err := p.mapping.Close(); err != nil {
		return err
	}
	return p.file.Close()
}
