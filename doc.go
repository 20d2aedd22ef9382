// Package lsmnode implements the on-disk page layout and in-page
// record manager for a B+tree node used as the mutable top tier of an
// LSM-tree index. A node occupies one fixed-size page handed to it by
// an external page cache and encapsulates the bit-level discipline
// needed to store, locate, insert, delete, and redistribute ordered
// key/value records, together with markers linking internal-node
// separators to blocks in lower LSM levels.
//
// This package owns the page's byte layout only. Page allocation, the
// buffer cache's eviction policy, the write-ahead log, split/merge
// orchestration, and key comparison policy are all supplied by the
// caller. Package pagestore ships a minimal reference implementation
// of the page cache contract (mmap-backed, no eviction, no WAL);
// package codec ships a minimal set of reference encoders. Neither is
// required to understand or use this package — production callers are
// expected to bring their own.
//
// Basic usage:
//
//	buf := pagestore.NewMemBuffer(1024, 0)
//	node := lsmnode.Bind(buf, bytesComparator)
//
//	s := node.CreateSession(func() {})
//	if err := s.Create(true, lsmnode.EncodersVersionDefault); err != nil {
//	    log.Fatal(err)
//	}
//	s.Close()
//
//	s, err := node.Write(func() {})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := s.IndexOf(uint32(1))
//	s.InsertValue(r, uint32(1), 4, uint32(10), 4)
//	s.Close()
package lsmnode
