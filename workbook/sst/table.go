// Package sst implements the shared-string table of a document.
//
// Cell text is heavily repeated; the table stores each distinct string once
// and hands out dense int32 handles that cells and the sharedStrings part
// reference by position. Dedup goes through an explicit FNV-1a bucket map
// with full string comparison on collision, so the bucket statistics exposed
// by Stats reflect the real table layout.
//
// The table is not internally synchronized; callers enforce single-writer
// access.
package sst

import "hash/fnv"

// Table is a bidirectional string ↔ handle mapping. Handles start at 0 and
// grow monotonically. AddStringWithID can reserve a specific handle to keep
// positional identity stable across re-serialization, which may leave
// unused hole slots; holes serialize as empty entries.
type Table struct {
	strings []string
	used    []bool
	buckets map[uint32][]int32

	total       int   // AddString calls, duplicates included
	unique      int   // used slots
	totalBytes  int64 // bytes submitted, duplicates included
	uniqueBytes int64 // bytes stored once
}

// Stats reports dedup effectiveness and hash-table health. Diagnostic only;
// nothing here is load-bearing for correctness.
type Stats struct {
	Total            int
	Unique           int
	TotalBytes       int64
	UniqueBytes      int64
	CompressionRatio float64 // uniqueBytes / totalBytes
	BucketCount      int
	MaxBucketSize    int
	LoadFactor       float64 // unique / buckets
}

// New returns an empty table.
func New() *Table {
	return &Table{buckets: make(map[uint32][]int32, 64)}
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func (t *Table) lookup(s string) int32 {
	for _, id := range t.buckets[hashString(s)] {
		if t.strings[id] == s {
			return id
		}
	}
	return -1
}

// AddString interns s and returns its handle. Calling twice with the same
// string returns the same handle both times.
func (t *Table) AddString(s string) int32 {
	t.total++
	t.totalBytes += int64(len(s))
	if id := t.lookup(s); id >= 0 {
		return id
	}
	id := int32(len(t.strings))
	t.place(s, id)
	return id
}

// AddStringWithID interns s, forcing handle id when that slot is still
// unused. If the slot already holds a different string, or s is already
// interned elsewhere, allocation falls back to AddString semantics. Returns
// the handle actually used.
func (t *Table) AddStringWithID(s string, id int32) int32 {
	if id < 0 {
		return t.AddString(s)
	}
	if existing := t.lookup(s); existing >= 0 {
		t.total++
		t.totalBytes += int64(len(s))
		return existing
	}
	if int(id) < len(t.strings) && t.used[id] {
		return t.AddString(s)
	}
	t.total++
	t.totalBytes += int64(len(s))
	// Grow with hole slots up to the forced handle.
	for int(id) >= len(t.strings) {
		t.strings = append(t.strings, "")
		t.used = append(t.used, false)
	}
	t.place(s, id)
	return id
}

// place stores s at a slot that is either the append position or a reserved
// hole.
func (t *Table) place(s string, id int32) {
	if int(id) == len(t.strings) {
		t.strings = append(t.strings, s)
		t.used = append(t.used, true)
	} else {
		t.strings[id] = s
		t.used[id] = true
	}
	h := hashString(s)
	t.buckets[h] = append(t.buckets[h], id)
	t.unique++
	t.uniqueBytes += int64(len(s))
}

// AddStringsBatch interns every string of batch and returns the handles in
// order. Behaviorally identical to calling AddString in a loop; it exists as
// the bulk entry point for import paths.
func (t *Table) AddStringsBatch(batch []string) []int32 {
	ids := make([]int32, len(batch))
	for i, s := range batch {
		ids[i] = t.AddString(s)
	}
	return ids
}

// GetString returns the string at handle id. The handle must come from this
// table; out-of-range access is a caller bug, not a recoverable condition.
func (t *Table) GetString(id int32) string {
	return t.strings[id]
}

// GetStringID returns the handle of s, or -1 when s was never interned.
func (t *Table) GetStringID(s string) int32 {
	return t.lookup(s)
}

// Count returns the total number of additions, duplicates included. This is
// the "count" attribute of the serialized table.
func (t *Table) Count() int { return t.total }

// UniqueCount returns the number of distinct stored strings.
func (t *Table) UniqueCount() int { return t.unique }

// Size returns the handle-space size, hole slots included. The serializer
// iterates [0, Size).
func (t *Table) Size() int { return len(t.strings) }

// IsUsed reports whether handle id holds a real string rather than a hole.
func (t *Table) IsUsed(id int32) bool {
	return id >= 0 && int(id) < len(t.used) && t.used[id]
}

// Stats returns a snapshot of dedup and bucket diagnostics.
func (t *Table) Stats() Stats {
	s := Stats{
		Total:       t.total,
		Unique:      t.unique,
		TotalBytes:  t.totalBytes,
		UniqueBytes: t.uniqueBytes,
		BucketCount: len(t.buckets),
	}
	for _, b := range t.buckets {
		if len(b) > s.MaxBucketSize {
			s.MaxBucketSize = len(b)
		}
	}
	if s.TotalBytes > 0 {
		s.CompressionRatio = float64(s.UniqueBytes) / float64(s.TotalBytes)
	}
	if s.BucketCount > 0 {
		s.LoadFactor = float64(s.Unique) / float64(s.BucketCount)
	}
	return s
}
