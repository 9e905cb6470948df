package styles

import (
	"sync"
	"sync/atomic"
)

// Repository is a content-addressed store of Format descriptors. Handles are
// dense ints starting at 0; handle 0 is the default format and always
// present. Handles are never reused or renumbered for the repository's
// lifetime (Clear starts a new lifetime).
//
// Repository is safe for concurrent use.
type Repository struct {
	mu      sync.RWMutex
	formats []Format
	byHash  map[uint64]int // content hash → first handle with that hash

	lookups atomic.Uint64 // AddFormat calls
	hits    atomic.Uint64 // AddFormat calls answered from an existing handle
}

// RepositoryStats reports deduplication effectiveness. Diagnostic only.
type RepositoryStats struct {
	Lookups    uint64
	Hits       uint64
	Unique     int
	HitRate    float64 // hits / lookups
	DedupRatio float64 // 1 - unique/lookups
}

// NewRepository returns a repository holding only the default format.
func NewRepository() *Repository {
	r := &Repository{
		byHash: make(map[uint64]int, 64),
	}
	def := DefaultFormat()
	r.formats = append(r.formats, def)
	r.byHash[def.Hash()] = 0
	return r
}

// DefaultFormatID returns the reserved handle of the default format.
func (r *Repository) DefaultFormatID() int { return 0 }

// AddFormat interns f and returns its handle. Repeated calls with an equal
// format return the same handle. Never fails: every format is guaranteed a
// handle.
func (r *Repository) AddFormat(f Format) int {
	r.lookups.Add(1)
	hash := f.Hash()

	// Fast path under the read lock. A hash hit is re-verified with full
	// equality; a colliding hash falls through to the slow path.
	r.mu.RLock()
	if id, ok := r.byHash[hash]; ok && r.formats[id] == f {
		r.mu.RUnlock()
		r.hits.Add(1)
		return id
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check: another writer may have inserted f between the two
	// lock phases.
	if id, ok := r.byHash[hash]; ok && r.formats[id] == f {
		r.hits.Add(1)
		return id
	}
	// Full scan covers hash aliasing: an equal format may sit behind a
	// different bucket entry.
	for id, g := range r.formats {
		if g == f {
			r.hits.Add(1)
			return id
		}
	}

	id := len(r.formats)
	r.formats = append(r.formats, f)
	if _, taken := r.byHash[hash]; !taken {
		r.byHash[hash] = id
	}
	return id
}

// GetFormat returns the format for handle. Out-of-range handles return the
// default format rather than an error; this is a defensive fallback for
// sparse reads, not a correctness guarantee.
func (r *Repository) GetFormat(handle int) Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if handle < 0 || handle >= len(r.formats) {
		return r.formats[0]
	}
	return r.formats[handle]
}

// FormatCount returns the number of distinct formats, default included.
func (r *Repository) FormatCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.formats)
}

// IsValidFormatID reports whether handle names a stored format.
func (r *Repository) IsValidFormatID(handle int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return handle >= 0 && handle < len(r.formats)
}

// Clear resets the repository to just the default format. Existing handles
// become invalid; the statistics counters are reset with them.
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	def := DefaultFormat()
	r.formats = r.formats[:0]
	r.formats = append(r.formats, def)
	clear(r.byHash)
	r.byHash[def.Hash()] = 0
	r.lookups.Store(0)
	r.hits.Store(0)
}

// Formats returns a snapshot copy of all stored formats in handle order.
// Index i of the result is the format at handle i.
func (r *Repository) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Format, len(r.formats))
	copy(out, r.formats)
	return out
}

// ImportFormats copies every format of src into r in one pass and returns
// the src-handle → r-handle mapping. This is the bulk path used by
// Transfer.PreloadAll.
func (r *Repository) ImportFormats(src *Repository) map[int]int {
	srcFormats := src.Formats()
	mapping := make(map[int]int, len(srcFormats))
	for id, f := range srcFormats {
		mapping[id] = r.AddFormat(f)
	}
	return mapping
}

// Stats returns a snapshot of the deduplication counters.
func (r *Repository) Stats() RepositoryStats {
	s := RepositoryStats{
		Lookups: r.lookups.Load(),
		Hits:    r.hits.Load(),
		Unique:  r.FormatCount(),
	}
	if s.Lookups > 0 {
		s.HitRate = float64(s.Hits) / float64(s.Lookups)
		s.DedupRatio = 1 - float64(s.Unique)/float64(s.Lookups)
		if s.DedupRatio < 0 {
			s.DedupRatio = 0
		}
	}
	return s
}
