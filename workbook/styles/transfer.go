package styles

// Transfer migrates format handles from a source repository into a target
// repository, memoizing the mapping. It is the unit of work for copying a
// worksheet's styles between two documents; repositories are never shared
// implicitly across documents.
//
// Transfer is not safe for concurrent use.
type Transfer struct {
	src *Repository
	dst *Repository

	mapping      map[int]int
	bulkImported bool
	dedupSaved   int
}

// TransferStats reports work performed by a Transfer.
type TransferStats struct {
	Mapped       int  // handles with a cached mapping
	BulkImported bool // PreloadAll has run
	// DedupSaved is the handle-count difference attributed to
	// deduplication by the bulk import. It is a heuristic: formats
	// already present in the target before the import also reduce the
	// count, and are not distinguished from genuine cross-import dedup.
	DedupSaved int
}

// NewTransfer creates a transfer context from src into dst. The source is
// only read; the target is grown as handles are mapped.
func NewTransfer(src, dst *Repository) *Transfer {
	return &Transfer{
		src:     src,
		dst:     dst,
		mapping: make(map[int]int),
	}
}

// MapStyleID returns the target handle for a source handle, interning the
// source format into the target on first use. Invalid source handles map to
// the target's default handle without error.
func (t *Transfer) MapStyleID(srcID int) int {
	if id, ok := t.mapping[srcID]; ok {
		return id
	}
	if !t.src.IsValidFormatID(srcID) {
		return t.dst.DefaultFormatID()
	}
	id := t.dst.AddFormat(t.src.GetFormat(srcID))
	t.mapping[srcID] = id
	return id
}

// PreloadAll maps every source handle in one bulk import, replacing the memo
// cache wholesale. Idempotent after the first call.
func (t *Transfer) PreloadAll() {
	if t.bulkImported {
		return
	}
	t.mapping = t.dst.ImportFormats(t.src)
	t.bulkImported = true
	if saved := t.src.FormatCount() - t.dst.FormatCount(); saved > 0 {
		t.dedupSaved = saved
	}
}

// TransferRange maps every source handle in [from, to] and returns the
// number of handles actually mapped, skipping cached and invalid ones.
func (t *Transfer) TransferRange(from, to int) int {
	done := 0
	for id := from; id <= to; id++ {
		if t.transferOne(id) {
			done++
		}
	}
	return done
}

// TransferStyles maps each listed source handle, returning the number
// actually mapped.
func (t *Transfer) TransferStyles(ids []int) int {
	done := 0
	for _, id := range ids {
		if t.transferOne(id) {
			done++
		}
	}
	return done
}

// TransferAll maps every handle the source currently holds, returning the
// number actually mapped.
func (t *Transfer) TransferAll() int {
	return t.TransferRange(0, t.src.FormatCount()-1)
}

func (t *Transfer) transferOne(srcID int) bool {
	if _, ok := t.mapping[srcID]; ok {
		return false
	}
	if !t.src.IsValidFormatID(srcID) {
		return false
	}
	t.mapping[srcID] = t.dst.AddFormat(t.src.GetFormat(srcID))
	return true
}

// Clear invalidates every cached mapping. The next MapStyleID re-interns.
func (t *Transfer) Clear() {
	clear(t.mapping)
	t.bulkImported = false
	t.dedupSaved = 0
}

// Stats returns a snapshot of the transfer's accounting.
func (t *Transfer) Stats() TransferStats {
	return TransferStats{
		Mapped:       len(t.mapping),
		BulkImported: t.bulkImported,
		DedupSaved:   t.dedupSaved,
	}
}
