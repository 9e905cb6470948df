package styles

// FormatPair pairs a source handle with a target handle whose formats share
// a content hash.
type FormatPair struct {
	SourceID int
	TargetID int
}

// CompareResult classifies the formats of two independent repositories.
type CompareResult struct {
	Common     []FormatPair // hash present in both, paired positionally
	SourceOnly []int        // handles whose hash is absent from target
	TargetOnly []int        // handles whose hash is absent from source
}

// CompareRepositories pairs the formats of two repositories by content hash.
// When several handles on one side share a hash they are paired positionally
// with the same-hash handles of the other side; leftovers fall into the
// one-sided buckets. Pairing is by hash, not full equality, so it carries
// the same collision caveat as any hash-keyed comparison.
func CompareRepositories(src, dst *Repository) CompareResult {
	srcFormats := src.Formats()
	dstFormats := dst.Formats()

	srcByHash := make(map[uint64][]int, len(srcFormats))
	for id, f := range srcFormats {
		h := f.Hash()
		srcByHash[h] = append(srcByHash[h], id)
	}
	dstByHash := make(map[uint64][]int, len(dstFormats))
	for id, f := range dstFormats {
		h := f.Hash()
		dstByHash[h] = append(dstByHash[h], id)
	}

	var res CompareResult
	for id, f := range srcFormats {
		h := f.Hash()
		dstIDs := dstByHash[h]
		if len(dstIDs) == 0 {
			res.SourceOnly = append(res.SourceOnly, id)
			continue
		}
		// Positional pairing inside the hash group.
		pos := indexOf(srcByHash[h], id)
		if pos < len(dstIDs) {
			res.Common = append(res.Common, FormatPair{SourceID: id, TargetID: dstIDs[pos]})
		} else {
			res.SourceOnly = append(res.SourceOnly, id)
		}
	}
	for id, f := range dstFormats {
		h := f.Hash()
		srcIDs := srcByHash[h]
		if len(srcIDs) == 0 {
			res.TargetOnly = append(res.TargetOnly, id)
			continue
		}
		if pos := indexOf(dstByHash[h], id); pos >= len(srcIDs) {
			res.TargetOnly = append(res.TargetOnly, id)
		}
	}
	return res
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
