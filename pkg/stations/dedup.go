package stations

import (
	"slices"

	"github.com/matzehuels/ekistations/pkg/ekidata"
)

// Dedup returns the records of s whose (line, name) pair has not appeared
// earlier in s, preserving order. s is not modified.
//
// The comparison key is exactly (line, name): coordinates are ignored, and
// the first occurrence wins. Call [Sort] first to make that choice
// deterministic.
func Dedup(s []ekidata.Station) []ekidata.Station {
	seen := make(map[ekidata.Key]struct{}, len(s))
	out := make([]ekidata.Station, 0, len(s))
	for _, st := range s {
		k := st.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, st)
	}
	return out
}

// Prepare returns a sorted, deduplicated copy of s.
// Applying Prepare to its own output returns the same records.
func Prepare(s []ekidata.Station) []ekidata.Station {
	sorted := slices.Clone(s)
	Sort(sorted)
	return Dedup(sorted)
}
