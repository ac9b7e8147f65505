package stations

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matzehuels/ekistations/pkg/ekidata"
)

// Sort orders s in place by lon, lat, name, line, all ascending.
// The sort is stable, so records equal under all four keys keep their
// relative order.
func Sort(s []ekidata.Station) {
	// A Collator is not safe for concurrent use; each call gets its own.
	col := collate.New(language.Japanese)
	slices.SortStableFunc(s, func(a, b ekidata.Station) int {
		return compare(col, a, b)
	})
}

func compare(col *collate.Collator, a, b ekidata.Station) int {
	if c := cmp.Compare(a.Lon, b.Lon); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Lat, b.Lat); c != 0 {
		return c
	}
	if c := col.CompareString(a.Name, b.Name); c != 0 {
		return c
	}
	return col.CompareString(a.Line, b.Line)
}
