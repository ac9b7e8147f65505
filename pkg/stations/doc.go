// Package stations orders, deduplicates and persists station records.
//
// # Ordering
//
// [Sort] imposes a total order by the key chain longitude, latitude, station
// name, line name. Names are compared with a Japanese collator rather than
// by bytes, so kana and kanji order the way a reader expects. The order is a
// deterministic tie-break chain, not a ranking.
//
// # Deduplication
//
// [Dedup] keeps the first record, in sorted order, for each distinct
// (line, name) pair. Records that share line and name but differ in
// coordinates therefore collapse to the westernmost (then southernmost) one.
//
// # Output
//
// [Save] writes the prepared records as a pretty-printed JSON array:
//
//	[
//	  {
//	    "line": "JR山手線",
//	    "name": "品川",
//	    "lon": 139.738999,
//	    "lat": 35.62876
//	  }
//	]
package stations
