package stations

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/ekistations/pkg/ekidata"
)

func st(line, name string, lon, lat float64) ekidata.Station {
	return ekidata.Station{Line: line, Name: name, Lon: lon, Lat: lat}
}

func TestSort(t *testing.T) {
	in := []ekidata.Station{
		st("B線", "い", 140.0, 35.0),
		st("A線", "あ", 139.0, 36.0),
		st("A線", "あ", 139.0, 35.0),
		st("B線", "あ", 140.0, 35.0),
		st("A線", "あ", 140.0, 35.0),
	}
	Sort(in)

	want := []ekidata.Station{
		st("A線", "あ", 139.0, 35.0), // lon, then lat
		st("A線", "あ", 139.0, 36.0),
		st("A線", "あ", 140.0, 35.0), // same coords: name, then line
		st("B線", "あ", 140.0, 35.0),
		st("B線", "い", 140.0, 35.0),
	}
	if !slices.Equal(in, want) {
		t.Errorf("Sort() =\n%v\nwant\n%v", in, want)
	}
}

func TestSortCollatesKana(t *testing.T) {
	// Katakana and hiragana of the same sound collate together under the
	// Japanese collator; byte order would put all hiragana first.
	in := []ekidata.Station{
		st("L", "カ", 1, 1),
		st("L", "き", 1, 1),
		st("L", "あ", 1, 1),
	}
	Sort(in)
	got := []string{in[0].Name, in[1].Name, in[2].Name}
	want := []string{"あ", "カ", "き"}
	if !slices.Equal(got, want) {
		t.Errorf("Sort() names = %v, want %v", got, want)
	}
}

func TestDedupKeepsFirstSortedOccurrence(t *testing.T) {
	in := []ekidata.Station{
		st("JR山手線", "品川", 139.74, 35.63),
		st("JR山手線", "品川", 139.73, 35.62), // sorts first: smaller lon
		st("京急本線", "品川", 139.74, 35.63),
	}
	got := Prepare(in)

	if len(got) != 2 {
		t.Fatalf("Prepare() = %v, want 2 records", got)
	}
	if got[0] != st("JR山手線", "品川", 139.73, 35.62) {
		t.Errorf("winner = %+v, want the westernmost record", got[0])
	}
	if got[1] != st("京急本線", "品川", 139.74, 35.63) {
		t.Errorf("second = %+v", got[1])
	}
}

func TestDedupIdenticalRecords(t *testing.T) {
	s := st("L", "N", 1, 2)
	got := Dedup([]ekidata.Station{s, s, s})
	if len(got) != 1 || got[0] != s {
		t.Errorf("Dedup() = %v, want one %v", got, s)
	}
}

func TestDedupDoesNotModifyInput(t *testing.T) {
	in := []ekidata.Station{st("L", "N", 2, 2), st("L", "N", 1, 1)}
	orig := slices.Clone(in)
	Prepare(in)
	Dedup(in)
	if !slices.Equal(in, orig) {
		t.Errorf("input modified: %v", in)
	}
}

func TestPrepareDuplicateFree(t *testing.T) {
	in := []ekidata.Station{
		st("A", "x", 3, 3),
		st("A", "y", 1, 1),
		st("B", "x", 2, 2),
	}
	got := Prepare(in)
	if len(got) != len(in) {
		t.Fatalf("len = %d, want %d", len(got), len(in))
	}
	for _, s := range in {
		if !slices.Contains(got, s) {
			t.Errorf("record %v altered or lost", s)
		}
	}
}

func TestPrepareIdempotent(t *testing.T) {
	in := []ekidata.Station{
		st("B", "b", 5, 1),
		st("A", "a", 1, 1),
		st("A", "a", 0.5, 9),
		st("C", "c", 1, 1),
		st("C", "c", 1, 1),
		st("B", "a", 1, 1),
	}
	once := Prepare(in)
	twice := Prepare(once)
	if !slices.Equal(once, twice) {
		t.Errorf("Prepare not idempotent:\n%v\n%v", once, twice)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, []ekidata.Station{st("JR山手線", "<東京>", 139.766103, 35.681391)}); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	want := `[
  {
    "line": "JR山手線",
    "name": "<東京>",
    "lon": 139.766103,
    "lat": 35.681391
  }
]
`
	if buf.String() != want {
		t.Errorf("WriteJSON() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("WriteJSON(nil) = %q, want []", buf.String())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stations.json")

	if err := os.WriteFile(path, []byte("old contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	in := []ekidata.Station{
		st("B", "b", 2, 2),
		st("A", "a", 1, 1),
		st("A", "a", 3, 3),
	}
	n, err := Save(path, in)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Save() = %d, want 2", n)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []ekidata.Station{st("A", "a", 1, 1), st("B", "b", 2, 2)}
	if !slices.Equal(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "stations.json")
	if _, err := Save(path, nil); err == nil {
		t.Error("Save() into a missing directory should fail")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load() of missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed file should fail")
	}
}
