package stations

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/ekistations/pkg/ekidata"
)

// DefaultOutput is where the crawl writes its result unless told otherwise.
const DefaultOutput = "./stations.json"

// WriteJSON encodes s as a JSON array indented with two spaces.
// An empty or nil slice is written as [].
func WriteJSON(w io.Writer, s []ekidata.Station) error {
	if s == nil {
		s = []ekidata.Station{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Save prepares s (see [Prepare]) and writes it to path, replacing any
// existing file. It returns the number of records written.
//
// The file is written to a temporary sibling and renamed into place, so a
// failed save leaves the previous file untouched.
func Save(path string, s []ekidata.Station) (int, error) {
	out := Prepare(s)
	if err := writeFile(path, out); err != nil {
		return 0, err
	}
	return len(out), nil
}

func writeFile(path string, s []ekidata.Station) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteJSON(tmp, s); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// Load reads a station file written by [Save].
func Load(path string) ([]ekidata.Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s []ekidata.Station
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, nil
}
