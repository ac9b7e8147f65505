package ekidata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Prefecture is one of the 47 Japanese prefectures, keyed by its JIS code.
type Prefecture struct {
	Code string // JIS X 0401 code without zero padding ("1".."47")
	Name string // Display name, e.g. "東京都"
}

// Line is a railway line as listed for a prefecture.
type Line struct {
	Code string `json:"line_cd"`
	Name string `json:"line_name"`
}

// UnmarshalJSON accepts line_cd as either a JSON number or a string.
func (l *Line) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code flexString `json:"line_cd"`
		Name string     `json:"line_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = Line{Code: string(raw.Code), Name: raw.Name}
	return nil
}

// Station is a stop on a line, the record written to the output file.
type Station struct {
	Line string  `json:"line"` // Display name of the owning line
	Name string  `json:"name"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

// Key identifies a station for deduplication.
type Key struct {
	Line string
	Name string
}

// Key returns the (line, name) pair.
func (s Station) Key() Key { return Key{Line: s.Line, Name: s.Name} }

// prefectureResponse is the payload of /p/{code}.json.
type prefectureResponse struct {
	Line []Line `json:"line"`
}

// lineResponse is the payload of /l/{line_cd}.json.
type lineResponse struct {
	StationL *[]stationEntry `json:"station_l"`
}

type stationEntry struct {
	Name string `json:"station_name"`
	Lon  *coord `json:"lon"`
	Lat  *coord `json:"lat"`
}

// flexString decodes a JSON string or number into its textual form.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// coord decodes a coordinate given as a JSON number or numeric string.
// Values that do not parse become NaN rather than failing the whole body.
type coord float64

func (c *coord) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		*c = coord(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil {
		*c = coord(math.NaN())
		return nil
	}
	*c = coord(v)
	return nil
}

// valid reports whether c was present and parsed to a finite number.
func (c *coord) valid() bool {
	if c == nil {
		return false
	}
	f := float64(*c)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
