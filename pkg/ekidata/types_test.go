package ekidata

import (
	"encoding/json"
	"testing"
)

func TestLineUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Line
	}{
		{"numeric code", `{"line_cd":11302,"line_name":"JR山手線"}`, Line{Code: "11302", Name: "JR山手線"}},
		{"string code", `{"line_cd":"11302","line_name":"JR山手線"}`, Line{Code: "11302", Name: "JR山手線"}},
		{"extra fields", `{"line_cd":99999,"line_name":"x","line_lon":139.7,"line_zoom":12}`, Line{Code: "99999", Name: "x"}},
		{"missing code", `{"line_name":"x"}`, Line{Name: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Line
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLineUnmarshalRejectsObjectCode(t *testing.T) {
	var l Line
	if err := json.Unmarshal([]byte(`{"line_cd":{"x":1}}`), &l); err == nil {
		t.Error("Unmarshal() should reject an object line_cd")
	}
}

func TestStationEntryCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
		lon   float64
	}{
		{"numbers", `{"station_name":"東京","lon":139.766103,"lat":35.681391}`, true, 139.766103},
		{"strings", `{"station_name":"東京","lon":"139.766103","lat":"35.681391"}`, true, 139.766103},
		{"padded strings", `{"station_name":"東京","lon":" 139.5 ","lat":"35.5"}`, true, 139.5},
		{"garbage", `{"station_name":"東京","lon":"abc","lat":"35.5"}`, false, 0},
		{"null", `{"station_name":"東京","lon":null,"lat":35.5}`, false, 0},
		{"missing", `{"station_name":"東京","lat":35.5}`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e stationEntry
			if err := json.Unmarshal([]byte(tt.in), &e); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			valid := e.Lon.valid() && e.Lat.valid()
			if valid != tt.valid {
				t.Fatalf("valid = %v, want %v", valid, tt.valid)
			}
			if valid && float64(*e.Lon) != tt.lon {
				t.Errorf("lon = %v, want %v", float64(*e.Lon), tt.lon)
			}
		})
	}
}

func TestStationJSON(t *testing.T) {
	s := Station{Line: "JR山手線", Name: "東京", Lon: 139.766103, Lat: 35.681391}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"line":"JR山手線","name":"東京","lon":139.766103,"lat":35.681391}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
	if s.Key() != (Key{Line: "JR山手線", Name: "東京"}) {
		t.Errorf("Key() = %+v", s.Key())
	}
}

func TestPrefectures(t *testing.T) {
	ps := Prefectures()
	if len(ps) != 47 {
		t.Fatalf("len(Prefectures()) = %d, want 47", len(ps))
	}
	if ps[0] != (Prefecture{"1", "北海道"}) || ps[12] != (Prefecture{"13", "東京都"}) || ps[46] != (Prefecture{"47", "沖縄県"}) {
		t.Errorf("unexpected table entries: %v %v %v", ps[0], ps[12], ps[46])
	}

	ps[0].Name = "changed"
	if Prefectures()[0].Name != "北海道" {
		t.Error("Prefectures() must return a copy")
	}
}

func TestLookupPrefecture(t *testing.T) {
	if p, ok := LookupPrefecture("13"); !ok || p.Name != "東京都" {
		t.Errorf("LookupPrefecture(13) = %v, %v", p, ok)
	}
	if p, ok := LookupPrefecture("大阪府"); !ok || p.Code != "27" {
		t.Errorf("LookupPrefecture(大阪府) = %v, %v", p, ok)
	}
	if _, ok := LookupPrefecture("48"); ok {
		t.Error("LookupPrefecture(48) should fail")
	}
}
