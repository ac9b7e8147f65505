package ekidata

import (
	"encoding/json"
	"strings"
)

// Wrapper statements emitted around every payload.
const (
	wrapperInit     = `if(typeof(xml)=='undefined') xml = {};`
	wrapperAssign   = `xml.data = `
	wrapperCallback = `if(typeof(xml.onload)=='function') xml.onload(xml.data);`
)

// Normalize removes the first occurrence of each wrapper statement from body
// and trims surrounding whitespace. Missing statements are skipped, so an
// already-plain JSON body passes through unchanged apart from trimming.
func Normalize(body string) string {
	for _, lit := range [...]string{wrapperInit, wrapperAssign, wrapperCallback} {
		body = strings.Replace(body, lit, "", 1)
	}
	return strings.TrimSpace(body)
}

// Decode normalizes body and unmarshals the payload into v.
func Decode(body string, v any) error {
	return json.Unmarshal([]byte(Normalize(body)), v)
}
