package extract

import (
	"encoding/json"
	"strings"
)

// firstObject returns the first well-formed JSON object embedded in s. It
// tolerates fenced code blocks and surrounding prose because decoding starts
// at each '{' in turn and stops after one value.
func firstObject(s string) (json.RawMessage, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(s[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			continue
		}
		return raw, true
	}
	return nil, false
}
