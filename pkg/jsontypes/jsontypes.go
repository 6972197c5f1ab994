// Package jsontypes holds wire-format helpers shared by the domain models.
//
// The clinic API represents several boolean flags as 0/1 integers on read
// but accepts JSON booleans on write, and returns dates in whatever format
// the source clinic happened to store them in.
package jsontypes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// IntBool is a flag that arrives as a 0/1 integer (occasionally as a real
// boolean) and is always serialized back out as a JSON boolean.
type IntBool int

// Bool reports whether the flag is set.
func (b IntBool) Bool() bool { return b != 0 }

func (b IntBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Bool())
}

func (b *IntBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "0", "false":
		*b = 0
		return nil
	case "true":
		*b = 1
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("jsontypes: cannot decode %q as 0/1 flag: %w", data, err)
	}
	if n != 0 {
		n = 1
	}
	*b = IntBool(n)
	return nil
}

// DateTimeLayout is the canonical timestamp format the clinic API accepts
// on writes.
const DateTimeLayout = "2006-01-02T15:04:05"

var dateLayouts = []string{
	DateTimeLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// NormalizeDateTime reformats a date string from any of the formats observed
// in clinic exports to DateTimeLayout. An empty input stays empty. An
// unrecognized format is returned unmodified along with an error so the
// caller can log and continue.
func NormalizeDateTime(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateTimeLayout), nil
		}
	}
	return s, fmt.Errorf("jsontypes: unrecognized date format %q", s)
}
