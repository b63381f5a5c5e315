// Package schema defines the entities exchanged with the universidad REST API
// and the request payloads used to create or update them.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the server's serialization of registration timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// acceptedLayouts lists the formats a server timestamp may arrive in.
var acceptedLayouts = []string{
	TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// Timestamp is a server-assigned point in time. The zero value means unset.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s using any of the accepted server layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

// UnmarshalJSON accepts null, "" and the accepted layouts.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON writes the server layout, or null when unset.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(TimestampLayout))
}

// Display formats the timestamp for tables; unset renders as "-".
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
