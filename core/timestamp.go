package core

import (
	"encoding/json"
	"time"
)

// WireTimestamp is the store's native timestamp representation.
// Only the sync boundary (Normalize) and the write paths ever see it.
type WireTimestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int32 `json:"nanoseconds"`
}

func ToWireTimestamp(t time.Time) WireTimestamp {
	return WireTimestamp{
		Seconds:     t.Unix(),
		Nanoseconds: int32(t.Nanosecond()),
	}
}

// ToLocalDate converts a wire timestamp into a UTC time.Time.
func ToLocalDate(ts WireTimestamp) time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanoseconds)).UTC()
}

// IsZero reports whether the timestamp was never set.
func (ts WireTimestamp) IsZero() bool {
	return ts.Seconds == 0 && ts.Nanoseconds == 0
}

// ServerTimestamp returns the current time in wire form, truncated to whole seconds.
func ServerTimestamp() WireTimestamp {
	return ToWireTimestamp(time.Now().Truncate(time.Second))
}

// isWireTimestamp recognizes a decoded JSON object that has exactly the wire timestamp shape.
func isWireTimestamp(v map[string]any) (WireTimestamp, bool) {
	if len(v) != 2 {
		return WireTimestamp{}, false
	}
	sec, ok := v["seconds"].(json.Number)
	if !ok {
		return WireTimestamp{}, false
	}
	nsec, ok := v["nanoseconds"].(json.Number)
	if !ok {
		return WireTimestamp{}, false
	}
	s, err := sec.Int64()
	if err != nil {
		return WireTimestamp{}, false
	}
	n, err := nsec.Int64()
	if err != nil {
		return WireTimestamp{}, false
	}
	return WireTimestamp{Seconds: s, Nanoseconds: int32(n)}, true
}
