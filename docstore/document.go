// Package docstore is an embedded reactive document store on BadgerDB.
// It exposes one-shot writes, filtered/ordered queries, and subscriptions
// that deliver a fresh snapshot on every change to a collection.
//
// Writes are committed by a single store worker; the commit assigns the
// server timestamp. Subscribers never observe uncommitted state.
package docstore

import (
	"encoding/json"
	"fmt"
	"time"
)

// Fields is the schemaless content of a document. Values must survive a
// JSON round-trip (strings, numbers, bools, string slices, nested maps).
type Fields map[string]any

type serverTimestamp struct{}

// ServerTimestamp is a sentinel field value replaced by the commit time of
// the write, unknown to the caller until the write is acknowledged.
var ServerTimestamp = serverTimestamp{}

// Document is one committed record. CommittedAt is the server-assigned
// creation time, also used as the collection sort key.
type Document struct {
	ID          string
	Fields      Fields
	CommittedAt time.Time
}

// String returns a field as a string, "" when absent or of another type.
func (d Document) String(field string) string {
	s, _ := d.Fields[field].(string)
	return s
}

// Strings returns a field as a string slice. JSON unmarshaling yields
// []any, so both representations are accepted.
func (d Document) Strings(field string) []string {
	switch v := d.Fields[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Float returns a numeric field. JSON unmarshaling yields float64.
func (d Document) Float(field string) float64 {
	switch v := d.Fields[field].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Time returns a field as a time.Time. Fields written with the
// ServerTimestamp sentinel are stored as RFC 3339 strings.
func (d Document) Time(field string) (time.Time, bool) {
	switch v := d.Fields[field].(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		return t, err == nil
	}
	return time.Time{}, false
}

// envelope is the on-disk value layout.
type envelope struct {
	Fields Fields `json:"fields"`
	TS     int64  `json:"ts"`
}

func encodeDoc(fields Fields, ts time.Time) ([]byte, error) {
	return json.Marshal(envelope{Fields: fields, TS: ts.UnixNano()})
}

func decodeDoc(id string, raw []byte) (Document, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Document{}, fmt.Errorf("corrupt document %s: %w", id, err)
	}
	return Document{
		ID:          id,
		Fields:      env.Fields,
		CommittedAt: time.Unix(0, env.TS).UTC(),
	}, nil
}

// resolveSentinels replaces ServerTimestamp values with the commit time.
// Time values are normalized to RFC 3339 so they survive the JSON round-trip.
func resolveSentinels(fields Fields, now time.Time) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		switch tv := v.(type) {
		case serverTimestamp:
			out[k] = now.Format(time.RFC3339Nano)
		case time.Time:
			out[k] = tv.UTC().Format(time.RFC3339Nano)
		default:
			out[k] = v
		}
	}
	return out
}
