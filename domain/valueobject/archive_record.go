package valueobject

import (
	"sort"
)

// Archive keys shared with previously persisted zone archives. They must not change.
const (
	ArchiveKeyName  = "NS.name"
	ArchiveKeyData  = "NS.data"
	ArchiveKeyClass = "$class"
)

// Archive class markers
const (
	ArchiveClassTimeZone      = "NSTimeZone"
	ArchiveClassLocalTimeZone = "__NSLocalTimeZone"
)

// ArchiveRecord is a keyed archive entry. Values are either strings or byte slices.
type ArchiveRecord struct {
	fields map[string]interface{}
}

// NewArchiveRecord creates an empty keyed record
func NewArchiveRecord() *ArchiveRecord {
	return &ArchiveRecord{fields: make(map[string]interface{})}
}

// AllowsKeyedCoding is always true for ArchiveRecord
func (r *ArchiveRecord) AllowsKeyedCoding() bool {
	return true
}

func (r *ArchiveRecord) EncodeString(key, value string) {
	r.fields[key] = value
}

// EncodeBytes stores a copy of value under key
func (r *ArchiveRecord) EncodeBytes(key string, value []byte) {
	r.fields[key] = append([]byte{}, value...)
}

// DecodeString returns the string stored under key. A byte value does not satisfy it.
func (r *ArchiveRecord) DecodeString(key string) (string, bool) {
	v, ok := r.fields[key].(string)
	return v, ok
}

// DecodeBytes returns a copy of the bytes stored under key. A string value does not satisfy it.
func (r *ArchiveRecord) DecodeBytes(key string) ([]byte, bool) {
	v, ok := r.fields[key].([]byte)
	if !ok {
		return nil, false
	}
	return append([]byte{}, v...), true
}

func (r *ArchiveRecord) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

func (r *ArchiveRecord) Len() int {
	return len(r.fields)
}

// Keys returns the record's keys in sorted order
func (r *ArchiveRecord) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the raw value under key: a string, a []byte copy, or nil
func (r *ArchiveRecord) Value(key string) interface{} {
	switch v := r.fields[key].(type) {
	case string:
		return v
	case []byte:
		return append([]byte{}, v...)
	default:
		return nil
	}
}
