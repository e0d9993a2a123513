package archive

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/valueobject"
)

const (
	jsonDocumentVersion = 1
	entryTypeString     = "string"
	entryTypeBytes      = "bytes"
)

type jsonDocument struct {
	Version int         `json:"version"`
	Entries []jsonEntry `json:"entries"`
}

// jsonEntry keeps the value type explicit so a string never decodes as bytes
type jsonEntry struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// JSONFormat stores records as a versioned list of typed entries
type JSONFormat struct{}

func NewJSONFormat() *JSONFormat {
	return &JSONFormat{}
}

func (f *JSONFormat) Name() string {
	return FormatJSON
}

func (f *JSONFormat) Marshal(record *valueobject.ArchiveRecord) ([]byte, error) {
	doc := jsonDocument{Version: jsonDocumentVersion, Entries: make([]jsonEntry, 0, record.Len())}
	for _, key := range record.Keys() {
		switch v := record.Value(key).(type) {
		case string:
			doc.Entries = append(doc.Entries, jsonEntry{Key: key, Type: entryTypeString, Value: v})
		case []byte:
			doc.Entries = append(doc.Entries, jsonEntry{Key: key, Type: entryTypeBytes, Value: base64.StdEncoding.EncodeToString(v)})
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, domain.ErrArchiveFormat(FormatJSON, err)
	}
	return data, nil
}

func (f *JSONFormat) Unmarshal(data []byte) (*valueobject.ArchiveRecord, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.ErrArchiveFormat(FormatJSON, err)
	}
	if doc.Version != jsonDocumentVersion {
		return nil, domain.ErrArchiveFormat(FormatJSON, fmt.Errorf("unsupported archive version %d", doc.Version))
	}

	record := valueobject.NewArchiveRecord()
	for _, entry := range doc.Entries {
		switch entry.Type {
		case entryTypeString:
			record.EncodeString(entry.Key, entry.Value)
		case entryTypeBytes:
			raw, err := base64.StdEncoding.DecodeString(entry.Value)
			if err != nil {
				return nil, domain.ErrArchiveFormat(FormatJSON, fmt.Errorf("entry %q: %w", entry.Key, err))
			}
			record.EncodeBytes(entry.Key, raw)
		default:
			return nil, domain.ErrArchiveFormat(FormatJSON, fmt.Errorf("entry %q has unknown type %q", entry.Key, entry.Type))
		}
	}
	return record, nil
}
