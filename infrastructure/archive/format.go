package archive

import (
	"fmt"
	"os"
	"strings"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/valueobject"
)

// Format names accepted by NewFormat
const (
	FormatJSON     = "json"
	FormatProtobuf = "protobuf"
)

// Format turns keyed archive records into bytes and back
type Format interface {
	Name() string
	Marshal(record *valueobject.ArchiveRecord) ([]byte, error)
	Unmarshal(data []byte) (*valueobject.ArchiveRecord, error)
}

// NewFormat returns the named format, wrapped in snappy framing when compress is set
func NewFormat(name string, compress bool) (Format, error) {
	var format Format
	switch strings.ToLower(name) {
	case "", FormatJSON:
		format = NewJSONFormat()
	case FormatProtobuf:
		format = NewProtobufFormat()
	default:
		return nil, domain.ErrInvalidInput("format", fmt.Sprintf("unknown archive format %q", name))
	}

	if compress {
		format = NewSnappyFormat(format)
	}
	return format, nil
}

// WriteFile marshals record with format and writes it to path with 0600 permissions
func WriteFile(path string, format Format, record *valueobject.ArchiveRecord) error {
	data, err := format.Marshal(record)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return domain.ErrArchiveFormat(format.Name(), err).WithDetails("path", path)
	}
	return nil
}

// ReadFile reads path and unmarshals it with format
func ReadFile(path string, format Format) (*valueobject.ArchiveRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.ErrArchiveFormat(format.Name(), err).WithDetails("path", path)
	}
	return format.Unmarshal(data)
}
