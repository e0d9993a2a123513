package archive

import (
	"github.com/golang/snappy"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/valueobject"
)

// SnappyFormat compresses the output of another format with snappy block encoding
type SnappyFormat struct {
	inner Format
}

func NewSnappyFormat(inner Format) *SnappyFormat {
	return &SnappyFormat{inner: inner}
}

func (f *SnappyFormat) Name() string {
	return f.inner.Name() + "+snappy"
}

func (f *SnappyFormat) Marshal(record *valueobject.ArchiveRecord) ([]byte, error) {
	data, err := f.inner.Marshal(record)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

func (f *SnappyFormat) Unmarshal(data []byte) (*valueobject.ArchiveRecord, error) {
	decoded, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, domain.ErrArchiveFormat(f.Name(), err)
	}
	return f.inner.Unmarshal(decoded)
}
