package impl

import (
	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/entity"
	"github.com/ca-srg/tzcore/domain/valueobject"
	usecase "github.com/ca-srg/tzcore/usecase/interface"
)

const unkeyedCodingMessage = "unkeyed coding is unsupported"

// ArchivalCodecImpl writes zones as keyed records and reads them back through
// the zone service, so decoded names are resolved like any other.
type ArchivalCodecImpl struct {
	service usecase.TimeZoneService
}

// NewArchivalCodec creates a new instance of ArchivalCodec
func NewArchivalCodec(service usecase.TimeZoneService) usecase.ArchivalCodec {
	return &ArchivalCodecImpl{service: service}
}

// Encode writes z to w. The local zone is written as a placeholder only.
func (c *ArchivalCodecImpl) Encode(z usecase.Zone, w usecase.ArchiveWriter) {
	if !w.AllowsKeyedCoding() {
		panic(unkeyedCodingMessage)
	}

	if z.Kind() == entity.ZoneKindLocal {
		w.EncodeString(valueobject.ArchiveKeyClass, valueobject.ArchiveClassLocalTimeZone)
		return
	}

	tz := z.Identity()
	w.EncodeString(valueobject.ArchiveKeyClass, valueobject.ArchiveClassTimeZone)
	w.EncodeString(valueobject.ArchiveKeyName, tz.Name())
	if tz.HasPayload() {
		w.EncodeBytes(valueobject.ArchiveKeyData, tz.Payload())
	}
}

// Decode reads a zone from r. A local zone placeholder decodes to the
// service's local zone regardless of any other fields in the record.
func (c *ArchivalCodecImpl) Decode(r usecase.ArchiveReader) (usecase.Zone, error) {
	if !r.AllowsKeyedCoding() {
		panic(unkeyedCodingMessage)
	}

	if class, ok := r.DecodeString(valueobject.ArchiveKeyClass); ok && class == valueobject.ArchiveClassLocalTimeZone {
		return c.service.Local(), nil
	}

	name, ok := r.DecodeString(valueobject.ArchiveKeyName)
	if !ok {
		return nil, domain.ErrMissingMandatoryField(valueobject.ArchiveKeyName)
	}

	if payload, ok := r.DecodeBytes(valueobject.ArchiveKeyData); ok {
		return c.service.ConstructWithPayload(name, payload)
	}
	return c.service.Construct(name)
}
