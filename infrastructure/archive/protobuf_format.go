package archive

import (
	"encoding/base64"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ca-srg/tzcore/domain"
	"github.com/ca-srg/tzcore/domain/valueobject"
)

// bytesMarker is the single key of the nested struct that carries a byte value
const bytesMarker = "$bytes"

// ProtobufFormat stores records as a google.protobuf.Struct in wire format.
// String entries are string values; byte entries are {"$bytes": <base64>} structs.
type ProtobufFormat struct{}

func NewProtobufFormat() *ProtobufFormat {
	return &ProtobufFormat{}
}

func (f *ProtobufFormat) Name() string {
	return FormatProtobuf
}

func (f *ProtobufFormat) Marshal(record *valueobject.ArchiveRecord) ([]byte, error) {
	msg := &structpb.Struct{Fields: make(map[string]*structpb.Value, record.Len())}
	for _, key := range record.Keys() {
		switch v := record.Value(key).(type) {
		case string:
			msg.Fields[key] = structpb.NewStringValue(v)
		case []byte:
			msg.Fields[key] = structpb.NewStructValue(&structpb.Struct{
				Fields: map[string]*structpb.Value{
					bytesMarker: structpb.NewStringValue(base64.StdEncoding.EncodeToString(v)),
				},
			})
		}
	}

	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	if err != nil {
		return nil, domain.ErrArchiveFormat(FormatProtobuf, err)
	}
	return data, nil
}

func (f *ProtobufFormat) Unmarshal(data []byte) (*valueobject.ArchiveRecord, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		return nil, domain.ErrArchiveFormat(FormatProtobuf, err)
	}

	record := valueobject.NewArchiveRecord()
	for key, value := range msg.GetFields() {
		switch kind := value.GetKind().(type) {
		case *structpb.Value_StringValue:
			record.EncodeString(key, kind.StringValue)
		case *structpb.Value_StructValue:
			encoded, ok := kind.StructValue.GetFields()[bytesMarker]
			if !ok {
				return nil, domain.ErrArchiveFormat(FormatProtobuf, fmt.Errorf("field %q is a struct without %s", key, bytesMarker))
			}
			raw, err := base64.StdEncoding.DecodeString(encoded.GetStringValue())
			if err != nil {
				return nil, domain.ErrArchiveFormat(FormatProtobuf, fmt.Errorf("field %q: %w", key, err))
			}
			record.EncodeBytes(key, raw)
		default:
			return nil, domain.ErrArchiveFormat(FormatProtobuf, fmt.Errorf("field %q has unsupported kind %T", key, kind))
		}
	}
	return record, nil
}
