package usecase

// ArchiveWriter is the encoding side of an archive
type ArchiveWriter interface {
	AllowsKeyedCoding() bool
	EncodeString(key, value string)
	EncodeBytes(key string, value []byte)
}

// ArchiveReader is the decoding side of an archive
type ArchiveReader interface {
	AllowsKeyedCoding() bool
	DecodeString(key string) (string, bool)
	DecodeBytes(key string) ([]byte, bool)
	Has(key string) bool
}

// ArchivalCodec converts zones to and from keyed archive records.
// Both methods panic when handed an archive that does not allow keyed coding.
type ArchivalCodec interface {
	Encode(z Zone, w ArchiveWriter)
	Decode(r ArchiveReader) (Zone, error)
}
