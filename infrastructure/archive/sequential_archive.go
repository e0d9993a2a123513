package archive

// SequentialArchive is an unkeyed archive: values are appended and read back in
// order, and keys are ignored. Zone codecs refuse it.
type SequentialArchive struct {
	values []interface{}
	cursor int
}

func NewSequentialArchive() *SequentialArchive {
	return &SequentialArchive{}
}

func (a *SequentialArchive) AllowsKeyedCoding() bool {
	return false
}

func (a *SequentialArchive) EncodeString(_ string, value string) {
	a.values = append(a.values, value)
}

func (a *SequentialArchive) EncodeBytes(_ string, value []byte) {
	a.values = append(a.values, append([]byte{}, value...))
}

// DecodeString consumes the next value if it is a string
func (a *SequentialArchive) DecodeString(_ string) (string, bool) {
	if a.cursor >= len(a.values) {
		return "", false
	}
	v, ok := a.values[a.cursor].(string)
	if ok {
		a.cursor++
	}
	return v, ok
}

// DecodeBytes consumes the next value if it is a byte slice
func (a *SequentialArchive) DecodeBytes(_ string) ([]byte, bool) {
	if a.cursor >= len(a.values) {
		return nil, false
	}
	v, ok := a.values[a.cursor].([]byte)
	if ok {
		a.cursor++
	}
	return append([]byte{}, v...), ok
}

func (a *SequentialArchive) Has(_ string) bool {
	return a.cursor < len(a.values)
}

func (a *SequentialArchive) Len() int {
	return len(a.values)
}
