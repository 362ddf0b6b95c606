package desktop

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSize is the size in bytes of one packed desktop identifier.
const IDSize = 16

// ID identifies one virtual desktop. The bytes are in canonical RFC 4122
// order, so String matches what the shell prints in braces.
type ID uuid.UUID

// ParseID parses the textual form, with or without braces.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid desktop id %q: %w", s, err)
	}
	return ID(u), nil
}

// FromGUIDBytes decodes a GUID as Windows lays it out in memory and in the
// registry: the first three fields little-endian, the last eight bytes as-is.
func FromGUIDBytes(b []byte) (ID, error) {
	if len(b) != IDSize {
		return ID{}, fmt.Errorf("desktop id needs %d bytes, got %d", IDSize, len(b))
	}
	return fromGUID(b), nil
}

func fromGUID(b []byte) ID {
	var id ID
	id[0], id[1], id[2], id[3] = b[3], b[2], b[1], b[0]
	id[4], id[5] = b[5], b[4]
	id[6], id[7] = b[7], b[6]
	copy(id[8:], b[8:IDSize])
	return id
}

// GUIDBytes is the inverse of FromGUIDBytes.
func (id ID) GUIDBytes() [IDSize]byte {
	var b [IDSize]byte
	b[0], b[1], b[2], b[3] = id[3], id[2], id[1], id[0]
	b[4], b[5] = id[5], id[4]
	b[6], b[7] = id[7], id[6]
	copy(b[8:], id[8:])
	return b
}

// String returns the braced upper-case form used by the shell.
func (id ID) String() string {
	return fmt.Sprintf("{%X-%X-%X-%X-%X}", id[0:4], id[4:6], id[6:8], id[8:10], id[10:16])
}

// IsZero reports whether id is the nil GUID.
func (id ID) IsZero() bool {
	return id == ID{}
}

// DecodeList decodes a packed sequence of GUIDs. Trailing bytes that do not
// form a whole identifier are ignored.
func DecodeList(blob []byte) []ID {
	count := len(blob) / IDSize
	ids := make([]ID, count)
	for i := 0; i < count; i++ {
		ids[i] = fromGUID(blob[i*IDSize : (i+1)*IDSize])
	}
	return ids
}

// EncodeList packs ids the way the shell persists them.
func EncodeList(ids []ID) []byte {
	blob := make([]byte, 0, len(ids)*IDSize)
	for _, id := range ids {
		b := id.GUIDBytes()
		blob = append(blob, b[:]...)
	}
	return blob
}
