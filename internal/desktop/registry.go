package desktop

import "fmt"

const (
	// DefaultRegistryKey is the per-user key, relative to HKEY_CURRENT_USER,
	// where Explorer persists the desktop order.
	DefaultRegistryKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\VirtualDesktops`
	// DefaultRegistryValue holds the packed REG_BINARY list of desktop GUIDs.
	DefaultRegistryValue = "VirtualDesktopIDs"
)

// BlobReader reads a binary value from the per-user configuration store.
type BlobReader interface {
	ReadBinary(key, value string) ([]byte, error)
}

// RegistrySource resolves indices against the persisted desktop list.
//
// Explorer rewrites the value when desktops are added, removed or
// reordered, but not necessarily right away. A lookup shortly after such a
// change can see the previous order; there is no way to detect this from
// the blob itself.
type RegistrySource struct {
	reader BlobReader
	key    string
	value  string
}

// NewRegistrySource reads value under key through reader. Empty key or
// value select the defaults.
func NewRegistrySource(reader BlobReader, key, value string) *RegistrySource {
	if key == "" {
		key = DefaultRegistryKey
	}
	if value == "" {
		value = DefaultRegistryValue
	}
	return &RegistrySource{reader: reader, key: key, value: value}
}

func (s *RegistrySource) Name() string {
	return "registry"
}

// Path returns the key and value the source reads.
func (s *RegistrySource) Path() (string, string) {
	return s.key, s.value
}

// Lookup reads a fresh snapshot on every call.
func (s *RegistrySource) Lookup(index int) (ID, error) {
	blob, err := s.read()
	if err != nil {
		return ID{}, err
	}

	count := len(blob) / IDSize
	if index < 0 || index >= count {
		return ID{}, fmt.Errorf("%w: index %d, %d desktops", ErrIndexOutOfRange, index, count)
	}
	return fromGUID(blob[index*IDSize : (index+1)*IDSize]), nil
}

func (s *RegistrySource) List() ([]ID, error) {
	blob, err := s.read()
	if err != nil {
		return nil, err
	}
	return DecodeList(blob), nil
}

func (s *RegistrySource) read() ([]byte, error) {
	if s.reader == nil {
		return nil, fmt.Errorf("%w: no registry reader", ErrStrategyUnavailable)
	}
	blob, err := s.reader.ReadBinary(s.key, s.value)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s\\%s: %w", ErrStrategyUnavailable, s.key, s.value, err)
	}
	return blob, nil
}
