//go:build windows

package desktop

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// UserRegistry reads values under HKEY_CURRENT_USER.
type UserRegistry struct{}

// NewUserRegistry returns the per-user registry reader.
func NewUserRegistry() BlobReader {
	return UserRegistry{}
}

func (UserRegistry) ReadBinary(key, value string) ([]byte, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, key, registry.QUERY_VALUE)
	if err != nil {
		return nil, fmt.Errorf("open key: %w", err)
	}
	defer k.Close()

	data, _, err := k.GetBinaryValue(value)
	if err != nil {
		return nil, fmt.Errorf("read value: %w", err)
	}
	return data, nil
}
