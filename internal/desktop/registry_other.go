//go:build !windows

package desktop

import "errors"

// UserRegistry is unavailable off Windows.
type UserRegistry struct{}

// NewUserRegistry returns a reader that always fails.
func NewUserRegistry() BlobReader {
	return UserRegistry{}
}

func (UserRegistry) ReadBinary(key, value string) ([]byte, error) {
	return nil, errors.New("registry is only available on windows")
}
