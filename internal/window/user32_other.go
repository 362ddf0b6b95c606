//go:build !windows

package window

import "errors"

var errUnsupported = errors.New("window management is only available on windows")

func systemRootOwner(h Handle) Handle {
	return 0
}

// Foreground is unavailable off Windows.
func Foreground() (Handle, error) {
	return 0, errUnsupported
}

// IsWindow always reports false off Windows.
func IsWindow(h Handle) bool {
	return false
}

// Title is empty off Windows.
func Title(h Handle) string {
	return ""
}

// PostSysCommand is unavailable off Windows.
func PostSysCommand(h Handle, param uint32) error {
	return errUnsupported
}
