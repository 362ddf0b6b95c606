//go:build !windows

package hotkey

import (
	"context"
	"errors"
)

// Listen is unavailable off Windows.
func Listen(ctx context.Context, bindings []Binding, onPress func(Binding)) error {
	return errors.New("global hotkeys are only available on windows")
}
