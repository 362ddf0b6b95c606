package window

import "fmt"

// Handle is an opaque window handle (HWND).
type Handle uintptr

func (h Handle) String() string {
	return fmt.Sprintf("%#x", uintptr(h))
}

// AncestorFunc returns the root owner of h, or 0 if it has none.
type AncestorFunc func(h Handle) Handle

// Locator finds the window that should actually be relocated.
type Locator struct {
	rootOwner AncestorFunc
}

// NewLocator uses rootOwner to walk the ownership chain. A nil func selects
// the system implementation.
func NewLocator(rootOwner AncestorFunc) *Locator {
	if rootOwner == nil {
		rootOwner = systemRootOwner
	}
	return &Locator{rootOwner: rootOwner}
}

// RootOf returns the top-level, non-owned ancestor of h. A window without
// one is returned unchanged.
func (l *Locator) RootOf(h Handle) Handle {
	if root := l.rootOwner(h); root != 0 {
		return root
	}
	return h
}
