package mover

import (
	"errors"
	"fmt"

	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/logging"
	"github.com/yourusername/movetodesktop/internal/session"
	"github.com/yourusername/movetodesktop/internal/window"
)

// ErrNotReady is returned when the session has not acquired the desktop
// manager.
var ErrNotReady = errors.New("session not ready")

// MoveError reports a relocation the shell rejected.
type MoveError struct {
	Window  window.Handle
	Desktop desktop.ID
	Err     error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move window %s to desktop %s: %v", e.Window, e.Desktop, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Move relocates the top-level window h to the desktop id. Failures are
// reported once; a later hotkey press is a fresh attempt.
func Move(s *session.Session, h window.Handle, id desktop.ID) error {
	if s == nil || s.State() != session.Ready || s.Manager() == nil {
		return ErrNotReady
	}

	logging.Debug().
		Stringer("window", h).
		Stringer("desktop", id).
		Msg("MoveWindowToDesktop")

	if err := s.Manager().MoveWindowToDesktop(h, id); err != nil {
		return &MoveError{Window: h, Desktop: id, Err: err}
	}
	return nil
}
