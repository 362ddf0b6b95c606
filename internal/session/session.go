// Package session owns the COM connection to the shell's desktop services.
//
// A Session is created once per thread that handles move requests and is
// passed to every operation that needs the shell. The first EnsureReady
// acquires the services; a failure is remembered until Close so a broken
// shell is not re-activated on every hotkey press.
package session

import (
	"errors"
	"fmt"

	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/logging"
	"github.com/yourusername/movetodesktop/internal/window"
)

// State is the session lifecycle stage.
type State int

const (
	Uninitialized State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrUnreachable means COM or the shell's service provider could not be
	// reached.
	ErrUnreachable = errors.New("desktop service unreachable")
	// ErrCapabilityMissing means the public desktop manager was not offered.
	ErrCapabilityMissing = errors.New("desktop manager capability missing")
	// ErrInitFailed is returned by EnsureReady after an earlier failure.
	ErrInitFailed = errors.New("session initialization already failed")
)

// Step names an acquisition step for error reporting.
type Step string

const (
	StepInitialize Step = "initialize"
	StepBroker     Step = "broker"
	StepManager    Step = "manager"
)

// Error records which acquisition step failed.
type Error struct {
	Step Step
	Kind error // ErrUnreachable or ErrCapabilityMissing
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Step, e.Err)
}

// Unwrap exposes both the kind and the underlying platform error.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Manager is the public desktop manager.
type Manager interface {
	MoveWindowToDesktop(h window.Handle, id desktop.ID) error
	Release()
}

// Enumerator is the internal desktop manager, when bound.
type Enumerator interface {
	desktop.Enumerator
	Release()
}

// Broker hands out the shell's desktop capabilities.
type Broker interface {
	QueryManager() (Manager, error)
	// QueryEnumerator may fail on Windows builds whose internal interface
	// is not known; the session carries on without it.
	QueryEnumerator() (Enumerator, error)
	Release()
}

// Platform is the COM runtime of the calling thread.
type Platform interface {
	Initialize() error
	Uninitialize()
	CreateBroker() (Broker, error)
}

// Session holds the acquired capabilities.
type Session struct {
	platform Platform
	state    State

	initialized bool
	broker      Broker
	manager     Manager
	enumerator  Enumerator
}

// New returns an uninitialized session over platform.
func New(platform Platform) *Session {
	return &Session{platform: platform}
}

// State returns the lifecycle stage.
func (s *Session) State() State {
	return s.state
}

// Manager returns the public desktop manager, nil unless Ready.
func (s *Session) Manager() Manager {
	return s.manager
}

// Enumerator returns the internal desktop manager, nil if it could not be
// bound. The returned interface is a true nil in that case.
func (s *Session) Enumerator() desktop.Enumerator {
	if s.enumerator == nil {
		return nil
	}
	return s.enumerator
}

// EnsureReady acquires the desktop services once. It returns immediately
// when already Ready, and returns ErrInitFailed without touching the
// platform after a failed attempt.
func (s *Session) EnsureReady() error {
	switch s.state {
	case Ready:
		return nil
	case Failed:
		logging.Debug().Msg("session already failed, not retrying")
		return ErrInitFailed
	}

	logging.Debug().Msg("initializing session")
	if err := s.acquire(); err != nil {
		s.release()
		s.state = Failed
		logging.Warn().Err(err).Msg("session initialization failed")
		return err
	}

	s.state = Ready
	logging.Debug().
		Bool("enumerator", s.enumerator != nil).
		Msg("session ready")
	return nil
}

func (s *Session) acquire() error {
	if s.platform == nil {
		return &Error{Step: StepInitialize, Kind: ErrUnreachable, Err: errors.New("no platform")}
	}

	if err := s.platform.Initialize(); err != nil {
		return &Error{Step: StepInitialize, Kind: ErrUnreachable, Err: err}
	}
	s.initialized = true

	broker, err := s.platform.CreateBroker()
	if err != nil {
		return &Error{Step: StepBroker, Kind: ErrUnreachable, Err: err}
	}
	s.broker = broker

	manager, err := broker.QueryManager()
	if err != nil {
		return &Error{Step: StepManager, Kind: ErrCapabilityMissing, Err: err}
	}
	s.manager = manager

	enumerator, err := broker.QueryEnumerator()
	if err != nil {
		logging.Info().Err(err).Msg("internal desktop manager unavailable, using registry")
		return nil
	}
	s.enumerator = enumerator
	return nil
}

// release drops every handle in reverse acquisition order.
func (s *Session) release() {
	if s.enumerator != nil {
		s.enumerator.Release()
		s.enumerator = nil
	}
	if s.manager != nil {
		s.manager.Release()
		s.manager = nil
	}
	if s.broker != nil {
		s.broker.Release()
		s.broker = nil
	}
	if s.initialized {
		s.platform.Uninitialize()
		s.initialized = false
	}
}

// Close releases all handles and returns the session to Uninitialized. It
// is a no-op on a session that never initialized, and it also clears a
// Failed state so a later EnsureReady tries again.
func (s *Session) Close() {
	if s.state == Ready {
		logging.Debug().Msg("releasing session")
	}
	s.release()
	s.state = Uninitialized
}
