package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/window"
)

// fakePlatform records every call in order
type fakePlatform struct {
	initErr       error
	brokerErr     error
	managerErr    error
	enumeratorErr error

	calls []string
}

func (p *fakePlatform) Initialize() error {
	p.calls = append(p.calls, "initialize")
	return p.initErr
}

func (p *fakePlatform) Uninitialize() {
	p.calls = append(p.calls, "uninitialize")
}

func (p *fakePlatform) CreateBroker() (Broker, error) {
	p.calls = append(p.calls, "create-broker")
	if p.brokerErr != nil {
		return nil, p.brokerErr
	}
	return &fakeBroker{p: p}, nil
}

type fakeBroker struct{ p *fakePlatform }

func (b *fakeBroker) QueryManager() (Manager, error) {
	b.p.calls = append(b.p.calls, "query-manager")
	if b.p.managerErr != nil {
		return nil, b.p.managerErr
	}
	return &fakeManager{p: b.p}, nil
}

func (b *fakeBroker) QueryEnumerator() (Enumerator, error) {
	b.p.calls = append(b.p.calls, "query-enumerator")
	if b.p.enumeratorErr != nil {
		return nil, b.p.enumeratorErr
	}
	return &fakeEnumerator{p: b.p}, nil
}

func (b *fakeBroker) Release() {
	b.p.calls = append(b.p.calls, "release-broker")
}

type fakeManager struct{ p *fakePlatform }

func (m *fakeManager) MoveWindowToDesktop(h window.Handle, id desktop.ID) error {
	return nil
}

func (m *fakeManager) Release() {
	m.p.calls = append(m.p.calls, "release-manager")
}

type fakeEnumerator struct{ p *fakePlatform }

func (e *fakeEnumerator) GetDesktops() (desktop.Array, error) {
	return nil, errors.New("not used")
}

func (e *fakeEnumerator) Release() {
	e.p.calls = append(e.p.calls, "release-enumerator")
}

func TestEnsureReadySuccess(t *testing.T) {
	p := &fakePlatform{}
	s := New(p)

	if s.State() != Uninitialized {
		t.Fatalf("initial state = %v, want uninitialized", s.State())
	}
	if err := s.EnsureReady(); err != nil {
		t.Fatalf("EnsureReady failed: %v", err)
	}
	if s.State() != Ready {
		t.Errorf("state = %v, want ready", s.State())
	}
	if s.Manager() == nil {
		t.Error("Manager should be set")
	}
	if s.Enumerator() == nil {
		t.Error("Enumerator should be set")
	}

	want := []string{"initialize", "create-broker", "query-manager", "query-enumerator"}
	if !reflect.DeepEqual(p.calls, want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
}

func TestEnsureReadyShortCircuits(t *testing.T) {
	p := &fakePlatform{}
	s := New(p)

	if err := s.EnsureReady(); err != nil {
		t.Fatalf("first EnsureReady failed: %v", err)
	}
	n := len(p.calls)
	if err := s.EnsureReady(); err != nil {
		t.Fatalf("second EnsureReady failed: %v", err)
	}
	if len(p.calls) != n {
		t.Errorf("second EnsureReady touched the platform: %v", p.calls[n:])
	}
}

func TestEnsureReadyWithoutEnumerator(t *testing.T) {
	p := &fakePlatform{enumeratorErr: errors.New("E_NOINTERFACE")}
	s := New(p)

	if err := s.EnsureReady(); err != nil {
		t.Fatalf("EnsureReady should tolerate a missing enumerator: %v", err)
	}
	if s.State() != Ready {
		t.Errorf("state = %v, want ready", s.State())
	}
	if s.Enumerator() != nil {
		t.Error("Enumerator should be a nil interface")
	}
}

func TestEnsureReadyFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		platform *fakePlatform
		kind     error
		step     Step
		calls    []string
	}{
		{
			name:     "initialize",
			platform: &fakePlatform{initErr: boom},
			kind:     ErrUnreachable,
			step:     StepInitialize,
			calls:    []string{"initialize"},
		},
		{
			name:     "broker",
			platform: &fakePlatform{brokerErr: boom},
			kind:     ErrUnreachable,
			step:     StepBroker,
			calls:    []string{"initialize", "create-broker", "uninitialize"},
		},
		{
			name:     "manager",
			platform: &fakePlatform{managerErr: boom},
			kind:     ErrCapabilityMissing,
			step:     StepManager,
			calls:    []string{"initialize", "create-broker", "query-manager", "release-broker", "uninitialize"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.platform)
			err := s.EnsureReady()
			if !errors.Is(err, tt.kind) {
				t.Errorf("err = %v, want kind %v", err, tt.kind)
			}
			if !errors.Is(err, boom) {
				t.Errorf("err = %v, should wrap the platform error", err)
			}
			var serr *Error
			if !errors.As(err, &serr) || serr.Step != tt.step {
				t.Errorf("err = %v, want step %s", err, tt.step)
			}
			if s.State() != Failed {
				t.Errorf("state = %v, want failed", s.State())
			}
			if s.Manager() != nil || s.Enumerator() != nil {
				t.Error("handles should be released after failure")
			}
			if !reflect.DeepEqual(tt.platform.calls, tt.calls) {
				t.Errorf("calls = %v, want %v", tt.platform.calls, tt.calls)
			}
		})
	}
}

func TestFailedIsSticky(t *testing.T) {
	p := &fakePlatform{brokerErr: errors.New("REGDB_E_CLASSNOTREG")}
	s := New(p)

	if err := s.EnsureReady(); err == nil {
		t.Fatal("expected failure")
	}
	n := len(p.calls)

	// Fixing the platform must not matter until an explicit teardown
	p.brokerErr = nil
	for i := 0; i < 5; i++ {
		if err := s.EnsureReady(); !errors.Is(err, ErrInitFailed) {
			t.Fatalf("attempt %d: err = %v, want ErrInitFailed", i, err)
		}
	}
	if len(p.calls) != n {
		t.Errorf("failed session touched the platform: %v", p.calls[n:])
	}

	s.Close()
	if s.State() != Uninitialized {
		t.Fatalf("state after Close = %v, want uninitialized", s.State())
	}
	if err := s.EnsureReady(); err != nil {
		t.Errorf("EnsureReady after Close failed: %v", err)
	}
}

func TestCloseReleasesInReverseOrder(t *testing.T) {
	p := &fakePlatform{}
	s := New(p)
	if err := s.EnsureReady(); err != nil {
		t.Fatalf("EnsureReady failed: %v", err)
	}
	p.calls = nil

	s.Close()
	want := []string{"release-enumerator", "release-manager", "release-broker", "uninitialize"}
	if !reflect.DeepEqual(p.calls, want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
	if s.State() != Uninitialized {
		t.Errorf("state = %v, want uninitialized", s.State())
	}
	if s.Manager() != nil || s.Enumerator() != nil {
		t.Error("handles should be cleared")
	}
}

func TestCloseNeverInitialized(t *testing.T) {
	p := &fakePlatform{}
	s := New(p)

	s.Close()
	s.Close()
	if len(p.calls) != 0 {
		t.Errorf("Close without init touched the platform: %v", p.calls)
	}
}

func TestNilPlatform(t *testing.T) {
	s := New(nil)
	if err := s.EnsureReady(); !errors.Is(err, ErrUnreachable) {
		t.Errorf("err = %v, want ErrUnreachable", err)
	}
	s.Close()
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Uninitialized: "uninitialized",
		Ready:         "ready",
		Failed:        "failed",
		State(9):      "state(9)",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}
