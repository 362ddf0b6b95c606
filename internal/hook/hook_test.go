package hook

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/session"
	"github.com/yourusername/movetodesktop/internal/window"
)

func testIDs(n int) []desktop.ID {
	ids := make([]desktop.ID, n)
	for i := range ids {
		id, err := desktop.ParseID(fmt.Sprintf("%08x-1111-4000-8000-%012x", 0xA0000000+i, i))
		if err != nil {
			panic(err)
		}
		ids[i] = id
	}
	return ids
}

type move struct {
	h  window.Handle
	id desktop.ID
}

// shell fakes every COM capability the handler reaches
type shell struct {
	desktops   []desktop.ID
	noInternal bool
	initErr    error
	moveErr    error
	panicOnGet bool

	inits int
	moves []move
}

func (s *shell) Initialize() error { s.inits++; return s.initErr }
func (s *shell) Uninitialize()     {}

func (s *shell) CreateBroker() (session.Broker, error) { return s, nil }

func (s *shell) QueryManager() (session.Manager, error) { return s, nil }

func (s *shell) QueryEnumerator() (session.Enumerator, error) {
	if s.noInternal {
		return nil, errors.New("E_NOINTERFACE")
	}
	return s, nil
}

func (s *shell) Release() {}

func (s *shell) MoveWindowToDesktop(h window.Handle, id desktop.ID) error {
	s.moves = append(s.moves, move{h, id})
	return s.moveErr
}

func (s *shell) GetDesktops() (desktop.Array, error) {
	if s.panicOnGet {
		panic("access violation")
	}
	return &array{ids: s.desktops}, nil
}

type array struct{ ids []desktop.ID }

func (a *array) Count() (int, error)                { return len(a.ids), nil }
func (a *array) IDAt(index int) (desktop.ID, error) { return a.ids[index], nil }
func (a *array) Release()                           {}

type registry struct{ blob []byte }

func (r *registry) ReadBinary(key, value string) ([]byte, error) {
	if r.blob == nil {
		return nil, errors.New("not found")
	}
	return r.blob, nil
}

// owner 0x100 owns the dialog 0x200
func rootOwner(h window.Handle) window.Handle {
	if h == 0x200 {
		return 0x100
	}
	return 0
}

func newHandler(sh *shell, reg *registry) *Handler {
	opts := Options{Locator: window.NewLocator(rootOwner)}
	if reg != nil {
		opts.Registry = desktop.NewRegistrySource(reg, "", "")
	}
	return NewHandler(session.New(sh), opts)
}

func TestHandleMovesToResolvedDesktop(t *testing.T) {
	ids := testIDs(5)
	sh := &shell{desktops: ids}
	h := newHandler(sh, nil)

	res := h.Handle(NewEvent(0xABC3, 0x200))
	if res.Outcome != Moved {
		t.Fatalf("outcome = %v (%v), want moved", res.Outcome, res.Err)
	}
	if res.Index != 3 {
		t.Errorf("index = %d, want 3", res.Index)
	}
	if res.Source != "enumeration" {
		t.Errorf("source = %q, want enumeration", res.Source)
	}
	if len(sh.moves) != 1 {
		t.Fatalf("moves = %d, want 1", len(sh.moves))
	}
	if sh.moves[0].id != ids[3] {
		t.Errorf("moved to %s, want %s", sh.moves[0].id, ids[3])
	}
	if sh.moves[0].h != 0x100 {
		t.Errorf("moved window %s, want root owner 0x100", sh.moves[0].h)
	}
}

func TestHandleOutOfRangeNeverMoves(t *testing.T) {
	sh := &shell{desktops: testIDs(5)}
	h := newHandler(sh, nil)

	res := h.Handle(NewEvent(0xABCE, 0x100))
	if res.Outcome != Dropped {
		t.Fatalf("outcome = %v, want dropped", res.Outcome)
	}
	if res.Index != 14 {
		t.Errorf("index = %d, want 14", res.Index)
	}
	if !errors.Is(res.Err, desktop.ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", res.Err)
	}
	if len(sh.moves) != 0 {
		t.Errorf("move invoked %d times, want 0", len(sh.moves))
	}
}

func TestHandlePassesThroughOrdinaryCommands(t *testing.T) {
	sh := &shell{desktops: testIDs(5)}
	h := newHandler(sh, nil)

	for _, param := range []uint32{0x0002, 0xF010, 0xF060, 0} {
		res := h.Handle(NewEvent(param, 0x100))
		if res.Outcome != Passed {
			t.Errorf("param %#x: outcome = %v, want passed", param, res.Outcome)
		}
		if res.Err != nil {
			t.Errorf("param %#x: err = %v", param, res.Err)
		}
	}
	if sh.inits != 0 {
		t.Errorf("session initialized %d times for pass-through events", sh.inits)
	}
	if len(sh.moves) != 0 {
		t.Error("pass-through must not move")
	}
}

func TestHandleFallsBackToRegistry(t *testing.T) {
	ids := testIDs(3)
	sh := &shell{noInternal: true}
	h := newHandler(sh, &registry{blob: desktop.EncodeList(ids)})

	res := h.Handle(NewEvent(0xABC2, 0x100))
	if res.Outcome != Moved {
		t.Fatalf("outcome = %v (%v), want moved", res.Outcome, res.Err)
	}
	if res.Source != "registry" {
		t.Errorf("source = %q, want registry", res.Source)
	}
	if sh.moves[0].id != ids[2] {
		t.Errorf("moved to %s, want %s", sh.moves[0].id, ids[2])
	}
}

func TestHandleNoStrategy(t *testing.T) {
	sh := &shell{noInternal: true}
	h := newHandler(sh, nil)

	res := h.Handle(NewEvent(0xABC0, 0x100))
	if res.Outcome != Dropped || !errors.Is(res.Err, desktop.ErrStrategyUnavailable) {
		t.Errorf("result = %v / %v, want dropped with ErrStrategyUnavailable", res.Outcome, res.Err)
	}
}

func TestHandleSessionFailureIsSticky(t *testing.T) {
	sh := &shell{initErr: errors.New("CO_E_NOTINITIALIZED")}
	h := newHandler(sh, nil)

	for i := 0; i < 3; i++ {
		res := h.Handle(NewEvent(0xABC1, 0x100))
		if res.Outcome != Dropped {
			t.Fatalf("press %d: outcome = %v, want dropped", i, res.Outcome)
		}
	}
	if sh.inits != 1 {
		t.Errorf("initialize called %d times, want 1", sh.inits)
	}
}

func TestHandleMoveRejected(t *testing.T) {
	sh := &shell{desktops: testIDs(2), moveErr: errors.New("E_ACCESSDENIED")}
	h := newHandler(sh, nil)

	res := h.Handle(NewEvent(0xABC1, 0x100))
	if res.Outcome != Dropped {
		t.Fatalf("outcome = %v, want dropped", res.Outcome)
	}
	if len(sh.moves) != 1 {
		t.Errorf("moves = %d, want 1 with no retry", len(sh.moves))
	}
}

func TestHandleRecoversPanic(t *testing.T) {
	sh := &shell{desktops: testIDs(2), panicOnGet: true}
	h := newHandler(sh, nil)

	res := h.Handle(NewEvent(0xABC1, 0x100))
	if res.Outcome != Dropped {
		t.Fatalf("outcome = %v, want dropped", res.Outcome)
	}
	if !errors.Is(res.Err, ErrPanic) {
		t.Errorf("err = %v, want ErrPanic", res.Err)
	}
}

func TestRegistryStrategyIgnoresEnumerator(t *testing.T) {
	live := testIDs(5)
	persisted := testIDs(2)
	sh := &shell{desktops: live}
	opts := Options{
		Strategy: desktop.StrategyRegistry,
		Registry: desktop.NewRegistrySource(&registry{blob: desktop.EncodeList(persisted)}, "", ""),
		Locator:  window.NewLocator(rootOwner),
	}
	h := NewHandler(session.New(sh), opts)

	res := h.Handle(NewEvent(0xABC3, 0x100))
	if !errors.Is(res.Err, desktop.ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange from the registry", res.Err)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := map[Outcome]string{Passed: "passed", Dropped: "dropped", Moved: "moved", Outcome(7): "outcome(7)"}
	for o, want := range tests {
		if o.String() != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), o.String(), want)
		}
	}
}

func TestNewEventIDsDiffer(t *testing.T) {
	a := NewEvent(1, 1)
	b := NewEvent(1, 1)
	if a.ID == b.ID {
		t.Error("events should get distinct ids")
	}
}
