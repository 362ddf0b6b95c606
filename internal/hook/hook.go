// Package hook turns an intercepted WM_SYSCOMMAND into a window move.
package hook

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/movetodesktop/internal/command"
	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/logging"
	"github.com/yourusername/movetodesktop/internal/mover"
	"github.com/yourusername/movetodesktop/internal/session"
	"github.com/yourusername/movetodesktop/internal/window"
)

// ErrPanic wraps a panic recovered while handling an event.
var ErrPanic = errors.New("panic while handling event")

// Event is one intercepted system command.
type Event struct {
	ID     uuid.UUID
	Param  uint32
	Window window.Handle
}

// NewEvent stamps a new correlation id.
func NewEvent(param uint32, h window.Handle) Event {
	return Event{ID: uuid.New(), Param: param, Window: h}
}

// Outcome is what happened to an event.
type Outcome int

const (
	// Passed: not a desktop request, left for normal handling.
	Passed Outcome = iota
	// Dropped: a desktop request that could not be carried out.
	Dropped
	// Moved: the window was relocated.
	Moved
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Dropped:
		return "dropped"
	case Moved:
		return "moved"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result describes how an event was handled.
type Result struct {
	Event   Event
	Outcome Outcome
	Index   int
	Root    window.Handle
	Desktop desktop.ID
	Source  string
	Err     error
}

// Options configures a Handler.
type Options struct {
	Strategy desktop.Strategy
	Registry *desktop.RegistrySource
	Locator  *window.Locator
}

// Handler runs the decode, resolve, locate and move pipeline. It is not
// safe for concurrent use; the session it holds is bound to one thread.
type Handler struct {
	session  *session.Session
	strategy desktop.Strategy
	registry *desktop.RegistrySource
	locator  *window.Locator
}

// NewHandler returns a handler that acquires s lazily on the first
// desktop request.
func NewHandler(s *session.Session, opts Options) *Handler {
	if opts.Strategy == "" {
		opts.Strategy = desktop.StrategyAuto
	}
	if opts.Locator == nil {
		opts.Locator = window.NewLocator(nil)
	}
	return &Handler{
		session:  s,
		strategy: opts.Strategy,
		registry: opts.Registry,
		locator:  opts.Locator,
	}
}

// Resolver returns the resolver for the session's current capabilities.
func (h *Handler) Resolver() *desktop.Resolver {
	return desktop.ForStrategy(h.strategy, h.session.Enumerator(), h.registry)
}

// Handle processes ev and always returns; the caller forwards the event to
// the next hook regardless of the outcome. Panics are recovered and
// reported as Dropped.
func (h *Handler) Handle(ev Event) (res Result) {
	res = Result{Event: ev, Outcome: Passed}

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = Dropped
			res.Err = fmt.Errorf("%w: %v", ErrPanic, r)
			logging.Error().
				Str("event", ev.ID.String()).
				Interface("panic", r).
				Msg("recovered while handling event")
		}
	}()

	req, ok := command.Decode(ev.Param)
	if !ok {
		return res
	}
	res.Index = req.Index

	log := logging.Logger.With().
		Str("event", ev.ID.String()).
		Uint32("param", ev.Param).
		Int("desktop", req.Index).
		Stringer("window", ev.Window).
		Logger()
	log.Debug().Msg("desktop move requested")

	if err := h.session.EnsureReady(); err != nil {
		return drop(res, err, "session not ready")
	}

	id, src, err := h.Resolver().Resolve(req.Index)
	if src != nil {
		res.Source = src.Name()
	}
	if err != nil {
		return drop(res, err, "failed to resolve desktop")
	}
	res.Desktop = id

	res.Root = h.locator.RootOf(ev.Window)
	log.Debug().Stringer("root", res.Root).Msg("resolved root owner")

	if err := mover.Move(h.session, res.Root, id); err != nil {
		return drop(res, err, "failed to move window")
	}

	res.Outcome = Moved
	log.Info().
		Stringer("root", res.Root).
		Stringer("desktopId", id).
		Str("source", res.Source).
		Msg("moved window")
	return res
}

func drop(res Result, err error, msg string) Result {
	res.Outcome = Dropped
	res.Err = err
	logging.Warn().
		Str("event", res.Event.ID.String()).
		Int("desktop", res.Index).
		Str("source", res.Source).
		Err(err).
		Msg(msg)
	return res
}
