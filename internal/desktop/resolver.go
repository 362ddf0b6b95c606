package desktop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/movetodesktop/internal/logging"
)

// Strategy selects which sources a Resolver consults.
type Strategy string

const (
	// StrategyAuto prefers live enumeration and falls back to the registry.
	StrategyAuto        Strategy = "auto"
	StrategyEnumeration Strategy = "enumeration"
	StrategyRegistry    Strategy = "registry"
)

// ParseStrategy parses a config value. Empty means auto.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyAuto:
		return StrategyAuto, nil
	case StrategyEnumeration:
		return StrategyEnumeration, nil
	case StrategyRegistry:
		return StrategyRegistry, nil
	}
	return "", fmt.Errorf("unknown strategy %q (use auto, enumeration or registry)", s)
}

// Resolver maps desktop indices to identifiers through an ordered list of
// sources.
type Resolver struct {
	sources []Source
}

// NewResolver tries sources in the given order. Nil sources are skipped.
func NewResolver(sources ...Source) *Resolver {
	r := &Resolver{}
	for _, s := range sources {
		if s != nil {
			r.sources = append(r.sources, s)
		}
	}
	return r
}

// ForStrategy builds a resolver for strategy. enum may be nil when the
// internal desktop manager could not be bound.
func ForStrategy(strategy Strategy, enum Enumerator, registry *RegistrySource) *Resolver {
	var sources []Source
	useEnum := enum != nil && (strategy == StrategyAuto || strategy == StrategyEnumeration)
	useReg := registry != nil && (strategy == StrategyAuto || strategy == StrategyRegistry)

	if useEnum {
		sources = append(sources, NewEnumerationSource(enum))
	}
	if useReg {
		sources = append(sources, registry)
	}
	return NewResolver(sources...)
}

// Sources returns the sources in preference order.
func (r *Resolver) Sources() []Source {
	return r.sources
}

// Resolve returns the identifier of the desktop at index and the source
// that answered. A source reporting ErrStrategyUnavailable hands over to
// the next one; ErrIndexOutOfRange is final.
func (r *Resolver) Resolve(index int) (ID, Source, error) {
	if index < 0 {
		return ID{}, nil, fmt.Errorf("%w: index %d", ErrIndexOutOfRange, index)
	}

	var lastErr error
	for _, s := range r.sources {
		id, err := s.Lookup(index)
		if err == nil {
			return id, s, nil
		}
		if !errors.Is(err, ErrStrategyUnavailable) {
			return ID{}, s, err
		}

		logging.Debug().
			Str("source", s.Name()).
			Err(err).
			Msg("desktop source unavailable, trying next")
		lastErr = err
	}

	if lastErr == nil {
		return ID{}, nil, fmt.Errorf("%w: no sources configured", ErrStrategyUnavailable)
	}
	return ID{}, nil, lastErr
}

// List returns the desktops from the first source that can answer.
func (r *Resolver) List() ([]ID, Source, error) {
	var lastErr error
	for _, s := range r.sources {
		ids, err := s.List()
		if err == nil {
			return ids, s, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		return nil, nil, fmt.Errorf("%w: no sources configured", ErrStrategyUnavailable)
	}
	return nil, nil, lastErr
}
