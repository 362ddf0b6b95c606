package desktop

import "fmt"

// Array is a live snapshot of desktop objects held by the shell.
type Array interface {
	Count() (int, error)
	IDAt(index int) (ID, error)
	Release()
}

// Enumerator lists the live desktops. It is backed by the undocumented
// internal desktop manager, which may not exist on a given Windows build.
type Enumerator interface {
	GetDesktops() (Array, error)
}

// EnumerationSource resolves indices against the live desktop set.
type EnumerationSource struct {
	enum Enumerator
}

// NewEnumerationSource wraps enum. A nil enum yields a source that always
// reports ErrStrategyUnavailable.
func NewEnumerationSource(enum Enumerator) *EnumerationSource {
	return &EnumerationSource{enum: enum}
}

func (s *EnumerationSource) Name() string {
	return "enumeration"
}

// Available reports whether the internal interface was bound.
func (s *EnumerationSource) Available() bool {
	return s.enum != nil
}

func (s *EnumerationSource) Lookup(index int) (ID, error) {
	arr, err := s.desktops()
	if err != nil {
		return ID{}, err
	}
	defer arr.Release()

	count, err := arr.Count()
	if err != nil {
		return ID{}, fmt.Errorf("%w: count desktops: %w", ErrStrategyUnavailable, err)
	}
	if index < 0 || index >= count {
		return ID{}, fmt.Errorf("%w: index %d, %d desktops", ErrIndexOutOfRange, index, count)
	}

	id, err := arr.IDAt(index)
	if err != nil {
		return ID{}, fmt.Errorf("%w: desktop %d: %w", ErrStrategyUnavailable, index, err)
	}
	return id, nil
}

func (s *EnumerationSource) List() ([]ID, error) {
	arr, err := s.desktops()
	if err != nil {
		return nil, err
	}
	defer arr.Release()

	count, err := arr.Count()
	if err != nil {
		return nil, fmt.Errorf("%w: count desktops: %w", ErrStrategyUnavailable, err)
	}

	ids := make([]ID, 0, count)
	for i := 0; i < count; i++ {
		id, err := arr.IDAt(i)
		if err != nil {
			return nil, fmt.Errorf("%w: desktop %d: %w", ErrStrategyUnavailable, i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *EnumerationSource) desktops() (Array, error) {
	if s.enum == nil {
		return nil, fmt.Errorf("%w: internal desktop manager not bound", ErrStrategyUnavailable)
	}
	arr, err := s.enum.GetDesktops()
	if err != nil {
		return nil, fmt.Errorf("%w: get desktops: %w", ErrStrategyUnavailable, err)
	}
	return arr, nil
}
