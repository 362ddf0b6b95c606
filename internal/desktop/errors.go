package desktop

import "errors"

var (
	// ErrIndexOutOfRange is returned when the requested desktop does not exist.
	// The request is dropped; it is never fatal.
	ErrIndexOutOfRange = errors.New("desktop index out of range")

	// ErrStrategyUnavailable is returned when a source cannot answer at all,
	// e.g. the internal shell interface is missing on this Windows build.
	ErrStrategyUnavailable = errors.New("desktop source unavailable")
)
