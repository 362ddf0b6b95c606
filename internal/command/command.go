// Package command decodes the system command parameter that carries a
// "move to desktop N" request.
package command

import "fmt"

const (
	// Signature marks a parameter as a desktop move request. It lives in the
	// bits above the index nibble so it cannot collide with the SC_* system
	// commands, which all have the low nibble clear and start at 0xF000.
	Signature uint32 = 0xABC0

	// IndexMask selects the desktop index.
	IndexMask uint32 = 0xF

	// MaxDesktops is the number of desktops addressable through the index
	// nibble. Desktops past the sixteenth cannot be targeted.
	MaxDesktops = 16
)

// Request is a decoded desktop move request.
type Request struct {
	Index          int
	SignatureValid bool
}

// Decode returns the request carried by param. ok is false when param is an
// ordinary system command, which must be passed through untouched.
func Decode(param uint32) (req Request, ok bool) {
	req = Request{
		Index:          int(param & IndexMask),
		SignatureValid: param&^IndexMask == Signature,
	}
	return req, req.SignatureValid
}

// Encode builds the parameter for a move to the desktop at index.
func Encode(index int) (uint32, error) {
	if index < 0 || index >= MaxDesktops {
		return 0, fmt.Errorf("desktop index %d out of range [0, %d)", index, MaxDesktops)
	}
	return Signature | uint32(index), nil
}
