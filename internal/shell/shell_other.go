//go:build !windows

package shell

import (
	"errors"

	"github.com/yourusername/movetodesktop/internal/session"
)

var errUnsupported = errors.New("virtual desktops are only available on windows")

func (p *Platform) Initialize() error {
	return errUnsupported
}

func (p *Platform) Uninitialize() {}

func (p *Platform) CreateBroker() (session.Broker, error) {
	return nil, errUnsupported
}
