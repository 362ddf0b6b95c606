package config

import (
	"fmt"

	"github.com/yourusername/movetodesktop/internal/command"
	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/hotkey"
	"github.com/yourusername/movetodesktop/internal/logging"
	"github.com/yourusername/movetodesktop/internal/shell"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := validateSettings(&c.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	// Validate hotkeys
	seen := make(map[hotkey.Combo]int)
	for i, hk := range c.Hotkeys {
		combo, err := hotkey.Parse(hk.Keys)
		if err != nil {
			return fmt.Errorf("hotkey %d: %w", i, err)
		}
		if prev, ok := seen[combo]; ok {
			return fmt.Errorf("hotkey %d: %s already bound by hotkey %d", i, combo, prev)
		}
		seen[combo] = i

		// Only the low nibble of the command parameter carries the index
		if hk.Desktop < 0 || hk.Desktop >= command.MaxDesktops {
			return fmt.Errorf("hotkey %d: desktop %d out of range [0, %d)", i, hk.Desktop, command.MaxDesktops)
		}
	}

	return nil
}

func validateSettings(s *Settings) error {
	if _, err := desktop.ParseStrategy(s.Strategy); err != nil {
		return err
	}
	if _, err := shell.SelectVariants(s.InternalInterface); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	if s.HistoryLimit < 0 {
		return fmt.Errorf("historyLimit must be >= 0, got %d", s.HistoryLimit)
	}
	return nil
}
