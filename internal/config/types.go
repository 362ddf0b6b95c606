package config

// Config is the root configuration structure
type Config struct {
	Settings Settings       `yaml:"settings" json:"settings"`
	Hotkeys  []HotkeyConfig `yaml:"hotkeys" json:"hotkeys"`
}

// Settings contains global application settings
type Settings struct {
	Strategy          string `yaml:"strategy" json:"strategy"`                   // auto, enumeration, registry
	InternalInterface string `yaml:"internalInterface" json:"internalInterface"` // auto, none or a variant name
	RegistryKey       string `yaml:"registryKey,omitempty" json:"registryKey,omitempty"`
	RegistryValue     string `yaml:"registryValue,omitempty" json:"registryValue,omitempty"`
	LogFile           string `yaml:"logFile,omitempty" json:"logFile,omitempty"`
	LogLevel          string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
	HistoryLimit      int    `yaml:"historyLimit" json:"historyLimit"` // Move records kept by the daemon
}

// HotkeyConfig binds a key combination to a desktop
type HotkeyConfig struct {
	Keys    string `yaml:"keys" json:"keys"`       // e.g. "win+alt+1"
	Desktop int    `yaml:"desktop" json:"desktop"` // Zero-based desktop index
}
