package config

const (
	defaultRomDir         = "."
	defaultLogDir         = "~/.local/share/romclerk/logs"
	defaultOverridesPath  = "~/.config/romclerk/overrides.jsonc"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultMaxSizeMiB     = 512
	defaultJournalEnabled = true
)

func defaultExtensions() []string {
	return []string{".nes"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RomDir:        defaultRomDir,
			LogDir:        defaultLogDir,
			OverridesPath: defaultOverridesPath,
		},
		Scan: Scan{
			Extensions: defaultExtensions(),
			MaxSizeMiB: defaultMaxSizeMiB,
		},
		Journal: Journal{
			Enabled: defaultJournalEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
