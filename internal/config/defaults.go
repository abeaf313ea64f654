package config

const (
	defaultRipDir           = "~/music/rip"
	defaultFlacDir          = "~/music/flac"
	defaultLogDir           = "~/.local/share/platter/logs"
	defaultDevice           = "/dev/cdrom"
	defaultPollInterval     = 5
	defaultCdrdao           = "cdrdao"
	defaultCdparanoia       = "cdparanoia"
	defaultFlac             = "flac"
	defaultReadTOCTimeout   = 300
	defaultRipTimeout       = 3600
	defaultEncodeTimeout    = 1800
	defaultCompressionLevel = 8
	defaultParallelism      = 2
	defaultMaxNameLength    = 64
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults. CacheDir is
// left empty here; normalize fills it from XDG_CACHE_HOME.
func Default() Config {
	return Config{
		Paths: Paths{
			RipDir:  defaultRipDir,
			FlacDir: defaultFlacDir,
			LogDir:  defaultLogDir,
		},
		Drive: Drive{
			Device:        defaultDevice,
			EjectAfterRip: true,
			PollInterval:  defaultPollInterval,
		},
		Tools: Tools{
			Cdrdao:         defaultCdrdao,
			Cdparanoia:     defaultCdparanoia,
			Flac:           defaultFlac,
			ReadTOCTimeout: defaultReadTOCTimeout,
			RipTimeout:     defaultRipTimeout,
			EncodeTimeout:  defaultEncodeTimeout,
		},
		Encoding: Encoding{
			CompressionLevel: defaultCompressionLevel,
			Parallelism:      defaultParallelism,
			MaxNameLength:    defaultMaxNameLength,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
