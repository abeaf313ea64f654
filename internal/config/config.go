package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	RipDir   string `toml:"rip_dir"`
	FlacDir  string `toml:"flac_dir"`
	LogDir   string `toml:"log_dir"`
	CacheDir string `toml:"cache_dir"`
}

// Drive contains optical drive settings.
type Drive struct {
	Device        string `toml:"device"`
	EjectAfterRip bool   `toml:"eject_after_rip"`
	PollInterval  int    `toml:"poll_interval"`
}

// Tools contains external program paths and timeouts.
type Tools struct {
	Cdrdao         string `toml:"cdrdao"`
	Cdparanoia     string `toml:"cdparanoia"`
	Flac           string `toml:"flac"`
	ReadTOCTimeout int    `toml:"read_toc_timeout"`
	RipTimeout     int    `toml:"rip_timeout"`
	EncodeTimeout  int    `toml:"encode_timeout"`
}

// Encoding contains FLAC encoding settings.
type Encoding struct {
	CompressionLevel     int  `toml:"compression_level"`
	DeleteWAVAfterEncode bool `toml:"delete_wav_after_encode"`
	Parallelism          int  `toml:"parallelism"`
	MaxNameLength        int  `toml:"max_name_length"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for platter.
//
// Configuration sections by subsystem:
//   - Paths: rip workspace, flac library, logs, cache
//   - Drive: optical drive device and tray behavior
//   - Tools: external ripper/encoder binaries and timeouts
//   - Encoding: flac settings and encode parallelism
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Drive    Drive    `toml:"drive"`
	Tools    Tools    `toml:"tools"`
	Encoding Encoding `toml:"encoding"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/platter/config.toml")
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. It also reports the resolved path and
// whether a file existed there; a missing file yields pure defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// ExpandPath expands a leading ~ to the current user's home directory and
// returns an absolute path.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// EnsureDirectories creates the configured directories if they do not exist.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.RipDir, c.Paths.FlacDir, c.Paths.LogDir, c.Paths.CacheDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
