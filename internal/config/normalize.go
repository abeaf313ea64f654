package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.RipDir, err = ExpandPath(c.Paths.RipDir); err != nil {
		return fmt.Errorf("paths.rip_dir: %w", err)
	}
	if c.Paths.FlacDir, err = ExpandPath(c.Paths.FlacDir); err != nil {
		return fmt.Errorf("paths.flac_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = ExpandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

// defaultCacheDir follows the XDG base directory convention.
func defaultCacheDir() string {
	if base := strings.TrimSpace(os.Getenv("XDG_CACHE_HOME")); base != "" {
		return filepath.Join(base, "platter")
	}
	return "~/.cache/platter"
}

func (c *Config) normalizeTools() {
	c.Tools.Cdrdao = strings.TrimSpace(c.Tools.Cdrdao)
	c.Tools.Cdparanoia = strings.TrimSpace(c.Tools.Cdparanoia)
	c.Tools.Flac = strings.TrimSpace(c.Tools.Flac)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
