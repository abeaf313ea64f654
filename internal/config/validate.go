package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDrive(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.RipDir == "" {
		return errors.New("paths.rip_dir must be set")
	}
	if c.Paths.FlacDir == "" {
		return errors.New("paths.flac_dir must be set")
	}
	return nil
}

func (c *Config) validateDrive() error {
	if c.Drive.Device == "" {
		return errors.New("drive.device must be set")
	}
	if c.Drive.PollInterval <= 0 {
		return errors.New("drive.poll_interval must be positive")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.Cdrdao == "" {
		return errors.New("tools.cdrdao must be set")
	}
	if c.Tools.Cdparanoia == "" {
		return errors.New("tools.cdparanoia must be set")
	}
	if c.Tools.Flac == "" {
		return errors.New("tools.flac must be set")
	}
	for name, value := range map[string]int{
		"tools.read_toc_timeout": c.Tools.ReadTOCTimeout,
		"tools.rip_timeout":      c.Tools.RipTimeout,
		"tools.encode_timeout":   c.Tools.EncodeTimeout,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.Encoding.CompressionLevel < 0 || c.Encoding.CompressionLevel > 8 {
		return errors.New("encoding.compression_level must be between 0 and 8")
	}
	if c.Encoding.Parallelism <= 0 {
		return errors.New("encoding.parallelism must be positive")
	}
	if c.Encoding.MaxNameLength <= 0 {
		return errors.New("encoding.max_name_length must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
