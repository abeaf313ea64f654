// Package config loads, validates, and defaults platter's TOML configuration.
//
// Configuration is resolved from an explicit --config path or
// ~/.config/platter/config.toml; a missing file yields working defaults so
// the CLI runs unconfigured. All path values support ~ expansion and are
// absolute after Load returns.
package config
