// Package config loads, normalizes, and validates the TOML configuration for
// chunkscribe.
//
// Configuration resolution order: an explicit --config path, then
// ~/.config/chunkscribe/config.toml, then chunkscribe.toml in the working
// directory. Missing files fall back to repository defaults so the tool runs
// with nothing but environment credentials configured.
package config
