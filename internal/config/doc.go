// Package config loads and validates the TOML configuration for
// openrecorder. Defaults apply when no config file exists, so the CLI works
// out of the box with only OPENAI_API_KEY set.
package config
