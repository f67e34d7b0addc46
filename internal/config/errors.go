package config

import "errors"

// Error definitions for the config package
var (
	// ErrConfigRead is returned when the config file or .env file cannot be read
	ErrConfigRead = errors.New("failed to read configuration file")

	// ErrParsingConfig is returned when the TOML, .env or environment values cannot be parsed
	ErrParsingConfig = errors.New("failed to parse configuration")

	// ErrInvalidConfig is returned when a configuration value is out of range or unknown
	ErrInvalidConfig = errors.New("invalid configuration")
)
