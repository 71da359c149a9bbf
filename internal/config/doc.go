// Package config resolves the application configuration from command-line
// flags, BIGUINT_* environment variables and an optional TOML file.
package config
