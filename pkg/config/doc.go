// Package config holds the tool's YAML configuration: input and output
// paths, conversion options, and logging. Configuration loads from a file,
// picks up defaults, may be overridden by ANGLER_* environment variables,
// and is validated before use.
package config
