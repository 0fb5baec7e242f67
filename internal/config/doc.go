// Package config defines the application configuration structure and
// its loader. Configuration comes from the environment (FESTIVAL_
// prefix) with an optional YAML file underneath; required settings
// missing at startup are a fatal error.
package config
