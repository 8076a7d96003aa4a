// Package config provides configuration loading and validation.
//
// It uses Viper to load configuration from a YAML file plus a .env file,
// with environment-variable overrides using the LUCIDSCRIPT_ prefix and
// underscore-separated paths (e.g. LUCIDSCRIPT_SERVER_PORT).
//
// Config structs follow a per-section pattern: each section implements
// ApplyDefaults and Validate; the service config embeds ServiceConfig and
// fans out to its sections.
package config
