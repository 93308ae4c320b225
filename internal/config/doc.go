// Package config loads tool configuration from environment variables
// (CORELOG_ prefix) and an optional YAML file, with file values taking
// precedence. Defaults suit an interactive run in a lab checkout: plain
// text logs to the console, the standard "-p" part separator, and the
// magnetic susceptibility floor of -50.
package config
