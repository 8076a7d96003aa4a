// Package logger provides structured logging built on zerolog.
//
// A single global logger is initialized from config at bootstrap; components
// derive tagged child loggers via WithComponent. Console and JSON output
// formats are supported.
package logger
