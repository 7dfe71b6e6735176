// Package env keeps names of environment variables with special significance
// to slt.
package env

// Environment variables with special significance to slt.
const (
	HOME            = "HOME"
	NO_COLOR        = "NO_COLOR"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	XDG_DATA_HOME   = "XDG_DATA_HOME"
)
