package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Network        *Chain // nil if not specified
	DefaultAccount string // used when a command gets no --account

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Source files, resolved relative to ProjectRoot
	ChainsFile   string
	AccountsFile string

	// Resolved configurations
	Chains *ChainsConfig
}
