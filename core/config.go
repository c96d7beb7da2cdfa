package core

import (
	"time"
)

// Config is the runtime configuration shared by the services.
type Config struct {
	// DetachAttempts is how many times a campaign deletion tries to clear one character's
	// back reference before giving up on it.
	DetachAttempts int
	RetryBackoff   time.Duration
	// MaxConcurrentDeletes bounds the in-flight deletes of one cascading deletion. <= 0 means unbounded.
	MaxConcurrentDeletes int
	// StrictOrdering skips owned-data deletion when any character could not be detached.
	StrictOrdering bool
	// RealtimeBufferSize is the snapshot channel size of each remote listener.
	RealtimeBufferSize int
}

// ConfigInput is the yaml form of Config.
type ConfigInput struct {
	DetachAttempts       int    `yaml:"detachAttempts"`
	RetryBackoff         string `yaml:"retryBackoff"`
	MaxConcurrentDeletes int    `yaml:"maxConcurrentDeletes"`
	StrictOrdering       *bool  `yaml:"strictOrdering"`
	RealtimeBufferSize   int    `yaml:"realtimeBufferSize"`
}

func DefaultConfig() Config {
	return Config{
		DetachAttempts:       3,
		RetryBackoff:         200 * time.Millisecond,
		MaxConcurrentDeletes: 8,
		StrictOrdering:       true,
		RealtimeBufferSize:   16,
	}
}

// SetupConfig fills unset fields of the input with defaults.
func SetupConfig(input ConfigInput) (Config, error) {
	config := DefaultConfig()

	if input.DetachAttempts > 0 {
		config.DetachAttempts = input.DetachAttempts
	}
	if input.RetryBackoff != "" {
		backoff, err := time.ParseDuration(input.RetryBackoff)
		if err != nil {
			return Config{}, NewErrorValidation("retryBackoff: " + err.Error())
		}
		config.RetryBackoff = backoff
	}
	if input.MaxConcurrentDeletes != 0 {
		config.MaxConcurrentDeletes = input.MaxConcurrentDeletes
	}
	if input.StrictOrdering != nil {
		config.StrictOrdering = *input.StrictOrdering
	}
	if input.RealtimeBufferSize > 0 {
		config.RealtimeBufferSize = input.RealtimeBufferSize
	}

	return config, nil
}
