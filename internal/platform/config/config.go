package config

import (
	"os"
	"time"

	dErrors "formgate/pkg/domain-errors"
)

// CLI captures settings for the formcheck command. Flags override these.
type CLI struct {
	LogLevel           string
	InteractionTimeout time.Duration
	ValidationDelay    time.Duration
	Preset             string
}

const (
	PresetCommon           = "common"
	PresetSocioDemographic = "socio"
)

// FromEnv builds a CLI config from environment variables so main stays lean.
func FromEnv() (CLI, error) {
	cfg := CLI{
		LogLevel:           "info",
		InteractionTimeout: 5 * time.Minute,
		ValidationDelay:    300 * time.Millisecond,
		Preset:             PresetSocioDemographic,
	}

	if v := os.Getenv("FORMGATE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FORMGATE_PRESET"); v != "" {
		cfg.Preset = v
	}
	if v := os.Getenv("FORMGATE_INTERACTION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return CLI{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid FORMGATE_INTERACTION_TIMEOUT")
		}
		cfg.InteractionTimeout = d
	}

	return cfg, nil
}
