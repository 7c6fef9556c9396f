package config

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every validation error also matches ErrInvalidConfig.
var (
	ErrLoadConfig    = errors.New("load config failed")
	ErrInvalidConfig = errors.New("invalid config")

	ErrDataPaths  = fmt.Errorf("%w: data paths", ErrInvalidConfig)
	ErrLogFormat  = fmt.Errorf("%w: log format", ErrInvalidConfig)
	ErrDifficulty = fmt.Errorf("%w: difficulty", ErrInvalidConfig)
)
