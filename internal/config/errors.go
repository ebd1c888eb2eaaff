package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigError reports an invalid or missing module parameter. A module that
// returns one at construction is never scheduled.
type ConfigError struct {
	Module string
	Param  string
	Msg    string
}

func (e *ConfigError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("configuration: %s", e.Msg)
	}
	return fmt.Sprintf("configuration: module %s: %s", e.Module, e.Msg)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }
