// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/oasbreak/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified for option.
// sources is a variadic list of booleans indicating whether each source is set,
// and hint names the With* functions that select one, for the error message.
func ValidateSingleInputSource(option, hint string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	switch {
	case sourceCount == 0:
		return &oaserrors.ConfigError{Option: option, Message: "must specify an input source (use " + hint + ")"}
	case sourceCount > 1:
		return &oaserrors.ConfigError{Option: option, Value: sourceCount, Message: "must specify exactly one input source"}
	}
	return nil
}
