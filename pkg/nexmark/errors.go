package nexmark

import "fmt"

// ConfigError reports an invalid parameter combination. It is only returned
// at construction/validation time; a config that validated once never fails
// later.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("nexmark config: %s: %s", e.Param, e.Reason)
}

// GenerationError reports arithmetic overflow of an id or timestamp counter
// at extreme event numbers. It is fatal to the generator that hit it;
// events emitted before it remain valid.
type GenerationError struct {
	EventNumber uint64
	Reason      string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("nexmark generation: event number %d: %s", e.EventNumber, e.Reason)
}
