package policy

import "errors"

// ErrMalformedIntents is returned when the intent file exists but fails
// to parse as YAML. Per spec §7, this is a loud developer/human error,
// not an agent-facing block.
var ErrMalformedIntents = errors.New("policy: malformed active_intents.yaml")

// ErrUnknownIntent is returned by UpdateIntentStatus when no intent with
// the given id exists.
var ErrUnknownIntent = errors.New("policy: unknown intent id")
