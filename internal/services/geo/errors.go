package geo

import "errors"

// Terminal pipeline failures, surfaced to the caller as upstream (502-style)
// errors. Everything else the pipeline absorbs: search failures degrade to an
// empty result and reconciliation failures degrade to unlinked records.
var (
	// ErrUpstreamUnavailable means the completion client itself failed on the
	// final retry attempt.
	ErrUpstreamUnavailable = errors.New("completion upstream failed repeatedly")

	// ErrUpstreamUnparsable means every attempt completed but none produced a
	// parsable, non-empty record list.
	ErrUpstreamUnparsable = errors.New("failed to obtain parsable completion response")
)
