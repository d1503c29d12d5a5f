package dto

import "errors"

// Analysis errors
var (
	ErrMissingFlowID   = errors.New("flow ID is required")
	ErrMissingName     = errors.New("agent name is required")
	ErrNilFlow         = errors.New("flow is required")
	ErrUnknownAgent    = errors.New("agent not found in flow")
	ErrNameTaken       = errors.New("agent name already in use")
	ErrRepoUnavailable = errors.New("flow repository unavailable")
)
