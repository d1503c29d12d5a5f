// Package flow defines domain-specific errors
package flow

import "errors"

// Domain errors - defined once, used everywhere
var (
	// Flow errors
	ErrFlowNotFound  = errors.New("flow not found")
	ErrNilFlow       = errors.New("flow cannot be nil")
	ErrDuplicateNode = errors.New("duplicate node ID")

	// Node errors
	ErrNilNode        = errors.New("node cannot be nil")
	ErrInvalidNodeID  = errors.New("invalid node ID")
	ErrInvalidType    = errors.New("invalid node type")
	ErrNodeNotFound   = errors.New("node not found")
	ErrMissingPayload = errors.New("node payload missing for its type")

	// Edge errors
	ErrNilEdge       = errors.New("edge cannot be nil")
	ErrInvalidSource = errors.New("invalid source node")
	ErrInvalidTarget = errors.New("invalid target node")

	// Agent errors
	ErrAgentNotFound  = errors.New("agent definition not found")
	ErrInvalidAgent   = errors.New("invalid agent definition")
	ErrDuplicateAgent = errors.New("duplicate agent ID")
)
