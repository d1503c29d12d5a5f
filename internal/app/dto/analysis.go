// Package dto holds the boundary shapes exchanged with callers of the flow
// analysis use cases.
package dto

import (
	"github.com/astrskai/astrsk-sub018/internal/core/traverse"
	"github.com/astrskai/astrsk-sub018/pkg/validation"
)

// AnalysisReport is the aggregated outcome of validating and traversing one
// flow: node-level findings plus the derived execution order. References
// maps each agent ID to the agents its prompt mentions, in first-appearance
// order; the response template is keyed by ResponseTemplateKey.
type AnalysisReport struct {
	FlowID     string              `json:"flow_id"`
	FlowName   string              `json:"flow_name"`
	Validation *validation.Result  `json:"validation"`
	Traversal  *traverse.Result    `json:"traversal"`
	References map[string][]string `json:"references,omitempty"`
}

// ResponseTemplateKey keys the flow's response template in References.
const ResponseTemplateKey = "$response"

// RenameResult reports one agent rename propagation.
type RenameResult struct {
	OldName   string `json:"old_name"`
	NewName   string `json:"new_name"`
	Rewritten int    `json:"rewritten"` // templates actually changed
}
