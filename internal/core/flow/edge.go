// Package flow provides edge definitions
package flow

// Edge represents a directed connection between two nodes. Source and Target
// hold node IDs; references to unknown nodes are tolerated by traversal and
// reported by validation.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Validate ensures edge integrity
func (e *Edge) Validate() error {
	if e.Source == "" {
		return ErrInvalidSource
	}
	if e.Target == "" {
		return ErrInvalidTarget
	}
	return nil
}
