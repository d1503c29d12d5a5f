package usecases

import (
	"context"

	"github.com/astrskai/astrsk-sub018/internal/core/flow"
)

// FlowRepository is the persistence collaborator, read-only from this core's
// perspective. Implementations own schemas and transactions; this package
// only consumes snapshots.
type FlowRepository interface {
	LoadNodesByFlow(ctx context.Context, flowID string) ([]*flow.Node, error)
	LoadEdgesByFlow(ctx context.Context, flowID string) ([]*flow.Edge, error)
}

// AgentDirectory resolves agent identifiers to their definitions. A missing
// agent is reported with flow.ErrAgentNotFound.
type AgentDirectory interface {
	ResolveAgentDefinition(ctx context.Context, agentID string) (*flow.AgentDefinition, error)
}
