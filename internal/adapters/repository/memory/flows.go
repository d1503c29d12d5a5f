// Package memory provides thread-safe in-memory implementations of the flow
// analysis collaborator interfaces, suitable for tests and local usage.
// Durable persistence lives outside this module.
package memory

import (
	"context"
	"sync"

	"github.com/astrskai/astrsk-sub018/internal/core/flow"
)

// FlowRepository keeps whole flows in memory and serves their structure
// through the read-only collaborator interface.
type FlowRepository struct {
	mu    sync.RWMutex
	flows map[string]*flow.Flow
}

// NewFlowRepository creates an empty in-memory repository.
func NewFlowRepository() *FlowRepository {
	return &FlowRepository{flows: make(map[string]*flow.Flow)}
}

// Save stores or replaces a flow by ID.
func (r *FlowRepository) Save(_ context.Context, f *flow.Flow) error {
	if f == nil {
		return flow.ErrNilFlow
	}
	if f.ID == "" {
		return flow.ErrInvalidNodeID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flows[f.ID] = f
	return nil
}

// Get returns the stored flow, or flow.ErrFlowNotFound.
func (r *FlowRepository) Get(_ context.Context, id string) (*flow.Flow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flows[id]
	if !ok {
		return nil, flow.ErrFlowNotFound
	}
	return f, nil
}

// LoadNodesByFlow returns a copy of the flow's node list.
func (r *FlowRepository) LoadNodesByFlow(ctx context.Context, flowID string) ([]*flow.Node, error) {
	f, err := r.Get(ctx, flowID)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*flow.Node, len(f.Nodes))
	copy(out, f.Nodes)
	return out, nil
}

// LoadEdgesByFlow returns a copy of the flow's edge list.
func (r *FlowRepository) LoadEdgesByFlow(ctx context.Context, flowID string) ([]*flow.Edge, error) {
	f, err := r.Get(ctx, flowID)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*flow.Edge, len(f.Edges))
	copy(out, f.Edges)
	return out, nil
}

// AgentDirectory resolves agent definitions from the flows saved in a
// FlowRepository.
type AgentDirectory struct {
	repo *FlowRepository
}

// NewAgentDirectory creates a directory backed by the given repository.
func NewAgentDirectory(repo *FlowRepository) *AgentDirectory {
	return &AgentDirectory{repo: repo}
}

// ResolveAgentDefinition scans saved flows for the agent ID.
func (d *AgentDirectory) ResolveAgentDefinition(_ context.Context, agentID string) (*flow.AgentDefinition, error) {
	d.repo.mu.RLock()
	defer d.repo.mu.RUnlock()
	for _, f := range d.repo.flows {
		if def, ok := f.Agents[agentID]; ok {
			return def, nil
		}
	}
	return nil, flow.ErrAgentNotFound
}
