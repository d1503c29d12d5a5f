package traverse

import (
	"github.com/astrskai/astrsk-sub018/internal/core/flow"
)

// AgentPosition describes where one agent sits in the execution order.
// Position and Depth are -1 for agents not reachable from the start node.
type AgentPosition struct {
	AgentID          string `json:"agentId"`
	Position         int    `json:"position"`
	Depth            int    `json:"depth"`
	ConnectedToStart bool   `json:"isConnectedToStart"`
	ConnectedToEnd   bool   `json:"isConnectedToEnd"`
}

// Result is the immutable outcome of one traversal. Order lists agent IDs in
// position order; Agents maps every agent ID in the flow, connected or not.
//
// HasCycle reports a directed cycle among start-reachable nodes. Traversal
// still completes (visited sets bound the walks) but depth and position
// values on a cyclic flow reflect shortest paths only, so the flag should be
// surfaced to the user as a warning.
type Result struct {
	Agents       map[string]AgentPosition `json:"agents"`
	Order        []string                 `json:"order"`
	HasValidFlow bool                     `json:"hasValidFlow"`
	HasCycle     bool                     `json:"hasCycle"`
}

// Analyze computes reachability, depth, and execution positions for every
// agent node in the flow. It never fails: a flow without a start node yields
// a result with every agent disconnected, a missing end node limits the
// validity check to start-reachability, and cycles only set HasCycle.
func Analyze(f *flow.Flow) *Result {
	res := &Result{
		Agents: make(map[string]AgentPosition),
		Order:  []string{},
	}
	if f == nil {
		return res
	}

	agents := f.AgentNodes()
	start := f.StartNode()
	if start == nil {
		for _, n := range agents {
			id := n.EffectiveAgentID()
			if _, seen := res.Agents[id]; seen {
				continue
			}
			res.Agents[id] = disconnected(id)
		}
		return res
	}

	adj := BuildAdjacency(f.Nodes, f.Edges)
	fromStart := reachableFrom(start.ID, adj.Forward)
	depth := depthsFrom(start.ID, adj.Forward)

	var toEnd map[string]bool
	end := f.EndNode()
	if end != nil {
		toEnd = reachableFrom(end.ID, adj.Reverse)
	}

	res.HasCycle = hasCycleWithin(fromStart, adj.Forward)

	// Classify every agent node. When several nodes share an agent ID, the
	// shallowest connected one wins so the ID keeps a single position.
	for _, n := range agents {
		id := n.EffectiveAgentID()
		pos := AgentPosition{AgentID: id, Position: -1, Depth: -1}
		if fromStart[n.ID] {
			pos.ConnectedToStart = true
			pos.Depth = depth[n.ID]
			pos.ConnectedToEnd = end != nil && toEnd[n.ID]
		}
		prev, seen := res.Agents[id]
		if seen && better(prev, pos) {
			continue
		}
		res.Agents[id] = pos
	}

	assignPositions(res)

	for _, p := range res.Agents {
		if !p.ConnectedToStart {
			continue
		}
		if end == nil || p.ConnectedToEnd {
			res.HasValidFlow = true
			break
		}
	}
	return res
}

func disconnected(id string) AgentPosition {
	return AgentPosition{AgentID: id, Position: -1, Depth: -1}
}

// better reports whether a keeps priority over b: connected beats
// disconnected, then smaller depth.
func better(a, b AgentPosition) bool {
	if a.ConnectedToStart != b.ConnectedToStart {
		return a.ConnectedToStart
	}
	if !a.ConnectedToStart {
		return true
	}
	return a.Depth <= b.Depth
}
