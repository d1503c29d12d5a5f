package traverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrskai/astrsk-sub018/internal/core/flow"
)

func agentNode(id, agentID string) *flow.Node {
	return &flow.Node{ID: id, Type: flow.NodeTypeAgent, Agent: &flow.AgentData{AgentID: agentID}}
}

// buildFlow wires start -> a -> b -> end with a side branch start -> c.
func buildFlow() *flow.Flow {
	return &flow.Flow{
		ID: "f1",
		Nodes: []*flow.Node{
			{ID: "start", Type: flow.NodeTypeStart},
			{ID: "end", Type: flow.NodeTypeEnd},
			agentNode("n-a", "alpha"),
			agentNode("n-b", "beta"),
			agentNode("n-c", "gamma"),
		},
		Edges: []*flow.Edge{
			{ID: "e1", Source: "start", Target: "n-a"},
			{ID: "e2", Source: "n-a", Target: "n-b"},
			{ID: "e3", Source: "n-b", Target: "end"},
			{ID: "e4", Source: "start", Target: "n-c"},
		},
	}
}

func TestAnalyze_PositionsAndConnectivity(t *testing.T) {
	res := Analyze(buildFlow())

	require.Len(t, res.Agents, 3)
	assert.True(t, res.HasValidFlow)
	assert.False(t, res.HasCycle)

	alpha := res.Agents["alpha"]
	assert.Equal(t, 1, alpha.Depth)
	assert.True(t, alpha.ConnectedToStart)
	assert.True(t, alpha.ConnectedToEnd)

	gamma := res.Agents["gamma"]
	assert.True(t, gamma.ConnectedToStart)
	assert.False(t, gamma.ConnectedToEnd, "side branch never reaches end")
	assert.GreaterOrEqual(t, gamma.Position, 0, "start-reachable agents are still ordered")

	// depth 1: alpha, gamma (tie broken by id); depth 2: beta
	assert.Equal(t, []string{"alpha", "gamma", "beta"}, res.Order)
}

func TestAnalyze_Determinism(t *testing.T) {
	f := buildFlow()
	first := Analyze(f)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Analyze(f))
	}
}

func TestAnalyze_TieBreakIsInputOrderIndependent(t *testing.T) {
	f := buildFlow()
	reversed := &flow.Flow{ID: f.ID, Edges: f.Edges}
	for i := len(f.Nodes) - 1; i >= 0; i-- {
		reversed.Nodes = append(reversed.Nodes, f.Nodes[i])
	}

	assert.Equal(t, Analyze(f).Order, Analyze(reversed).Order)
}

func TestAnalyze_PositionTotality(t *testing.T) {
	res := Analyze(buildFlow())

	reachable := 0
	seen := map[int]bool{}
	for _, p := range res.Agents {
		if p.Position >= 0 {
			reachable++
			assert.False(t, seen[p.Position], "positions must be unique")
			seen[p.Position] = true
		} else {
			assert.Equal(t, -1, p.Position)
		}
	}
	for _, p := range res.Agents {
		if p.Position >= 0 {
			assert.Less(t, p.Position, reachable)
		}
	}
}

func TestAnalyze_NoStartNode(t *testing.T) {
	f := &flow.Flow{
		ID: "f1",
		Nodes: []*flow.Node{
			agentNode("n-a", "alpha"),
			{ID: "end", Type: flow.NodeTypeEnd},
		},
		Edges: []*flow.Edge{{ID: "e1", Source: "n-a", Target: "end"}},
	}

	res := Analyze(f)
	assert.False(t, res.HasValidFlow)
	assert.Empty(t, res.Order)
	alpha := res.Agents["alpha"]
	assert.Equal(t, -1, alpha.Position)
	assert.Equal(t, -1, alpha.Depth)
	assert.False(t, alpha.ConnectedToStart)
	assert.False(t, alpha.ConnectedToEnd)
}

func TestAnalyze_NoEndNode(t *testing.T) {
	f := &flow.Flow{
		ID: "f1",
		Nodes: []*flow.Node{
			{ID: "start", Type: flow.NodeTypeStart},
			agentNode("n-a", "alpha"),
		},
		Edges: []*flow.Edge{{ID: "e1", Source: "start", Target: "n-a"}},
	}

	res := Analyze(f)
	assert.True(t, res.HasValidFlow, "without an end node start-reachability suffices")
	alpha := res.Agents["alpha"]
	assert.True(t, alpha.ConnectedToStart)
	assert.False(t, alpha.ConnectedToEnd)
	assert.Equal(t, 0, alpha.Position)
}

func TestAnalyze_DisconnectedAgent(t *testing.T) {
	f := buildFlow()
	f.Nodes = append(f.Nodes, agentNode("n-d", "delta"))

	res := Analyze(f)
	delta := res.Agents["delta"]
	assert.Equal(t, -1, delta.Position)
	assert.Equal(t, -1, delta.Depth)
	assert.False(t, delta.ConnectedToStart)
	assert.NotContains(t, res.Order, "delta")
}

func TestAnalyze_CycleIsFlaggedNotFatal(t *testing.T) {
	f := buildFlow()
	// b loops back to a
	f.Edges = append(f.Edges, &flow.Edge{ID: "e5", Source: "n-b", Target: "n-a"})

	res := Analyze(f)
	assert.True(t, res.HasCycle)
	assert.True(t, res.HasValidFlow, "cycle does not invalidate the flow")
	// Depths still reflect shortest paths.
	assert.Equal(t, 1, res.Agents["alpha"].Depth)
	assert.Equal(t, 2, res.Agents["beta"].Depth)
}

func TestAnalyze_MissingAgentIDFallsBackToNodeID(t *testing.T) {
	f := &flow.Flow{
		ID: "f1",
		Nodes: []*flow.Node{
			{ID: "start", Type: flow.NodeTypeStart},
			{ID: "legacy-node", Type: flow.NodeTypeAgent}, // no payload at all
		},
		Edges: []*flow.Edge{{ID: "e1", Source: "start", Target: "legacy-node"}},
	}

	res := Analyze(f)
	require.Contains(t, res.Agents, "legacy-node")
	assert.Equal(t, 0, res.Agents["legacy-node"].Position)
}

func TestAnalyze_NilFlow(t *testing.T) {
	res := Analyze(nil)
	require.NotNil(t, res)
	assert.Empty(t, res.Agents)
	assert.False(t, res.HasValidFlow)
}

func TestAnalyze_DepthMonotonicity(t *testing.T) {
	// Diamond with a shortcut: start -> a -> b -> c -> end, start -> c.
	f := &flow.Flow{
		ID: "f1",
		Nodes: []*flow.Node{
			{ID: "start", Type: flow.NodeTypeStart},
			{ID: "end", Type: flow.NodeTypeEnd},
			agentNode("n-a", "alpha"),
			agentNode("n-b", "beta"),
			agentNode("n-c", "rho"),
		},
		Edges: []*flow.Edge{
			{ID: "e1", Source: "start", Target: "n-a"},
			{ID: "e2", Source: "n-a", Target: "n-b"},
			{ID: "e3", Source: "n-b", Target: "n-c"},
			{ID: "e4", Source: "start", Target: "n-c"},
			{ID: "e5", Source: "n-c", Target: "end"},
		},
	}

	res := Analyze(f)
	assert.Equal(t, 1, res.Agents["rho"].Depth, "shortest path wins over the longer chain")
	assert.Equal(t, []string{"alpha", "rho", "beta"}, res.Order)
}
