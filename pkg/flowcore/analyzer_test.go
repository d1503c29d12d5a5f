package flowcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoFlow() *Flow {
	f := &Flow{
		ID:   "demo",
		Name: "demo",
		Nodes: []*Node{
			{ID: "start", Type: NodeTypeStart},
			{ID: "planner", Type: NodeTypeAgent, Agent: &AgentData{AgentID: "planner"}},
			{ID: "writer", Type: NodeTypeAgent, Agent: &AgentData{AgentID: "writer"}},
			{ID: "end", Type: NodeTypeEnd},
		},
		Edges: []*Edge{
			{ID: "e1", Source: "start", Target: "planner"},
			{ID: "e2", Source: "planner", Target: "writer"},
			{ID: "e3", Source: "writer", Target: "end"},
		},
		Agents: map[string]*AgentDefinition{
			"planner": {ID: "planner", Name: "Planner", Prompt: "Plan for {{ session.scenario }}."},
			"writer":  {ID: "writer", Name: "Writer", Prompt: "Write using {{ planner.response }}."},
		},
		ResponseTemplate: "{{ writer.response }}",
	}
	return f
}

func TestAnalyzerEndToEnd(t *testing.T) {
	ctx := context.Background()
	a := NewAnalyzer()

	require.NoError(t, a.SaveFlow(ctx, demoFlow()))

	report, err := a.AnalyzeByID(ctx, "demo")
	require.NoError(t, err)
	assert.True(t, report.Validation.Valid)
	assert.True(t, report.Traversal.HasValidFlow)
	assert.Equal(t, []string{"planner", "writer"}, report.Traversal.Order)

	t.Run("in-memory analyze matches", func(t *testing.T) {
		direct := a.Analyze(demoFlow())
		assert.Equal(t, report.Traversal.Order, direct.Traversal.Order)
	})

	t.Run("rename rewrites templates", func(t *testing.T) {
		f := demoFlow()
		res, err := a.RenameAgent(f, "Planner", "Outliner")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Rewritten)
		assert.Contains(t, f.Agents["writer"].Prompt, "{{ outliner.response }}")
	})
}

func TestPackageLevelHelpers(t *testing.T) {
	f := demoFlow()

	res := Traverse(f)
	require.NotNil(t, res)
	assert.True(t, res.HasValidFlow)

	adj := BuildAdjacency(f.Nodes, f.Edges)
	assert.Equal(t, []string{"planner"}, adj.Forward["start"])

	vr := ValidateFlow(f)
	assert.True(t, vr.Valid)

	vars := ExtractVariables("{{ planner.response }} and {{ session.scenario }}")
	assert.Equal(t, []string{"planner.response", "session.scenario"}, vars)

	agents := ExtractAgentVariables("{{ planner.response }}", []string{"planner", "writer"})
	assert.Equal(t, []string{"planner"}, agents)

	assert.True(t, HasAgentReferences("{{ planner.response }}", "planner"))
	assert.Equal(t, "{{ scribe.response }}", ReplaceAgentReferences("{{ planner.response }}", "planner", "scribe"))

	used := UsedColors(f)
	assert.Empty(t, used)
	assert.Equal(t, "#F59E0B", NextColor(used))
}
