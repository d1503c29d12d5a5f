package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrskai/astrsk-sub018/internal/core/flow"
)

func savedFlow() *flow.Flow {
	return &flow.Flow{
		ID: "f1",
		Nodes: []*flow.Node{
			{ID: "start", Type: flow.NodeTypeStart},
			{ID: "a1", Type: flow.NodeTypeAgent, Agent: &flow.AgentData{AgentID: "alpha"}},
		},
		Edges: []*flow.Edge{
			{ID: "e1", Source: "start", Target: "a1"},
		},
		Agents: map[string]*flow.AgentDefinition{
			"alpha": {ID: "alpha", Name: "Alpha"},
		},
	}
}

func TestFlowRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewFlowRepository()

	require.NoError(t, repo.Save(ctx, savedFlow()))

	got, err := repo.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", got.ID)

	nodes, err := repo.LoadNodesByFlow(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	edges, err := repo.LoadEdgesByFlow(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, edges, 1)

	t.Run("unknown flow", func(t *testing.T) {
		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, flow.ErrFlowNotFound)

		_, err = repo.LoadNodesByFlow(ctx, "missing")
		assert.ErrorIs(t, err, flow.ErrFlowNotFound)
	})

	t.Run("save validates input", func(t *testing.T) {
		assert.ErrorIs(t, repo.Save(ctx, nil), flow.ErrNilFlow)
		assert.Error(t, repo.Save(ctx, &flow.Flow{}))
	})

	t.Run("save replaces by id", func(t *testing.T) {
		replacement := savedFlow()
		replacement.Name = "v2"
		require.NoError(t, repo.Save(ctx, replacement))

		got, err := repo.Get(ctx, "f1")
		require.NoError(t, err)
		assert.Equal(t, "v2", got.Name)
	})
}

func TestAgentDirectory(t *testing.T) {
	ctx := context.Background()
	repo := NewFlowRepository()
	require.NoError(t, repo.Save(ctx, savedFlow()))

	dir := NewAgentDirectory(repo)

	def, err := dir.ResolveAgentDefinition(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", def.Name)

	_, err = dir.ResolveAgentDefinition(ctx, "ghost")
	assert.ErrorIs(t, err, flow.ErrAgentNotFound)
}
