package traverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrskai/astrsk-sub018/internal/core/flow"
)

func TestBuildAdjacency(t *testing.T) {
	nodes := []*flow.Node{
		{ID: "start", Type: flow.NodeTypeStart},
		{ID: "a", Type: flow.NodeTypeAgent},
		{ID: "isolated", Type: flow.NodeTypeAgent},
	}
	edges := []*flow.Edge{
		{ID: "e1", Source: "start", Target: "a"},
		{ID: "e2", Source: "a", Target: "ghost"},   // dangling target
		{ID: "e3", Source: "ghost", Target: "a"},   // dangling source
	}

	adj := BuildAdjacency(nodes, edges)

	t.Run("every node is pre-seeded", func(t *testing.T) {
		require.Len(t, adj.Forward, 3)
		require.Len(t, adj.Reverse, 3)
		assert.NotNil(t, adj.Forward["isolated"])
		assert.Empty(t, adj.Forward["isolated"])
		assert.NotNil(t, adj.Reverse["start"])
	})

	t.Run("edges populate both directions", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, adj.Forward["start"])
		assert.Equal(t, []string{"start"}, adj.Reverse["a"])
	})

	t.Run("dangling edges are dropped", func(t *testing.T) {
		assert.Empty(t, adj.Forward["a"])
		_, ok := adj.Forward["ghost"]
		assert.False(t, ok, "dangling reference must not introduce a node")
	})
}
