// Package traverse implements reachability analysis and execution ordering
// over a flow graph. All functions are pure and never fail on malformed
// graphs: disconnected nodes, dangling edges, and cycles degrade to result
// flags rather than errors.
package traverse

import "github.com/astrskai/astrsk-sub018/internal/core/flow"

// Adjacency holds forward and reverse neighbor lists. Every node ID present
// in the input appears as a key, isolated nodes map to an empty list.
type Adjacency struct {
	Forward map[string][]string
	Reverse map[string][]string
}

// BuildAdjacency converts node and edge lists into forward and reverse
// adjacency maps. Edges whose endpoints are not in the node set are dropped,
// a dangling reference must never introduce a phantom node.
func BuildAdjacency(nodes []*flow.Node, edges []*flow.Edge) Adjacency {
	adj := Adjacency{
		Forward: make(map[string][]string, len(nodes)),
		Reverse: make(map[string][]string, len(nodes)),
	}
	for _, n := range nodes {
		adj.Forward[n.ID] = []string{}
		adj.Reverse[n.ID] = []string{}
	}
	for _, e := range edges {
		if _, ok := adj.Forward[e.Source]; !ok {
			continue
		}
		if _, ok := adj.Forward[e.Target]; !ok {
			continue
		}
		adj.Forward[e.Source] = append(adj.Forward[e.Source], e.Target)
		adj.Reverse[e.Target] = append(adj.Reverse[e.Target], e.Source)
	}
	return adj
}
