package validation

import (
	"fmt"
	"strings"

	"github.com/astrskai/astrsk-sub018/internal/core/color"
	"github.com/astrskai/astrsk-sub018/internal/core/flow"
)

// ValidateNodeData checks one node's structural integrity: identity fields
// first, then the payload rules of its type.
func ValidateNodeData(n *flow.Node) *Result {
	res := NewResult()
	if n == nil {
		res.errorf("node is nil")
		return res
	}
	if n.ID == "" {
		res.errorf("node is missing an id")
	}

	switch n.Type {
	case flow.NodeTypeStart, flow.NodeTypeEnd:
		// No payload rules.
	case flow.NodeTypeAgent:
		validateAgentData(n, res)
	case flow.NodeTypeDataStore:
		validateDataStoreData(n, res)
	case flow.NodeTypeIf:
		validateIfData(n, res)
	case "":
		res.errorf("node %q is missing a type", n.ID)
	default:
		res.errorf("node %q has unknown type %q", n.ID, n.Type)
	}
	return res
}

func validateAgentData(n *flow.Node, res *Result) {
	if n.Agent == nil {
		res.errorf("agent node %q is missing its data payload", n.ID)
		return
	}
	if n.Agent.AgentID == "" {
		res.warnf("agent node %q has no agentId, falling back to the node id", n.ID)
	}
}

func validateDataStoreData(n *flow.Node, res *Result) {
	if n.DataStore == nil {
		res.errorf("dataStore node %q is missing its data payload", n.ID)
		return
	}
	d := n.DataStore
	if d.Color != "" && !color.IsHex(d.Color) {
		res.warnf("dataStore node %q has malformed color %q", n.ID, d.Color)
	}
	if d.Fields == nil {
		res.warnf("dataStore node %q has no dataStoreFields list", n.ID)
		return
	}
	for i, f := range d.Fields {
		if f.SchemaFieldID == "" {
			res.errorf("dataStore node %q field %d is missing schemaFieldId", n.ID, i)
		}
		if !f.HasValue && f.Value == nil {
			res.warnf("dataStore node %q field %d has no value", n.ID, i)
		}
	}
}

func validateIfData(n *flow.Node, res *Result) {
	if n.If == nil {
		res.errorf("if node %q is missing its data payload", n.ID)
		return
	}
	d := n.If
	switch d.LogicOperator {
	case flow.LogicAnd, flow.LogicOr:
	case "":
		res.warnf("if node %q has no logicOperator, defaulting to AND", n.ID)
	default:
		res.errorf("if node %q has invalid logicOperator %q", n.ID, d.LogicOperator)
	}
	if d.Color != "" && !color.IsHex(d.Color) {
		res.warnf("if node %q has malformed color %q", n.ID, d.Color)
	}
	if d.Conditions == nil {
		res.warnf("if node %q has no conditions list", n.ID)
		return
	}
	for i, c := range d.Conditions {
		if c.ID == "" {
			res.errorf("if node %q condition %d is missing an id", n.ID, i)
		}
		// A nil Operator is a legitimate mid-creation state.
	}
}

// ValidateAllNodes validates a node set: duplicate IDs are reported first,
// then every node is validated individually and the findings aggregated.
func ValidateAllNodes(nodes []*flow.Node) *Result {
	res := NewResult()

	counts := make(map[string]int)
	order := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n == nil || n.ID == "" {
			continue
		}
		if counts[n.ID] == 0 {
			order = append(order, n.ID)
		}
		counts[n.ID]++
	}
	var dups []string
	for _, id := range order {
		if counts[id] > 1 {
			dups = append(dups, fmt.Sprintf("%q (x%d)", id, counts[id]))
		}
	}
	if len(dups) > 0 {
		res.errorf("duplicate node ids: %s", strings.Join(dups, ", "))
	}

	for _, n := range nodes {
		res.Merge(ValidateNodeData(n))
	}
	return res
}

// ValidateFlow validates the whole flow: its node set, edge endpoint
// integrity, start/end cardinality, and agent references. Dangling edges are
// warnings because traversal tolerates them; the executor collaborator makes
// the final call on unresolved agents.
func ValidateFlow(f *flow.Flow) *Result {
	res := NewResult()
	if f == nil {
		res.errorf("flow is nil")
		return res
	}
	res.Merge(ValidateAllNodes(f.Nodes))

	known := make(map[string]bool, len(f.Nodes))
	starts, ends := 0, 0
	for _, n := range f.Nodes {
		if n == nil {
			continue
		}
		known[n.ID] = true
		switch n.Type {
		case flow.NodeTypeStart:
			starts++
		case flow.NodeTypeEnd:
			ends++
		}
	}
	if starts == 0 {
		res.warnf("flow has no start node, nothing is reachable")
	}
	if starts > 1 {
		res.warnf("flow has %d start nodes, expected one", starts)
	}
	if ends == 0 {
		res.warnf("flow has no end node")
	}
	if ends > 1 {
		res.warnf("flow has %d end nodes, expected one", ends)
	}

	for _, e := range f.Edges {
		if e == nil {
			continue
		}
		if !known[e.Source] {
			res.warnf("edge %q references unknown source node %q", e.ID, e.Source)
		}
		if !known[e.Target] {
			res.warnf("edge %q references unknown target node %q", e.ID, e.Target)
		}
	}

	for _, n := range f.Nodes {
		if n == nil || n.Type != flow.NodeTypeAgent {
			continue
		}
		if id := n.EffectiveAgentID(); f.Agents != nil {
			if _, ok := f.Agents[id]; !ok {
				res.warnf("agent node %q references unknown agent %q", n.ID, id)
			}
		}
	}
	return res
}
