package validation

import (
	"log/slog"

	"github.com/astrskai/astrsk-sub018/internal/core/flow"
)

// RepairNodeData fills structural gaps in a node without ever removing or
// overwriting existing data. It returns a repaired copy; the input is not
// mutated. Repair is idempotent: applying it to its own output is a no-op.
//
// An agent node with an empty agentId is deliberately left alone (the correct
// identifier cannot be inferred); the fallback-to-node-id rule covers it at
// resolution time.
func RepairNodeData(n *flow.Node) *flow.Node {
	if n == nil {
		return nil
	}
	out := *n

	switch out.Type {
	case flow.NodeTypeAgent:
		if out.Agent == nil {
			out.Agent = &flow.AgentData{}
		}
		if out.Agent.AgentID == "" {
			slog.Debug("agent node has no agentId, leaving as-is", "node", out.ID)
		}
	case flow.NodeTypeDataStore:
		out.DataStore = repairDataStoreData(out.DataStore)
	case flow.NodeTypeIf:
		out.If = repairIfData(out.If)
	}
	return &out
}

func repairDataStoreData(d *flow.DataStoreData) *flow.DataStoreData {
	if d == nil {
		d = &flow.DataStoreData{}
	} else {
		cp := *d
		d = &cp
	}
	if d.Label == "" {
		d.Label = "Data Store"
	}
	if d.Fields == nil {
		d.Fields = []flow.DataStoreField{}
	}
	return d
}

func repairIfData(d *flow.IfData) *flow.IfData {
	if d == nil {
		d = &flow.IfData{}
	} else {
		cp := *d
		d = &cp
	}
	if d.Label == "" {
		d.Label = "Condition"
	}
	if d.LogicOperator == "" {
		d.LogicOperator = flow.LogicAnd
	}
	if d.Conditions == nil {
		d.Conditions = []flow.IfCondition{}
	}
	return d
}

// RepairAllNodes repairs every node in the list, preserving order.
func RepairAllNodes(nodes []*flow.Node) []*flow.Node {
	out := make([]*flow.Node, len(nodes))
	for i, n := range nodes {
		out[i] = RepairNodeData(n)
	}
	return out
}
