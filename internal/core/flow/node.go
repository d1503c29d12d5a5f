// Package flow provides the core flow graph domain entities.
package flow

import "encoding/json"

// NodeType represents the type of node
type NodeType string

const (
	// NodeTypeStart marks the single entry point of a flow
	NodeTypeStart NodeType = "start"
	// NodeTypeEnd marks the exit point of a flow
	NodeTypeEnd NodeType = "end"
	// NodeTypeAgent represents one LLM-backed step
	NodeTypeAgent NodeType = "agent"
	// NodeTypeIf represents a conditional branching node
	NodeTypeIf NodeType = "if"
	// NodeTypeDataStore represents a node reading/writing shared pipeline state
	NodeTypeDataStore NodeType = "dataStore"
)

// Position is the canvas placement of a node.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents a vertex in the flow graph. The payload is a tagged union
// keyed by Type: exactly one of Agent, DataStore, If is set for the
// corresponding node type; start and end nodes carry no payload.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Position Position `json:"position"`

	Agent     *AgentData     `json:"-"`
	DataStore *DataStoreData `json:"-"`
	If        *IfData        `json:"-"`
}

// AgentData is the payload of an agent node.
type AgentData struct {
	AgentID string `json:"agentId,omitempty"`
}

// DataStoreField binds a schema field to a value. HasValue distinguishes an
// explicit null from a missing value.
type DataStoreField struct {
	SchemaFieldID string `json:"schemaFieldId"`
	Value         any    `json:"value,omitempty"`
	HasValue      bool   `json:"-"`
}

// MarshalJSON emits the "value" key whenever the field carries one, so an
// explicit null survives a load/save round trip instead of being dropped by
// the omitempty rule.
func (f DataStoreField) MarshalJSON() ([]byte, error) {
	if f.HasValue || f.Value != nil {
		return json.Marshal(struct {
			SchemaFieldID string `json:"schemaFieldId"`
			Value         any    `json:"value"`
		}{f.SchemaFieldID, f.Value})
	}
	return json.Marshal(struct {
		SchemaFieldID string `json:"schemaFieldId"`
	}{f.SchemaFieldID})
}

// DataStoreData is the payload of a dataStore node.
type DataStoreData struct {
	Label  string           `json:"label,omitempty"`
	Color  string           `json:"color,omitempty"`
	Fields []DataStoreField `json:"dataStoreFields,omitempty"`
}

// LogicOperator values accepted by if nodes.
const (
	LogicAnd = "AND"
	LogicOr  = "OR"
)

// IfCondition is a single comparison inside an if node. Operator is nil while
// the user is still composing the condition.
type IfCondition struct {
	ID       string  `json:"id"`
	Operator *string `json:"operator"`
}

// IfData is the payload of an if node.
type IfData struct {
	Label         string        `json:"label,omitempty"`
	LogicOperator string        `json:"logicOperator,omitempty"`
	Conditions    []IfCondition `json:"conditions,omitempty"`
	Color         string        `json:"color,omitempty"`
}

// EffectiveAgentID returns the agent identifier an agent node resolves to.
// Nodes saved before agentId existed fall back to the node's own ID.
func (n *Node) EffectiveAgentID() string {
	if n.Type != NodeTypeAgent {
		return ""
	}
	if n.Agent != nil && n.Agent.AgentID != "" {
		return n.Agent.AgentID
	}
	return n.ID
}

// IsAgent checks if the node is an agent node.
func (n *Node) IsAgent() bool { return n.Type == NodeTypeAgent }

// nodeJSON is the wire shape: payload nested under "data".
type nodeJSON struct {
	ID       string          `json:"id"`
	Type     NodeType        `json:"type"`
	Position Position        `json:"position"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON encodes the node with its typed payload under "data".
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{ID: n.ID, Type: n.Type, Position: n.Position}

	var payload any
	switch n.Type {
	case NodeTypeAgent:
		payload = n.Agent
	case NodeTypeDataStore:
		payload = n.DataStore
	case NodeTypeIf:
		payload = n.If
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		out.Data = data
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the "data" object into the payload variant matching
// the node type. Unknown or absent payloads are left nil; the validator and
// repairer deal with them.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	n.ID = in.ID
	n.Type = in.Type
	n.Position = in.Position
	n.Agent, n.DataStore, n.If = nil, nil, nil

	if len(in.Data) == 0 {
		return nil
	}
	switch in.Type {
	case NodeTypeAgent:
		n.Agent = &AgentData{}
		return json.Unmarshal(in.Data, n.Agent)
	case NodeTypeDataStore:
		n.DataStore = &DataStoreData{}
		if err := json.Unmarshal(in.Data, n.DataStore); err != nil {
			return err
		}
		markPresentValues(in.Data, n.DataStore)
		return nil
	case NodeTypeIf:
		n.If = &IfData{}
		return json.Unmarshal(in.Data, n.If)
	}
	return nil
}

// markPresentValues sets HasValue for fields whose "value" key was present in
// the raw document, including explicit nulls.
func markPresentValues(raw json.RawMessage, ds *DataStoreData) {
	var probe struct {
		Fields []map[string]json.RawMessage `json:"dataStoreFields"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return
	}
	for i := range ds.Fields {
		if i >= len(probe.Fields) {
			break
		}
		_, ok := probe.Fields[i]["value"]
		ds.Fields[i].HasValue = ok
	}
}
