package flow

import (
	"time"

	"github.com/google/uuid"
)

// AgentDefinition is the slice of an agent record this core needs: the
// sanitized name used as the head of template references and the prompt text
// fed to the template resolver. The full record lives with the agent
// directory collaborator.
type AgentDefinition struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prompt string `json:"prompt,omitempty"`
}

// Flow represents a directed graph of typed nodes forming an agent pipeline.
type Flow struct {
	ID               string                      `json:"id"`
	Name             string                      `json:"name"`
	Nodes            []*Node                     `json:"nodes"`
	Edges            []*Edge                     `json:"edges"`
	ResponseTemplate string                      `json:"responseTemplate"`
	Agents           map[string]*AgentDefinition `json:"agents,omitempty"`
	CreatedAt        time.Time                   `json:"created_at,omitempty"`
	UpdatedAt        time.Time                   `json:"updated_at,omitempty"`
}

// NewFlow creates an empty flow with a generated ID.
func NewFlow(name string) *Flow {
	now := time.Now()
	return &Flow{
		ID:        uuid.NewString(),
		Name:      name,
		Agents:    make(map[string]*AgentDefinition),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewStartNode creates a start node with a generated ID.
func NewStartNode() *Node {
	return &Node{ID: uuid.NewString(), Type: NodeTypeStart}
}

// NewEndNode creates an end node with a generated ID.
func NewEndNode() *Node {
	return &Node{ID: uuid.NewString(), Type: NodeTypeEnd}
}

// NewAgentNode creates an agent node bound to the given agent ID.
func NewAgentNode(agentID string) *Node {
	return &Node{ID: uuid.NewString(), Type: NodeTypeAgent, Agent: &AgentData{AgentID: agentID}}
}

// NewIfNode creates an if node with an empty AND condition set.
func NewIfNode(label string) *Node {
	return &Node{
		ID:   uuid.NewString(),
		Type: NodeTypeIf,
		If:   &IfData{Label: label, LogicOperator: LogicAnd, Conditions: []IfCondition{}},
	}
}

// NewDataStoreNode creates a dataStore node with an empty field set.
func NewDataStoreNode(label string) *Node {
	return &Node{
		ID:        uuid.NewString(),
		Type:      NodeTypeDataStore,
		DataStore: &DataStoreData{Label: label, Fields: []DataStoreField{}},
	}
}

// AddNode appends a node, rejecting duplicates by ID. Programmatic
// construction must be well-formed: the type has to be known, and dataStore
// and if nodes need their payload (agent nodes may omit theirs, the node ID
// fallback covers them). Decoded documents bypass this and go through the
// validator instead.
func (f *Flow) AddNode(node *Node) error {
	if node == nil {
		return ErrNilNode
	}
	if node.ID == "" {
		return ErrInvalidNodeID
	}
	switch node.Type {
	case NodeTypeStart, NodeTypeEnd, NodeTypeAgent:
	case NodeTypeDataStore:
		if node.DataStore == nil {
			return ErrMissingPayload
		}
	case NodeTypeIf:
		if node.If == nil {
			return ErrMissingPayload
		}
	default:
		return ErrInvalidType
	}
	for _, n := range f.Nodes {
		if n.ID == node.ID {
			return ErrDuplicateNode
		}
	}
	f.Nodes = append(f.Nodes, node)
	f.UpdatedAt = time.Now()
	return nil
}

// AddAgent registers an agent definition under its ID.
func (f *Flow) AddAgent(def *AgentDefinition) error {
	if def == nil || def.ID == "" {
		return ErrInvalidAgent
	}
	if f.Agents == nil {
		f.Agents = make(map[string]*AgentDefinition)
	}
	if _, ok := f.Agents[def.ID]; ok {
		return ErrDuplicateAgent
	}
	f.Agents[def.ID] = def
	f.UpdatedAt = time.Now()
	return nil
}

// AddEdge appends an edge, minting an ID when absent. Endpoint existence is
// not enforced here; dangling edges are a validation concern.
func (f *Flow) AddEdge(edge *Edge) error {
	if edge == nil {
		return ErrNilEdge
	}
	if err := edge.Validate(); err != nil {
		return err
	}
	if edge.ID == "" {
		edge.ID = uuid.NewString()
	}
	f.Edges = append(f.Edges, edge)
	f.UpdatedAt = time.Now()
	return nil
}

// Connect adds an edge between two existing nodes. Unlike AddEdge it rejects
// unknown endpoints: a builder wiring nodes by ID wants the typo surfaced,
// while AddEdge stays tolerant for documents loaded from storage.
func (f *Flow) Connect(source, target string) error {
	if f.NodeByID(source) == nil || f.NodeByID(target) == nil {
		return ErrNodeNotFound
	}
	return f.AddEdge(&Edge{Source: source, Target: target})
}

// NodeByID returns the node with the given ID, or nil if not found.
func (f *Flow) NodeByID(id string) *Node {
	for _, n := range f.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// StartNode returns the first start-type node, or nil if the flow has none.
func (f *Flow) StartNode() *Node { return f.firstOfType(NodeTypeStart) }

// EndNode returns the first end-type node, or nil if the flow has none.
func (f *Flow) EndNode() *Node { return f.firstOfType(NodeTypeEnd) }

func (f *Flow) firstOfType(t NodeType) *Node {
	for _, n := range f.Nodes {
		if n.Type == t {
			return n
		}
	}
	return nil
}

// AgentNodes returns all agent-type nodes in input order.
func (f *Flow) AgentNodes() []*Node {
	var out []*Node
	for _, n := range f.Nodes {
		if n.Type == NodeTypeAgent {
			out = append(out, n)
		}
	}
	return out
}
