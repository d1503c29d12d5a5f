package flowcore

import (
	"context"
	"log/slog"

	"github.com/astrskai/astrsk-sub018/internal/adapters/repository/memory"
	"github.com/astrskai/astrsk-sub018/internal/app/cache"
	"github.com/astrskai/astrsk-sub018/internal/app/dto"
	"github.com/astrskai/astrsk-sub018/internal/app/usecases"
	"github.com/astrskai/astrsk-sub018/internal/core/color"
	"github.com/astrskai/astrsk-sub018/internal/core/flow"
	"github.com/astrskai/astrsk-sub018/internal/core/template"
	"github.com/astrskai/astrsk-sub018/internal/core/traverse"
	"github.com/astrskai/astrsk-sub018/pkg/validation"
)

// Re-export core types for convenience
type (
	Flow            = flow.Flow
	Node            = flow.Node
	Edge            = flow.Edge
	NodeType        = flow.NodeType
	AgentData       = flow.AgentData
	DataStoreData   = flow.DataStoreData
	IfData          = flow.IfData
	AgentDefinition = flow.AgentDefinition
	AgentPosition   = traverse.AgentPosition
	TraversalResult = traverse.Result
	AnalysisReport  = dto.AnalysisReport
)

// Node type constants re-exported from the core.
const (
	NodeTypeStart     = flow.NodeTypeStart
	NodeTypeEnd       = flow.NodeTypeEnd
	NodeTypeAgent     = flow.NodeTypeAgent
	NodeTypeIf        = flow.NodeTypeIf
	NodeTypeDataStore = flow.NodeTypeDataStore
)

// Analyzer bundles the validator, the memoizing traversal cache, and the
// template resolver behind one entry point. The zero wiring uses in-memory
// components and suits local usage and tests.
type Analyzer struct {
	inner *usecases.FlowAnalyzer
	repo  *memory.FlowRepository
}

// NewAnalyzer constructs a default analyzer with an in-memory repository and
// a bounded traversal cache.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithCacheSize(cache.DefaultSize)
}

// NewAnalyzerWithCacheSize is NewAnalyzer with an explicit traversal cache
// bound. Non-positive sizes fall back to the default.
func NewAnalyzerWithCacheSize(size int) *Analyzer {
	c, err := cache.New(size)
	if err != nil {
		// lru.New only fails on a non-positive size, which cache.New corrects.
		panic(err)
	}
	repo := memory.NewFlowRepository()
	return &Analyzer{
		inner: usecases.NewFlowAnalyzer(c, repo, slog.Default()),
		repo:  repo,
	}
}

// SaveFlow stores a flow in the analyzer's repository.
func (a *Analyzer) SaveFlow(ctx context.Context, f *Flow) error {
	return a.repo.Save(ctx, f)
}

// Analyze validates and traverses an in-memory flow.
func (a *Analyzer) Analyze(f *Flow) *AnalysisReport {
	return a.inner.Analyze(f)
}

// AnalyzeByID loads a saved flow's structure and analyzes it.
func (a *Analyzer) AnalyzeByID(ctx context.Context, flowID string) (*AnalysisReport, error) {
	return a.inner.AnalyzeByID(ctx, flowID)
}

// Repair returns a copy of the flow with structural gaps filled.
func (a *Analyzer) Repair(f *Flow) *Flow {
	return a.inner.Repair(f)
}

// RenameAgent propagates an agent rename through the flow's templates.
func (a *Analyzer) RenameAgent(f *Flow, oldName, newName string) (*dto.RenameResult, error) {
	return usecases.RenameAgent(f, oldName, newName)
}

// Traverse runs reachability analysis on a flow without validation.
func Traverse(f *Flow) *TraversalResult { return traverse.Analyze(f) }

// BuildAdjacency exposes the forward/reverse adjacency maps of a node/edge set.
func BuildAdjacency(nodes []*Node, edges []*Edge) traverse.Adjacency {
	return traverse.BuildAdjacency(nodes, edges)
}

// ValidateFlow runs full structural validation.
func ValidateFlow(f *Flow) *validation.Result { return validation.ValidateFlow(f) }

// ValidateNodeData validates one node.
func ValidateNodeData(n *Node) *validation.Result { return validation.ValidateNodeData(n) }

// ValidateAllNodes validates a node set including duplicate-ID detection.
func ValidateAllNodes(nodes []*Node) *validation.Result { return validation.ValidateAllNodes(nodes) }

// RepairNodeData fills structural gaps in one node.
func RepairNodeData(n *Node) *Node { return validation.RepairNodeData(n) }

// ExtractVariables returns the external variable references of a template.
func ExtractVariables(tpl string) []string { return template.ExtractVariables(tpl) }

// ExtractAgentVariables projects template references onto agent names.
func ExtractAgentVariables(tpl string, known []string) []string {
	return template.ExtractAgentVariables(tpl, known)
}

// ReplaceAgentReferences rewrites an agent identifier through a template.
func ReplaceAgentReferences(tpl, oldName, newName string) string {
	return template.ReplaceAgentReferences(tpl, oldName, newName)
}

// HasAgentReferences reports whether a template references the agent name.
func HasAgentReferences(tpl, name string) bool { return template.HasAgentReferences(tpl, name) }

// NextColor picks the next free node color given a used-colors snapshot.
func NextColor(used map[string]int) string { return color.Next(used) }

// UsedColors collects the color snapshot of one flow.
func UsedColors(f *Flow) map[string]int { return color.UsedColors(f) }
