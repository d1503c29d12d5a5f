// Package usecases orchestrates the pure core (validation, traversal,
// template resolution) into the operations callers actually invoke.
package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/astrskai/astrsk-sub018/internal/app/cache"
	"github.com/astrskai/astrsk-sub018/internal/app/dto"
	"github.com/astrskai/astrsk-sub018/internal/core/flow"
	"github.com/astrskai/astrsk-sub018/internal/core/template"
	"github.com/astrskai/astrsk-sub018/internal/core/traverse"
	"github.com/astrskai/astrsk-sub018/internal/infrastructure/metrics"
	"github.com/astrskai/astrsk-sub018/pkg/validation"
)

// FlowAnalyzer validates a flow, traverses it through the memoizing cache,
// and projects cross-agent template references.
type FlowAnalyzer struct {
	cache *cache.TraversalCache
	repo  FlowRepository
	log   *slog.Logger
}

// NewFlowAnalyzer builds an analyzer. The repository may be nil if only
// in-memory flows are analyzed; the cache may be nil to disable memoization.
func NewFlowAnalyzer(c *cache.TraversalCache, repo FlowRepository, log *slog.Logger) *FlowAnalyzer {
	if log == nil {
		log = slog.Default()
	}
	return &FlowAnalyzer{cache: c, repo: repo, log: log}
}

// Analyze runs the full pipeline on an in-memory flow: node validation,
// reachability traversal, and reference projection. Malformed data never
// fails the call; findings land in the report.
func (a *FlowAnalyzer) Analyze(f *flow.Flow) *dto.AnalysisReport {
	report := &dto.AnalysisReport{}
	if f == nil {
		report.Validation = validation.ValidateFlow(nil)
		return report
	}
	report.FlowID = f.ID
	report.FlowName = f.Name
	report.Validation = validation.ValidateFlow(f)
	a.count(report.Validation)

	if a.cache != nil {
		report.Traversal = a.cache.Analyze(f)
	} else {
		metrics.IncTraversals()
		report.Traversal = traverse.Analyze(f)
	}
	report.References = a.references(f)
	return report
}

// AnalyzeByID loads the flow's structure from the repository and analyzes it.
// Repository failures are the only error channel here.
func (a *FlowAnalyzer) AnalyzeByID(ctx context.Context, flowID string) (*dto.AnalysisReport, error) {
	if flowID == "" {
		return nil, dto.ErrMissingFlowID
	}
	if a.repo == nil {
		return nil, dto.ErrRepoUnavailable
	}
	nodes, err := a.repo.LoadNodesByFlow(ctx, flowID)
	if err != nil {
		return nil, fmt.Errorf("loading nodes for flow %s: %w", flowID, err)
	}
	edges, err := a.repo.LoadEdgesByFlow(ctx, flowID)
	if err != nil {
		return nil, fmt.Errorf("loading edges for flow %s: %w", flowID, err)
	}
	return a.Analyze(&flow.Flow{ID: flowID, Nodes: nodes, Edges: edges}), nil
}

// Repair returns a copy of the flow with every node run through
// RepairNodeData. The input flow is not mutated.
func (a *FlowAnalyzer) Repair(f *flow.Flow) *flow.Flow {
	if f == nil {
		return nil
	}
	out := *f
	out.Nodes = validation.RepairAllNodes(f.Nodes)
	for range out.Nodes {
		metrics.IncNodesRepaired()
	}
	return &out
}

// references maps each agent (and the response template) to the agents its
// template mentions, classified against the flow's sanitized agent names.
func (a *FlowAnalyzer) references(f *flow.Flow) map[string][]string {
	if len(f.Agents) == 0 && f.ResponseTemplate == "" {
		return nil
	}
	known := make([]string, 0, len(f.Agents))
	for _, def := range f.Agents {
		if def != nil && def.Name != "" {
			known = append(known, template.SanitizeAgentName(def.Name))
		}
	}
	sort.Strings(known)

	refs := make(map[string][]string)
	for id, def := range f.Agents {
		if def == nil || def.Prompt == "" {
			continue
		}
		metrics.IncTemplateExtractions()
		if found := template.ExtractAgentVariables(def.Prompt, known); len(found) > 0 {
			refs[id] = found
		}
	}
	if f.ResponseTemplate != "" {
		metrics.IncTemplateExtractions()
		if found := template.ExtractAgentVariables(f.ResponseTemplate, known); len(found) > 0 {
			refs[dto.ResponseTemplateKey] = found
		}
	}
	if len(refs) == 0 {
		return nil
	}
	return refs
}

func (a *FlowAnalyzer) count(res *validation.Result) {
	metrics.AddValidationErrors("flow", int64(len(res.Errors)))
	metrics.AddValidationWarnings("flow", int64(len(res.Warnings)))
}
