package metrics

import (
	"expvar"
)

// Traversal metrics.
var (
	traversalsTotal    = new(expvar.Int)
	traversalCacheHits = new(expvar.Int)
	traversalCacheMiss = new(expvar.Int)
)

// Validation metrics (counters keyed by node type).
var (
	validationErrors   = expvar.NewMap("flowcore_validation_errors_total")
	validationWarnings = expvar.NewMap("flowcore_validation_warnings_total")
	nodesRepaired      = new(expvar.Int)
)

// Template metrics.
var (
	templateExtractions = new(expvar.Int)
	templateRenames     = new(expvar.Int)
)

func init() {
	expvar.Publish("flowcore_traversals_total", traversalsTotal)
	expvar.Publish("flowcore_traversal_cache_hits_total", traversalCacheHits)
	expvar.Publish("flowcore_traversal_cache_misses_total", traversalCacheMiss)
	expvar.Publish("flowcore_nodes_repaired_total", nodesRepaired)
	expvar.Publish("flowcore_template_extractions_total", templateExtractions)
	expvar.Publish("flowcore_template_renames_total", templateRenames)
}

// Traversal helpers
func IncTraversals() { traversalsTotal.Add(1) }
func IncCacheHits()  { traversalCacheHits.Add(1) }
func IncCacheMiss()  { traversalCacheMiss.Add(1) }

// Validation helpers
func AddValidationErrors(nodeType string, n int64)   { validationErrors.Add(nodeType, n) }
func AddValidationWarnings(nodeType string, n int64) { validationWarnings.Add(nodeType, n) }
func IncNodesRepaired()                              { nodesRepaired.Add(1) }

// Template helpers
func IncTemplateExtractions() { templateExtractions.Add(1) }
func IncTemplateRenames()     { templateRenames.Add(1) }
