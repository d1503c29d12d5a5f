// Package flowcore provides a minimal public façade for analyzing flows
// without importing internal packages. It re-exports the core flow types for
// convenience and exposes an Analyzer with simple methods to validate,
// traverse, and resolve template references.
package flowcore
