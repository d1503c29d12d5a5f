// Package metrics exposes expvar-published counters for the flow analysis
// core (traversal, cache, validation, template resolution). It intentionally
// avoids external dependencies and is consumed via /debug/vars by whatever
// host embeds the engine.
package metrics
