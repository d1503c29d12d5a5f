// Package cache memoizes traversal results per flow structure. Keys are
// derived from the node/edge sets only, so unrelated edits (prompt text,
// canvas positions) hit the cache while any structural change produces a new
// key. Entries are never invalidated by time.
package cache

import (
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"

	"github.com/astrskai/astrsk-sub018/internal/core/flow"
	"github.com/astrskai/astrsk-sub018/internal/core/traverse"
	"github.com/astrskai/astrsk-sub018/internal/infrastructure/metrics"
)

// DefaultSize bounds the number of cached traversals.
const DefaultSize = 256

// TraversalCache is a bounded, single-flight memoization of traverse.Analyze.
// Concurrent callers with the same key share one computation; readers always
// see a complete Result snapshot.
type TraversalCache struct {
	entries *lru.Cache[string, *traverse.Result]
	group   singleflight.Group
}

// New creates a cache holding up to size results.
func New(size int) (*TraversalCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, *traverse.Result](size)
	if err != nil {
		return nil, err
	}
	return &TraversalCache{entries: entries}, nil
}

// Analyze returns the memoized traversal of f, computing it at most once per
// structural signature.
func (c *TraversalCache) Analyze(f *flow.Flow) *traverse.Result {
	key, ok := Key(f)
	if !ok {
		// Unkeyable input, compute without caching.
		return traverse.Analyze(f)
	}
	if res, hit := c.entries.Get(key); hit {
		metrics.IncCacheHits()
		return res
	}
	metrics.IncCacheMiss()

	v, _, _ := c.group.Do(key, func() (any, error) {
		if res, hit := c.entries.Get(key); hit {
			return res, nil
		}
		metrics.IncTraversals()
		res := traverse.Analyze(f)
		c.entries.Add(key, res)
		return res, nil
	})
	return v.(*traverse.Result)
}

// Invalidate drops the entry for f's current structure.
func (c *TraversalCache) Invalidate(f *flow.Flow) {
	if key, ok := Key(f); ok {
		c.entries.Remove(key)
	}
}

// Purge drops every cached result.
func (c *TraversalCache) Purge() { c.entries.Purge() }

// Len returns the number of cached results.
func (c *TraversalCache) Len() int { return c.entries.Len() }

// signature is the canonical structural identity of a flow: sorted node and
// edge tuples, everything traversal output can depend on and nothing else.
type signature struct {
	FlowID string
	Nodes  [][3]string // id, type, effective agent id
	Edges  [][2]string // source, target
}

// Key derives the cache key for a flow. The bool is false when the flow
// cannot be keyed (nil input).
func Key(f *flow.Flow) (string, bool) {
	if f == nil {
		return "", false
	}
	sig := signature{FlowID: f.ID}
	for _, n := range f.Nodes {
		if n == nil {
			continue
		}
		sig.Nodes = append(sig.Nodes, [3]string{n.ID, string(n.Type), n.EffectiveAgentID()})
	}
	for _, e := range f.Edges {
		if e == nil {
			continue
		}
		sig.Edges = append(sig.Edges, [2]string{e.Source, e.Target})
	}
	sort.Slice(sig.Nodes, func(i, j int) bool { return sig.Nodes[i][0] < sig.Nodes[j][0] })
	sort.Slice(sig.Edges, func(i, j int) bool {
		if sig.Edges[i][0] != sig.Edges[j][0] {
			return sig.Edges[i][0] < sig.Edges[j][0]
		}
		return sig.Edges[i][1] < sig.Edges[j][1]
	})

	data, err := msgpack.Marshal(&sig)
	if err != nil {
		return "", false
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), true
}
