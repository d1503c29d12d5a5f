package traverse

import "sort"

// assignPositions orders start-reachable agents by (depth ascending, agent ID
// ascending) and writes sequential 0-based positions. Sorting by ID second
// makes the order reproducible regardless of node input order. Disconnected
// agents keep position -1 and are excluded from Order.
func assignPositions(res *Result) {
	ids := make([]string, 0, len(res.Agents))
	for id, p := range res.Agents {
		if p.ConnectedToStart {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := res.Agents[ids[i]], res.Agents[ids[j]]
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		return a.AgentID < b.AgentID
	})
	for i, id := range ids {
		p := res.Agents[id]
		p.Position = i
		res.Agents[id] = p
	}
	res.Order = ids
}
