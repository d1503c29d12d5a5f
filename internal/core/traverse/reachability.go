package traverse

// reachableFrom runs a depth-first search over the given adjacency direction
// and returns the set of visited node IDs (the origin included). The visited
// set doubles as cycle protection.
func reachableFrom(origin string, neighbors map[string][]string) map[string]bool {
	visited := make(map[string]bool)
	if _, ok := neighbors[origin]; !ok {
		return visited
	}
	stack := []string{origin}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		next := neighbors[id]
		// Push in reverse so neighbors are visited in edge order.
		for i := len(next) - 1; i >= 0; i-- {
			if !visited[next[i]] {
				stack = append(stack, next[i])
			}
		}
	}
	return visited
}

// depthsFrom computes shortest-path distance (edge count) from the origin to
// every reachable node via breadth-first search. Unreachable nodes are absent
// from the returned map.
func depthsFrom(origin string, neighbors map[string][]string) map[string]int {
	depth := make(map[string]int)
	if _, ok := neighbors[origin]; !ok {
		return depth
	}
	depth[origin] = 0
	queue := []string{origin}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range neighbors[id] {
			if _, seen := depth[next]; seen {
				continue
			}
			depth[next] = depth[id] + 1
			queue = append(queue, next)
		}
	}
	return depth
}

// hasCycleWithin detects a directed cycle among the given node set using DFS
// coloring. Nodes outside the set are ignored.
func hasCycleWithin(set map[string]bool, neighbors map[string][]string) bool {
	const (
		white = 0 // unvisited
		gray  = 1 // visiting
		black = 2 // visited
	)
	color := make(map[string]int, len(set))
	var dfs func(string) bool
	dfs = func(u string) bool {
		color[u] = gray
		for _, v := range neighbors[u] {
			if !set[v] {
				continue
			}
			if color[v] == gray {
				return true // back-edge
			}
			if color[v] == white {
				if dfs(v) {
					return true
				}
			}
		}
		color[u] = black
		return false
	}
	for id := range set {
		if color[id] == white {
			if dfs(id) {
				return true
			}
		}
	}
	return false
}
