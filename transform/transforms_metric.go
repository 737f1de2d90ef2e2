package transform

import (
	"context"
	"sync"

	"github.com/graphia-app/graphia-sub005/attribute"
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/graphia-app/graphia-sub005/internal/workerpool"
)

const (
	pageRankDamping    = 0.85
	pageRankIterations = 100
	pageRankEpsilon    = 1e-8
)

// runPageRank computes PageRank by power iteration over g's current
// topology and registers it as a Float attribute named "pagerank" (§3's
// metric transforms). The inner per-node update is independent across
// nodes within an iteration, so it is parallelised with the shared worker
// pool.
func runPageRank(ctx context.Context, reg *attribute.Registry, g *graph.MutableGraph, pool *workerpool.Pool) error {
	nodeIds := g.NodeIds()
	n := len(nodeIds)
	if n == 0 {
		return registerEmptyFloat(reg, "pagerank")
	}
	index := make(map[ids.NodeId]int, n)
	for i, id := range nodeIds {
		index[id] = i
	}

	rank := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}
	outDegree := make([]int, n)
	inNeighbors := make([][]int, n)
	for i, id := range nodeIds {
		outDegree[i] = len(g.OutEdges(id))
		for _, e := range g.InEdges(id) {
			src, _ := g.Endpoints(e)
			inNeighbors[i] = append(inNeighbors[i], index[g.HeadOf(src)])
		}
	}

	next := make([]float64, n)
	for iter := 0; iter < pageRankIterations; iter++ {
		var danglingMu sync.Mutex
		dangling := 0.0
		err := pool.ForEachIndex(ctx, n, func(_ context.Context, i int) error {
			sum := 0.0
			for _, j := range inNeighbors[i] {
				if outDegree[j] > 0 {
					sum += rank[j] / float64(outDegree[j])
				}
			}
			next[i] = (1-pageRankDamping)/float64(n) + pageRankDamping*sum
			if outDegree[i] == 0 {
				danglingMu.Lock()
				dangling += rank[i]
				danglingMu.Unlock()
			}
			return nil
		})
		if err != nil {
			return err
		}
		redistribute := pageRankDamping * dangling / float64(n)
		maxDelta := 0.0
		for i := range next {
			next[i] += redistribute
			if d := next[i] - rank[i]; d > maxDelta || -d > maxDelta {
				maxDelta = d
				if maxDelta < 0 {
					maxDelta = -maxDelta
				}
			}
		}
		rank, next = next, rank
		if maxDelta < pageRankEpsilon {
			break
		}
	}

	values := make(map[uint32]float64, n)
	for i, id := range nodeIds {
		values[uint32(id)] = rank[i]
	}
	reg.Remove("pagerank")
	_, err := reg.Register(attribute.NewAttribute("pagerank", attribute.Node, attribute.Float).
		WithValueFunc(func(id uint32) attribute.Value { return attribute.FloatValue(values[id]) }).
		WithFlags(attribute.AutoRange, attribute.VisualiseByComponent))
	return err
}

// runEccentricity computes, for each node, the length of the longest
// shortest path to any other node reachable from it (its eccentricity),
// via an unweighted BFS per node. BFS runs are independent across source
// nodes, so they are parallelised with the shared worker pool.
func runEccentricity(ctx context.Context, reg *attribute.Registry, g *graph.MutableGraph, pool *workerpool.Pool) error {
	nodeIds := g.NodeIds()
	n := len(nodeIds)
	if n == 0 {
		return registerEmptyFloat(reg, "eccentricity")
	}
	index := make(map[ids.NodeId]int, n)
	for i, id := range nodeIds {
		index[id] = i
	}
	neighbors := make([][]int, n)
	for i, id := range nodeIds {
		seen := make(map[int]bool)
		for _, e := range g.OutEdges(id) {
			_, tgt := g.Endpoints(e)
			j := index[g.HeadOf(tgt)]
			if !seen[j] && j != i {
				seen[j] = true
				neighbors[i] = append(neighbors[i], j)
			}
		}
		for _, e := range g.InEdges(id) {
			src, _ := g.Endpoints(e)
			j := index[g.HeadOf(src)]
			if !seen[j] && j != i {
				seen[j] = true
				neighbors[i] = append(neighbors[i], j)
			}
		}
	}

	ecc := make([]int, n)
	err := pool.ForEachIndex(ctx, n, func(_ context.Context, src int) error {
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		dist[src] = 0
		queue := []int{src}
		farthest := 0
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if dist[cur] > farthest {
				farthest = dist[cur]
			}
			for _, nb := range neighbors[cur] {
				if dist[nb] == -1 {
					dist[nb] = dist[cur] + 1
					queue = append(queue, nb)
				}
			}
		}
		ecc[src] = farthest
		return nil
	})
	if err != nil {
		return err
	}

	values := make(map[uint32]int64, n)
	for i, id := range nodeIds {
		values[uint32(id)] = int64(ecc[i])
	}
	reg.Remove("eccentricity")
	_, regErr := reg.Register(attribute.NewAttribute("eccentricity", attribute.Node, attribute.Int).
		WithValueFunc(func(id uint32) attribute.Value { return attribute.IntValue(values[id]) }).
		WithFlags(attribute.AutoRange, attribute.VisualiseByComponent))
	return regErr
}

// MCL parameters, per the Open Question decision recorded in SPEC_FULL.md
// §4: values below MCLPruneThreshold are dropped from a column during
// pruning, and a column is considered to have collapsed to a single
// cluster once its largest entry exceeds 1-MCLRecoveryThreshold.
const (
	MCLPruneThreshold    = 1e-4
	MCLRecoveryThreshold = 1e-2
	mclInflation         = 2.0
	mclIterations        = 12
)

// runMCL runs a simplified Markov Cluster Algorithm over g's current
// topology (self-loops added, column-normalised, expanded by squaring,
// inflated by element-wise exponent, pruned, repeated to convergence) and
// merges each resulting cluster's nodes via g.MergeNodes.
func runMCL(g *graph.MutableGraph) error {
	nodeIds := g.NodeIds()
	n := len(nodeIds)
	if n < 2 {
		return nil
	}
	index := make(map[ids.NodeId]int, n)
	for i, id := range nodeIds {
		index[id] = i
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1 // self-loop
	}
	for _, id := range nodeIds {
		i := index[id]
		for _, e := range g.OutEdges(id) {
			_, tgt := g.Endpoints(e)
			j := index[g.HeadOf(tgt)]
			matrix[i][j] = 1
			matrix[j][i] = 1
		}
	}
	normaliseColumns(matrix)

	for iter := 0; iter < mclIterations; iter++ {
		matrix = expand(matrix)
		inflate(matrix, mclInflation)
		prune(matrix)
		normaliseColumns(matrix)
		if hasConverged(matrix) {
			break
		}
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if matrix[i][j] > MCLPruneThreshold {
				union(i, j)
			}
		}
	}

	clusters := make(map[int][]ids.NodeId)
	for i, id := range nodeIds {
		root := find(i)
		clusters[root] = append(clusters[root], id)
	}
	for _, members := range clusters {
		if len(members) > 1 {
			g.MergeNodes(members)
		}
	}
	return nil
}

func normaliseColumns(m [][]float64) {
	n := len(m)
	for j := 0; j < n; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += m[i][j]
		}
		if sum == 0 {
			continue
		}
		for i := 0; i < n; i++ {
			m[i][j] /= sum
		}
	}
}

func expand(m [][]float64) [][]float64 {
	n := len(m)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += m[i][k] * m[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func inflate(m [][]float64, power float64) {
	for i := range m {
		for j := range m[i] {
			if m[i][j] > 0 {
				m[i][j] = pow(m[i][j], power)
			}
		}
	}
}

func pow(base, exp float64) float64 {
	result := 1.0
	whole := int(exp)
	for k := 0; k < whole; k++ {
		result *= base
	}
	return result
}

func prune(m [][]float64) {
	for i := range m {
		for j := range m[i] {
			if m[i][j] < MCLPruneThreshold {
				m[i][j] = 0
			}
		}
	}
}

// hasConverged reports whether every column has collapsed to a single
// dominant entry (per MCLRecoveryThreshold).
func hasConverged(m [][]float64) bool {
	n := len(m)
	for j := 0; j < n; j++ {
		max := 0.0
		for i := 0; i < n; i++ {
			if m[i][j] > max {
				max = m[i][j]
			}
		}
		if max < 1-MCLRecoveryThreshold {
			return false
		}
	}
	return true
}

func registerEmptyFloat(reg *attribute.Registry, name string) error {
	reg.Remove(name)
	_, err := reg.Register(attribute.NewAttribute(name, attribute.Node, attribute.Float).
		WithValueFunc(func(uint32) attribute.Value { return attribute.FloatValue(0) }))
	return err
}
