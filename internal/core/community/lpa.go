package community

import (
	"sort"

	"github.com/agenthands/kgraph/internal/core/model"
)

// LabelPropagationDetector finds communities with label propagation. Ties
// go to the lexicographically largest label so results are deterministic.
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(nodes []model.Node, rels []model.Relationship) ([][]model.Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	// parallel relationships count as a stronger link
	adj := make(map[string]map[string]int)
	nodeMap := make(map[string]model.Node)
	for _, n := range nodes {
		nodeMap[n.ID] = n
		adj[n.ID] = make(map[string]int)
	}
	for _, r := range rels {
		if _, ok := nodeMap[r.SourceID]; !ok {
			continue
		}
		if _, ok := nodeMap[r.TargetID]; !ok {
			continue
		}
		if r.SourceID == r.TargetID {
			continue
		}
		adj[r.SourceID][r.TargetID]++
		adj[r.TargetID][r.SourceID]++
	}

	labels := make(map[string]string, len(nodes))
	for _, n := range nodes {
		labels[n.ID] = n.ID
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0
		for _, n := range nodes {
			neighbors := adj[n.ID]
			if len(neighbors) == 0 {
				continue
			}

			counts := make(map[string]int)
			best := 0
			for v, weight := range neighbors {
				counts[labels[v]] += weight
				if counts[labels[v]] > best {
					best = counts[labels[v]]
				}
			}
			var candidates []string
			for label, count := range counts {
				if count == best {
					candidates = append(candidates, label)
				}
			}
			sort.Strings(candidates)
			label := candidates[len(candidates)-1]

			if labels[n.ID] != label {
				labels[n.ID] = label
				changed++
			}
		}
		if changed == 0 {
			break
		}
	}

	clusters := make(map[string][]model.Node)
	var order []string
	for _, n := range nodes {
		label := labels[n.ID]
		if _, ok := clusters[label]; !ok {
			order = append(order, label)
		}
		clusters[label] = append(clusters[label], n)
	}

	var communities [][]model.Node
	for _, label := range order {
		if len(clusters[label]) >= 2 {
			communities = append(communities, clusters[label])
		}
	}
	return communities, nil
}
