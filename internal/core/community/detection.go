// Package community groups concepts that are linked to each other, directly
// or by being mentioned in the same thought.
package community

import (
	"sort"

	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/core/state"
)

type Detector interface {
	Detect(nodes []model.Node, rels []model.Relationship) ([][]model.Node, error)
}

// ComponentDetector returns connected components of two or more nodes.
type ComponentDetector struct{}

func NewComponentDetector() *ComponentDetector {
	return &ComponentDetector{}
}

func (d *ComponentDetector) Detect(nodes []model.Node, rels []model.Relationship) ([][]model.Node, error) {
	nodeMap := make(map[string]model.Node)
	adj := make(map[string][]string)

	for _, n := range nodes {
		nodeMap[n.ID] = n
	}
	for _, r := range rels {
		if _, ok := nodeMap[r.SourceID]; !ok {
			continue
		}
		if _, ok := nodeMap[r.TargetID]; !ok {
			continue
		}
		adj[r.SourceID] = append(adj[r.SourceID], r.TargetID)
		adj[r.TargetID] = append(adj[r.TargetID], r.SourceID)
	}

	visited := make(map[string]bool)
	var communities [][]model.Node
	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		var ids []string
		d.dfs(n.ID, adj, visited, &ids)
		if len(ids) < 2 {
			continue
		}
		community := make([]model.Node, 0, len(ids))
		for _, id := range ids {
			community = append(community, nodeMap[id])
		}
		communities = append(communities, community)
	}
	return communities, nil
}

func (d *ComponentDetector) dfs(u string, adj map[string][]string, visited map[string]bool, component *[]string) {
	visited[u] = true
	*component = append(*component, u)
	for _, v := range adj[u] {
		if !visited[v] {
			d.dfs(v, adj, visited, component)
		}
	}
}

// Cluster is a named group of concepts, largest first in reports.
type Cluster struct {
	Concepts []string `json:"concepts"`
}

// ConceptClusters runs d over the concepts of st. Concepts are linked by
// their own relationships and by co-occurring in a thought's mentions.
func ConceptClusters(st *state.GraphState, d Detector) ([]Cluster, error) {
	concepts := st.NodesByLabel(model.LabelConcept)
	isConcept := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		isConcept[c.ID] = true
	}

	var links []model.Relationship
	mentions := make(map[string][]string)
	for _, r := range st.Relationships() {
		switch {
		case isConcept[r.SourceID] && isConcept[r.TargetID]:
			links = append(links, r)
		case r.Type == model.RelMentions && isConcept[r.TargetID]:
			mentions[r.SourceID] = append(mentions[r.SourceID], r.TargetID)
		}
	}
	for _, ids := range mentions {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				if ids[i] != ids[j] {
					links = append(links, model.Relationship{SourceID: ids[i], TargetID: ids[j], Type: model.RelRelatedTo})
				}
			}
		}
	}

	groups, err := d.Detect(concepts, links)
	if err != nil {
		return nil, err
	}

	clusters := make([]Cluster, 0, len(groups))
	for _, g := range groups {
		names := make([]string, 0, len(g))
		for _, n := range g {
			name := n.Name()
			if name == "" {
				name = n.ID
			}
			names = append(names, name)
		}
		sort.Strings(names)
		clusters = append(clusters, Cluster{Concepts: names})
	}
	sort.Slice(clusters, func(i, j int) bool {
		if len(clusters[i].Concepts) != len(clusters[j].Concepts) {
			return len(clusters[i].Concepts) > len(clusters[j].Concepts)
		}
		return clusters[i].Concepts[0] < clusters[j].Concepts[0]
	})
	return clusters, nil
}
