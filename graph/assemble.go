package graph

import (
	"math"

	"github.com/coursegraph/coursegraph/requirement"
)

// Record pairs a course's parsed requirements with its catalog display title.
type Record struct {
	Requirements requirement.ParsedCourseRequirements
	Title        string
}

// Node is one distinct referenced entity across the whole catalog.
type Node struct {
	ID    string
	Title string
	Group string
	Size  float64
	Depth int
}

// Link is one prerequisite-or-corequisite relationship, deduplicated by
// (source, target).
type Link struct {
	Source string
	Target string
	Value  float64
}

// Graph is the assembled catalog-wide dependency graph.
type Graph struct {
	Nodes []Node
	Links []Link
}

// Assemble merges per-course extraction results across the catalog into a
// deduplicated node/link graph, prunes isolated nodes and computes visual
// node sizes. Inputs are assumed schema-valid: malformed trees must be
// rejected upstream by the validator.
//
// Depths are computed in record listing order, not topological order, so a
// course whose prerequisite appears later in the list reads that
// prerequisite as depth 0. This under-counting is a known limitation of the
// listing-order pass, kept intentionally.
func Assemble(records []Record) Graph {
	titles := make(map[string]string, len(records))
	for _, record := range records {
		titles[recordID(record)] = record.Title
	}

	depths := make(map[string]int, len(records))
	for _, record := range records {
		depths[recordID(record)] = 0
	}
	for _, record := range records {
		depth := 0
		if tree := record.Requirements.Prerequisite; tree != nil {
			depth = DepthOf(tree, depths)
		}
		if tree := record.Requirements.Corequisite; tree != nil {
			if d := DepthOf(tree, depths); d > depth {
				depth = d
			}
		}
		depths[recordID(record)] = depth
	}

	nodes := make(map[string]*Node)
	var order []string
	ensureNode := func(id string) {
		if _, ok := nodes[id]; ok {
			return
		}
		title, ok := titles[id]
		if !ok {
			title = id
		}
		nodes[id] = &Node{ID: id, Title: title, Group: nodeGroup(id), Depth: depths[id]}
		order = append(order, id)
	}

	links := make(map[[2]string]float64)
	var linkOrder [][2]string
	for _, record := range records {
		target := recordID(record)
		ensureNode(target)

		for _, tree := range []requirement.Node{record.Requirements.Prerequisite, record.Requirements.Corequisite} {
			if tree == nil {
				continue
			}
			for _, weighted := range ExtractWeighted(tree, 1) {
				ensureNode(weighted.Course)
				key := [2]string{weighted.Course, target}
				value, ok := links[key]
				if !ok {
					linkOrder = append(linkOrder, key)
				}
				// The same pair can recur through structurally distinct
				// requirement paths; the strongest signal wins.
				if weighted.Value > value {
					links[key] = weighted.Value
				}
			}
		}
	}

	graph := Graph{}
	for _, key := range linkOrder {
		graph.Links = append(graph.Links, Link{Source: key[0], Target: key[1], Value: links[key]})
	}

	linked := make(map[string]bool)
	outDegree := make(map[string]int)
	for _, link := range graph.Links {
		linked[link.Source] = true
		linked[link.Target] = true
		outDegree[link.Source]++
	}

	maxOutDegree := 0
	for _, id := range order {
		if linked[id] && outDegree[id] > maxOutDegree {
			maxOutDegree = outDegree[id]
		}
	}

	for _, id := range order {
		if !linked[id] {
			continue
		}
		node := *nodes[id]
		node.Size = nodeSize(outDegree[id], maxOutDegree)
		graph.Nodes = append(graph.Nodes, node)
	}

	return graph
}

// nodeSize scales a node logarithmically between 1.00 and 3.00 relative to
// the catalog-wide maximum out-degree, rounding up to the next 0.20 so hub
// nodes are never under-sized by floor rounding.
func nodeSize(outDegree, maxOutDegree int) float64 {
	if outDegree == 0 {
		return 1.0
	}
	size := 1 + 2*math.Log(float64(outDegree+1))/math.Log(float64(maxOutDegree+1))
	size = math.Min(3, math.Max(1, size))
	return math.Ceil(size*5) / 5
}

func recordID(record Record) string {
	return CourseID(record.Requirements.Department, record.Requirements.Number)
}
