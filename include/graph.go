package include

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	graphlib "github.com/dominikbraun/graph"
)

// BuildGraph projects the resolution state into a directed graph of canonical
// paths. Cyclic include chains are representable; the graph places no
// acyclicity constraint.
func BuildGraph(state *State) (graphlib.Graph[string, string], error) {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for _, visited := range state.Ordered() {
		if err := g.AddVertex(visited.Path); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add vertex %s: %w", visited.Path, err)
		}
	}

	for _, edge := range state.Edges() {
		err := g.AddEdge(edge.From, edge.To)
		if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
			return nil, fmt.Errorf("failed to add edge %s -> %s: %w", edge.From, edge.To, err)
		}
	}

	return g, nil
}

// ToDOT converts the resolution state to Graphviz DOT format. Node labels
// show the file's base name and its recorded depth.
func ToDOT(state *State) (string, error) {
	g, err := BuildGraph(state)
	if err != nil {
		return "", err
	}
	order, err := g.Order()
	if err != nil {
		return "", fmt.Errorf("failed to count vertices: %w", err)
	}
	size, err := g.Size()
	if err != nil {
		return "", fmt.Errorf("failed to count edges: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("digraph includes {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")
	sb.WriteString(fmt.Sprintf("  label=\"%d files, %d includes\";\n", order, size))
	sb.WriteString("  labelloc=t;\n")
	sb.WriteString("\n")

	for _, visited := range state.Ordered() {
		sb.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\\ndepth %d\"];\n",
			visited.Path, filepath.Base(visited.Path), visited.Depth))
	}
	sb.WriteString("\n")

	for _, edge := range state.Edges() {
		sb.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\";\n", edge.From, edge.To))
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

type jsonGraphOutput struct {
	Files []jsonGraphFile `json:"files"`
	Edges []jsonGraphEdge `json:"edges"`
}

type jsonGraphFile struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

type jsonGraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ToJSON converts the resolution state to a JSON document with files in
// emission order (deepest first) and edges in observation order.
func ToJSON(state *State) (string, error) {
	output := jsonGraphOutput{
		Files: make([]jsonGraphFile, 0, state.Len()),
		Edges: make([]jsonGraphEdge, 0, len(state.Edges())),
	}

	for _, visited := range state.Ordered() {
		output.Files = append(output.Files, jsonGraphFile{
			Path:  visited.Path,
			Name:  filepath.Base(visited.Path),
			Depth: visited.Depth,
		})
	}
	for _, edge := range state.Edges() {
		output.Edges = append(output.Edges, jsonGraphEdge{From: edge.From, To: edge.To})
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal graph: %w", err)
	}
	return string(data), nil
}
