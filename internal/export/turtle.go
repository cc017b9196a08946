// Package export serializes the knowledge graph to Turtle and validates
// RDF output against a small SHACL subset.
package export

import (
	"context"
	"fmt"
	"sort"
	"strings"

	types "github.com/yungbote/ndtplanner-backend/internal/domain"
)

// GraphSource provides the raw node and relationship dumps to serialize.
type GraphSource interface {
	ExportNodes(ctx context.Context) ([]types.ExportNode, error)
	ExportRelationships(ctx context.Context) ([]types.ExportRel, error)
}

const turtleHeader = `@prefix ndt: <http://example.org/ndt#> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

`

// Turtle renders every node as a typed, labelled resource and every
// relationship as a triple between the node resources.
func Turtle(ctx context.Context, src GraphSource) (string, error) {
	nodes, err := src.ExportNodes(ctx)
	if err != nil {
		return "", fmt.Errorf("export nodes: %w", err)
	}
	rels, err := src.ExportRelationships(ctx)
	if err != nil {
		return "", fmt.Errorf("export relationships: %w", err)
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	// Distinct nodes sharing a name (same name under different labels)
	// must not collapse onto one resource; later claimants get their node
	// id appended.
	names := make(map[int64]string, len(nodes))
	taken := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		name := localName(n)
		if taken[name] {
			name = fmt.Sprintf("%s_%d", name, n.ID)
		}
		taken[name] = true
		names[n.ID] = name
	}

	var b strings.Builder
	b.WriteString(turtleHeader)
	for _, n := range nodes {
		subject := "ndt:" + names[n.ID]
		if len(n.Labels) == 0 {
			fmt.Fprintf(&b, "%s rdfs:label %s .\n", subject, quoteLiteral(n.Name))
			continue
		}
		for _, label := range n.Labels {
			fmt.Fprintf(&b, "%s a ndt:%s .\n", subject, sanitize(label))
		}
		fmt.Fprintf(&b, "%s rdfs:label %s .\n", subject, quoteLiteral(n.Name))
	}
	b.WriteString("\n")

	for _, r := range rels {
		src, okS := names[r.SourceID]
		tgt, okT := names[r.TargetID]
		if !okS || !okT {
			continue
		}
		fmt.Fprintf(&b, "ndt:%s ndt:%s ndt:%s .\n", src, sanitize(r.Type), tgt)
	}
	return b.String(), nil
}

func localName(n types.ExportNode) string {
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Sprintf("node_%d", n.ID)
	}
	return sanitize(n.Name)
}

// sanitize maps an arbitrary name onto a safe Turtle local name.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

func quoteLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
