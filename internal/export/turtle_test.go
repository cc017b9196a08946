package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	types "github.com/yungbote/ndtplanner-backend/internal/domain"
)

type fakeSource struct {
	nodes   []types.ExportNode
	rels    []types.ExportRel
	nodeErr error
}

func (f *fakeSource) ExportNodes(context.Context) ([]types.ExportNode, error) {
	return f.nodes, f.nodeErr
}

func (f *fakeSource) ExportRelationships(context.Context) ([]types.ExportRel, error) {
	return f.rels, nil
}

func TestTurtleRendersNodesAndRelationships(t *testing.T) {
	src := &fakeSource{
		nodes: []types.ExportNode{
			{ID: 1, Labels: []string{"Material"}, Name: "Concrete"},
			{ID: 2, Labels: []string{"NDTMethod"}, Name: "Ultrasonic Testing"},
		},
		rels: []types.ExportRel{
			{SourceID: 2, Type: "DETECTS", TargetID: 1},
		},
	}

	out, err := Turtle(context.Background(), src)
	if err != nil {
		t.Fatalf("Turtle: %v", err)
	}
	for _, want := range []string{
		"@prefix ndt:",
		"ndt:Concrete a ndt:Material .",
		`ndt:Concrete rdfs:label "Concrete" .`,
		"ndt:Ultrasonic_Testing a ndt:NDTMethod .",
		"ndt:Ultrasonic_Testing ndt:DETECTS ndt:Concrete .",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTurtleOutputRoundTripsThroughParser(t *testing.T) {
	src := &fakeSource{
		nodes: []types.ExportNode{
			{ID: 1, Labels: []string{"Material"}, Name: "Concrete"},
			{ID: 7, Labels: []string{"Deterioration"}, Name: `Cracking "severe"`},
		},
		rels: []types.ExportRel{{SourceID: 1, Type: "SUSCEPTIBLE_TO", TargetID: 7}},
	}
	out, err := Turtle(context.Background(), src)
	if err != nil {
		t.Fatalf("Turtle: %v", err)
	}
	triples, err := parseTurtle(out)
	if err != nil {
		t.Fatalf("parseTurtle: %v", err)
	}
	// Two type triples, two labels, one relationship.
	if len(triples) != 5 {
		t.Fatalf("triples = %d, want 5:\n%v", len(triples), triples)
	}
}

func TestTurtleDisambiguatesSharedNames(t *testing.T) {
	// A Deterioration and a PhysicalChange both named "Cracking" must stay
	// separate resources with their own types and edges.
	src := &fakeSource{
		nodes: []types.ExportNode{
			{ID: 3, Labels: []string{"Deterioration"}, Name: "Cracking"},
			{ID: 9, Labels: []string{"PhysicalChange"}, Name: "Cracking"},
			{ID: 5, Labels: []string{"NDTMethod"}, Name: "Ultrasonic Testing"},
		},
		rels: []types.ExportRel{
			{SourceID: 9, Type: "DETECTED_BY", TargetID: 5},
		},
	}
	out, err := Turtle(context.Background(), src)
	if err != nil {
		t.Fatalf("Turtle: %v", err)
	}
	for _, want := range []string{
		"ndt:Cracking a ndt:Deterioration .",
		"ndt:Cracking_9 a ndt:PhysicalChange .",
		"ndt:Cracking_9 ndt:DETECTED_BY ndt:Ultrasonic_Testing .",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ndt:Cracking ndt:DETECTED_BY") {
		t.Fatalf("edge attached to the wrong resource:\n%s", out)
	}
}

func TestTurtleSkipsDanglingRelationships(t *testing.T) {
	src := &fakeSource{
		nodes: []types.ExportNode{{ID: 1, Labels: []string{"Material"}, Name: "Steel"}},
		rels:  []types.ExportRel{{SourceID: 1, Type: "DETECTS", TargetID: 99}},
	}
	out, err := Turtle(context.Background(), src)
	if err != nil {
		t.Fatalf("Turtle: %v", err)
	}
	if strings.Contains(out, "DETECTS") {
		t.Fatalf("dangling relationship should be skipped:\n%s", out)
	}
}

func TestTurtleNodeErrorPropagates(t *testing.T) {
	wantErr := errors.New("neo4j down")
	if _, err := Turtle(context.Background(), &fakeSource{nodeErr: wantErr}); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v", err)
	}
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Ultrasonic Testing": "Ultrasonic_Testing",
		"High Temperature":   "High_Temperature",
		"a/b (c)":            "a_b__c_",
		"  ":                 "_",
	}
	for in, want := range cases {
		if got := sanitize(in); got != want {
			t.Fatalf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}
