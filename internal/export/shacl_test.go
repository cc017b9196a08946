package export

import (
	"strings"
	"testing"
)

const testShapes = `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ndt: <http://example.org/ndt#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

ndt:MethodShape a sh:NodeShape ;
    sh:targetClass ndt:NDTMethod ;
    sh:property [
        sh:path rdfs:label ;
        sh:minCount 1 ;
        sh:datatype xsd:string ;
    ] .

ndt:MaterialShape a sh:NodeShape ;
    sh:targetClass ndt:Material ;
    sh:property [
        sh:path rdfs:label ;
        sh:minCount 1 ;
    ] .
`

func TestParseShapes(t *testing.T) {
	shapes, err := ParseShapes(testShapes)
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}
	if len(shapes) != 2 {
		t.Fatalf("shapes = %d, want 2", len(shapes))
	}
	m := shapes[0]
	if m.TargetClass != "ndt:NDTMethod" {
		t.Fatalf("target class = %q", m.TargetClass)
	}
	if len(m.Properties) != 1 {
		t.Fatalf("properties = %d, want 1", len(m.Properties))
	}
	pc := m.Properties[0]
	if pc.Path != "rdfs:label" || pc.MinCount != 1 || pc.Datatype != "xsd:string" {
		t.Fatalf("constraint = %+v", pc)
	}
}

func TestValidateConformingData(t *testing.T) {
	data := `ndt:Ultrasonic_Testing a ndt:NDTMethod .
ndt:Ultrasonic_Testing rdfs:label "Ultrasonic Testing" .
ndt:Concrete a ndt:Material .
ndt:Concrete rdfs:label "Concrete" .
`
	shapes, err := ParseShapes(testShapes)
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}
	report, err := Validate(data, shapes)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.Conforms || len(report.Violations) != 0 {
		t.Fatalf("report = %+v", report)
	}
}

func TestValidateMissingLabel(t *testing.T) {
	data := `ndt:Mystery a ndt:NDTMethod .
`
	shapes, err := ParseShapes(testShapes)
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}
	report, err := Validate(data, shapes)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Conforms {
		t.Fatal("expected a violation")
	}
	if len(report.Violations) != 1 {
		t.Fatalf("violations = %+v", report.Violations)
	}
	v := report.Violations[0]
	if v.FocusNode != "ndt:Mystery" || v.Path != "rdfs:label" {
		t.Fatalf("violation = %+v", v)
	}
}

func TestValidateNonLiteralLabel(t *testing.T) {
	data := `ndt:Odd a ndt:NDTMethod .
ndt:Odd rdfs:label ndt:NotALiteral .
`
	shapes, err := ParseShapes(testShapes)
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}
	report, err := Validate(data, shapes)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Conforms {
		t.Fatal("expected a datatype violation")
	}
	if !strings.Contains(report.Violations[0].Message, "not a string literal") {
		t.Fatalf("violation = %+v", report.Violations[0])
	}
}

func TestParseShapesRejectsShapelessInput(t *testing.T) {
	if _, err := ParseShapes(`ndt:Thing rdfs:label "x" .`); err == nil {
		t.Fatal("expected an error for a document without node shapes")
	}
}
