package export

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape is one sh:NodeShape restricted to the constraint subset this
// validator understands: a target class plus minCount/datatype property
// constraints.
type Shape struct {
	Name        string
	TargetClass string
	Properties  []PropertyConstraint
}

type PropertyConstraint struct {
	Path     string
	MinCount int
	Datatype string
}

// Violation is one failed constraint check.
type Violation struct {
	FocusNode string `json:"focus_node"`
	Path      string `json:"path"`
	Message   string `json:"message"`
}

// Report is the validation outcome over one data graph.
type Report struct {
	Conforms   bool        `json:"conforms"`
	Violations []Violation `json:"violations,omitempty"`
}

// ParseShapes extracts the supported shapes from a SHACL Turtle document.
// Constraint kinds outside the subset are ignored rather than rejected so
// richer shapes files still validate what they can.
func ParseShapes(text string) ([]Shape, error) {
	triples, err := parseTurtle(text)
	if err != nil {
		return nil, fmt.Errorf("parse shapes: %w", err)
	}

	byIndex := map[string][]Triple{}
	var order []string
	for _, t := range triples {
		if _, seen := byIndex[t.Subject]; !seen {
			order = append(order, t.Subject)
		}
		byIndex[t.Subject] = append(byIndex[t.Subject], t)
	}

	var shapes []Shape
	for _, subject := range order {
		if !hasTriple(byIndex[subject], "rdf:type", "sh:NodeShape") {
			continue
		}
		shape := Shape{Name: subject}
		for _, t := range byIndex[subject] {
			switch t.Predicate {
			case "sh:targetClass":
				shape.TargetClass = t.Object
			case "sh:property":
				if pc, ok := parseProperty(byIndex[t.Object]); ok {
					shape.Properties = append(shape.Properties, pc)
				}
			}
		}
		if shape.TargetClass != "" {
			shapes = append(shapes, shape)
		}
	}
	if len(shapes) == 0 {
		return nil, fmt.Errorf("no usable node shapes found")
	}
	return shapes, nil
}

func parseProperty(triples []Triple) (PropertyConstraint, bool) {
	var pc PropertyConstraint
	for _, t := range triples {
		switch t.Predicate {
		case "sh:path":
			pc.Path = t.Object
		case "sh:minCount":
			n, err := strconv.Atoi(strings.Trim(t.Object, `"`))
			if err == nil {
				pc.MinCount = n
			}
		case "sh:datatype":
			pc.Datatype = t.Object
		}
	}
	return pc, pc.Path != ""
}

func hasTriple(triples []Triple, pred, obj string) bool {
	for _, t := range triples {
		if t.Predicate == pred && t.Object == obj {
			return true
		}
	}
	return false
}

// Validate checks a Turtle data document against the shapes and reports
// every violation rather than stopping at the first.
func Validate(data string, shapes []Shape) (*Report, error) {
	triples, err := parseTurtle(data)
	if err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}

	bySubject := map[string][]Triple{}
	for _, t := range triples {
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}

	report := &Report{Conforms: true}
	for _, shape := range shapes {
		for _, t := range triples {
			if t.Predicate != "rdf:type" || t.Object != shape.TargetClass {
				continue
			}
			focus := t.Subject
			for _, pc := range shape.Properties {
				checkProperty(report, focus, bySubject[focus], pc)
			}
		}
	}
	report.Conforms = len(report.Violations) == 0
	return report, nil
}

func checkProperty(report *Report, focus string, triples []Triple, pc PropertyConstraint) {
	count := 0
	for _, t := range triples {
		if t.Predicate != pc.Path {
			continue
		}
		count++
		if pc.Datatype == "xsd:string" && !isLiteral(t.Object) {
			report.Violations = append(report.Violations, Violation{
				FocusNode: focus,
				Path:      pc.Path,
				Message:   fmt.Sprintf("value %s is not a string literal", t.Object),
			})
		}
	}
	if count < pc.MinCount {
		report.Violations = append(report.Violations, Violation{
			FocusNode: focus,
			Path:      pc.Path,
			Message:   fmt.Sprintf("needs at least %d value(s) for %s, found %d", pc.MinCount, pc.Path, count),
		})
	}
}
