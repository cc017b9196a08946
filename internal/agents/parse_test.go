package agents

import (
	"reflect"
	"testing"
)

func TestParseNameListBasic(t *testing.T) {
	text := "Some justification prose.\n" +
		"Recommended Method Names: [Ultrasonic Testing, Radiographic Testing]\n" +
		"Recommended Sensor Names: [Piezoelectric Transducer]\n"

	methods := ParseNameList(text, MethodListHeader)
	if want := []string{"Ultrasonic Testing", "Radiographic Testing"}; !reflect.DeepEqual(methods, want) {
		t.Fatalf("methods = %v, want %v", methods, want)
	}
	sensors := ParseNameList(text, SensorListHeader)
	if want := []string{"Piezoelectric Transducer"}; !reflect.DeepEqual(sensors, want) {
		t.Fatalf("sensors = %v, want %v", sensors, want)
	}
}

func TestParseNameListEmptyBrackets(t *testing.T) {
	got := ParseNameList("Recommended Method Names: []", MethodListHeader)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v", got)
	}
}

func TestParseNameListMissingHeader(t *testing.T) {
	got := ParseNameList("no delimited lines here at all", MethodListHeader)
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestParseNameListQuotedAndPadded(t *testing.T) {
	text := `  Recommended Method Names:  [ "Visual Inspection" , 'Infrared Thermography' ]  `
	got := ParseNameList(text, MethodListHeader)
	if want := []string{"Visual Inspection", "Infrared Thermography"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseNameListIgnoresMalformedLine(t *testing.T) {
	// A header line without brackets does not match; a later well-formed
	// line does.
	text := "Recommended Method Names: none really\n" +
		"Recommended Method Names: [Ultrasonic Testing]\n"
	got := ParseNameList(text, MethodListHeader)
	if want := []string{"Ultrasonic Testing"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseNameListFirstMatchWins(t *testing.T) {
	text := "Recommended Method Names: [A]\nRecommended Method Names: [B]\n"
	got := ParseNameList(text, MethodListHeader)
	if want := []string{"A"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
