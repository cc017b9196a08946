package kg

import (
	"reflect"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func record(keys []string, values []any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

func TestStringValToleratesNulls(t *testing.T) {
	rec := record([]string{"name", "missing"}, []any{"Concrete", nil})
	if got := stringVal(rec, "name"); got != "Concrete" {
		t.Fatalf("got %q", got)
	}
	if got := stringVal(rec, "missing"); got != "" {
		t.Fatalf("null column should be empty, got %q", got)
	}
	if got := stringVal(rec, "absent"); got != "" {
		t.Fatalf("absent column should be empty, got %q", got)
	}
	if got := stringVal(nil, "name"); got != "" {
		t.Fatalf("nil record should be empty, got %q", got)
	}
}

func TestInt64Val(t *testing.T) {
	rec := record([]string{"a", "b", "c"}, []any{int64(7), 3, nil})
	if got := int64Val(rec, "a"); got != 7 {
		t.Fatalf("got %d", got)
	}
	if got := int64Val(rec, "b"); got != 3 {
		t.Fatalf("got %d", got)
	}
	if got := int64Val(rec, "c"); got != 0 {
		t.Fatalf("got %d", got)
	}
}

func TestStringColumnDropsNulls(t *testing.T) {
	records := []*neo4j.Record{
		record([]string{"method"}, []any{"Ultrasonic Testing"}),
		record([]string{"method"}, []any{nil}),
		record([]string{"method"}, []any{"GPR"}),
	}
	got := stringColumn(records, "method")
	if want := []string{"Ultrasonic Testing", "GPR"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
