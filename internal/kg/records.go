package kg

import "github.com/neo4j/neo4j-go-driver/v5/neo4j"

// stringVal pulls a string column out of a record, tolerating nulls from
// OPTIONAL MATCH rows.
func stringVal(rec *neo4j.Record, key string) string {
	if rec == nil {
		return ""
	}
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func int64Val(rec *neo4j.Record, key string) int64 {
	if rec == nil {
		return 0
	}
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

// stringColumn collects one named string column across all records,
// dropping nulls.
func stringColumn(records []*neo4j.Record, key string) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		if s := stringVal(rec, key); s != "" {
			out = append(out, s)
		}
	}
	return out
}
