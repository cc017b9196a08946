package agents

import "strings"

// Headers of the specially delimited lines the tool selector expects in the
// model's final justification.
const (
	MethodListHeader = "Recommended Method Names:"
	SensorListHeader = "Recommended Sensor Names:"
)

// ParseNameList extracts the bracketed name list from the first line that
// starts with the given header and ends with a [...] value. Model output is
// untrusted input: a missing or malformed line yields an empty list, never
// an error.
//
// Grammar per line:
//
//	<header> "[" name ("," name)* "]"
//	<header> "[]"
func ParseNameList(text, header string) []string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, header) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, header))
		if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") {
			continue
		}
		inner := strings.TrimSpace(rest[1 : len(rest)-1])
		if inner == "" {
			return []string{}
		}
		parts := strings.Split(inner, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			p = strings.Trim(p, `"'`)
			if p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return []string{}
}
