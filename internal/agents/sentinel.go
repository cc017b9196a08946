package agents

import (
	"fmt"
	"strings"
)

// errorMarker prefixes degraded-mode output so downstream parsing can never
// mistake a failure for an answer.
const errorMarker = "# ERROR:"

// ErrorText renders a stage failure as marked text for inclusion in run
// output. Only the orchestration boundary should call this; internal code
// paths keep errors as errors.
func ErrorText(stage string, err error) string {
	return fmt.Sprintf("%s %s failed: %v", errorMarker, stage, err)
}

// IsErrorText reports whether s is a degraded-mode marker rather than a
// real model answer.
func IsErrorText(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), errorMarker)
}
