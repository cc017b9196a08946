package agents

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

// ExtractedEntities is the material/defect/environment triple pulled out of
// free text. Empty fields mean "not stated".
type ExtractedEntities struct {
	Material    string `json:"material"`
	Defect      string `json:"defect"`
	Environment string `json:"environment"`
}

const extractionSystemPrompt = `You extract entities from descriptions of structural defects.
Reply with a single JSON object and nothing else, with exactly these keys:
{"material": "...", "defect": "...", "environment": "..."}
Use an empty string for anything the text does not state.`

// extractEntities asks the model for a JSON triple and falls back to the
// keyword vocabulary when the reply does not parse. The model call is a
// one-shot exchange, separate from any agent conversation.
func extractEntities(ctx context.Context, ai openai.Client, vocab Vocabulary, text string) ExtractedEntities {
	var out ExtractedEntities

	zero := 0.0
	reply, err := ai.Chat(ctx, []openai.Message{
		{Role: "system", Content: extractionSystemPrompt},
		{Role: "user", Content: text},
	}, openai.Params{Temperature: &zero})
	if err == nil {
		if parsed, ok := parseEntityJSON(reply); ok {
			out = parsed
		}
	}

	// Heuristic fallback for whatever the model left blank.
	if out.Material == "" {
		out.Material = matchFirst(text, vocab.Materials)
	}
	if out.Defect == "" {
		out.Defect = matchFirst(text, vocab.Defects)
	}
	if out.Environment == "" {
		out.Environment = matchFirst(text, vocab.Environments)
	}
	return out
}

// parseEntityJSON tolerates code fences and leading prose around the JSON
// object models like to add.
func parseEntityJSON(reply string) (ExtractedEntities, bool) {
	var out ExtractedEntities
	raw := strings.TrimSpace(reply)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return ExtractedEntities{}, false
	}
	out.Material = strings.TrimSpace(out.Material)
	out.Defect = strings.TrimSpace(out.Defect)
	out.Environment = strings.TrimSpace(out.Environment)
	return out, out.Material != "" || out.Defect != "" || out.Environment != ""
}
