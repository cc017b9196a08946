package agents

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

// Vocabulary is the keyword fallback for entity extraction when the model
// does not return parseable JSON. It is deliberately external configuration
// so deployments can extend it without a rebuild.
type Vocabulary struct {
	Materials    []string `yaml:"materials"`
	Defects      []string `yaml:"defects"`
	Environments []string `yaml:"environments"`
}

// DefaultVocabulary matches the seeded reference dataset.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Materials:    []string{"Concrete", "Steel", "Wood|wooden|timber"},
		Defects:      []string{"Cracking|crack|cracks", "Corrosion|rust|corroded", "Delamination|delaminated"},
		Environments: []string{"Humid|humidity|moist|damp", "Dry", "Submerged|underwater", "High Temperature|hot"},
	}
}

// LoadVocabulary reads the YAML vocabulary at path, falling back to the
// compiled-in default (with a warning) when the file is missing or broken.
func LoadVocabulary(path string, log *logger.Logger) Vocabulary {
	if strings.TrimSpace(path) == "" {
		return DefaultVocabulary()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Extraction vocabulary not readable; using defaults", "path", path, "error", err)
		return DefaultVocabulary()
	}
	var v Vocabulary
	if err := yaml.Unmarshal(raw, &v); err != nil {
		log.Warn("Extraction vocabulary malformed; using defaults", "path", path, "error", err)
		return DefaultVocabulary()
	}
	if len(v.Materials) == 0 && len(v.Defects) == 0 && len(v.Environments) == 0 {
		log.Warn("Extraction vocabulary empty; using defaults", "path", path)
		return DefaultVocabulary()
	}
	return v
}

// matchFirst returns the first option whose name appears in the text,
// case-insensitively. Synonyms are spelled as "Canonical|syn1|syn2".
func matchFirst(text string, options []string) string {
	lower := strings.ToLower(text)
	for _, opt := range options {
		parts := strings.Split(opt, "|")
		canonical := strings.TrimSpace(parts[0])
		for _, form := range parts {
			form = strings.ToLower(strings.TrimSpace(form))
			if form != "" && strings.Contains(lower, form) {
				return canonical
			}
		}
	}
	return ""
}
