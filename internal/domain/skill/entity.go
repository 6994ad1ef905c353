package skill

import "strings"

type Category string

const (
	CategoryTechnical     Category = "technical"
	CategorySoft          Category = "soft"
	CategoryLanguage      Category = "language"
	CategoryCertification Category = "certification"
	CategoryTool          Category = "tool"
	CategoryFramework     Category = "framework"
	CategoryOther         Category = "other"
)

func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryTechnical:
		return CategoryTechnical
	case CategorySoft:
		return CategorySoft
	case CategoryLanguage:
		return CategoryLanguage
	case CategoryCertification:
		return CategoryCertification
	case CategoryTool:
		return CategoryTool
	case CategoryFramework:
		return CategoryFramework
	default:
		return CategoryOther
	}
}

// Skill is a vocabulary-resolved skill. CanonicalID is the key every alias
// of the skill resolves to.
type Skill struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	CanonicalID string   `json:"canonical_id"`
}

func (s Skill) Known() bool {
	return s.Category != CategoryOther
}

// Entry is one row of the vocabulary: a display name, its category and the
// aliases that should resolve to it.
type Entry struct {
	CanonicalID string
	Name        string
	Category    Category
	Aliases     []string
}
