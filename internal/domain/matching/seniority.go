package matching

import (
	"strings"
	"unicode"
)

type Seniority int

const (
	SeniorityIntern Seniority = iota
	SeniorityJunior
	SeniorityMid
	SenioritySenior
	SeniorityLead
	SeniorityPrincipal
)

var seniorityNames = []string{"intern", "junior", "mid", "senior", "lead", "principal"}

func (s Seniority) String() string {
	if s < 0 || int(s) >= len(seniorityNames) {
		return "unknown"
	}
	return seniorityNames[s]
}

var seniorityWords = map[string]Seniority{
	"intern":       SeniorityIntern,
	"internship":   SeniorityIntern,
	"trainee":      SeniorityIntern,
	"entry":        SeniorityJunior,
	"junior":       SeniorityJunior,
	"jr":           SeniorityJunior,
	"graduate":     SeniorityJunior,
	"mid":          SeniorityMid,
	"intermediate": SeniorityMid,
	"mid-level":    SeniorityMid,
	"senior":       SenioritySenior,
	"sr":           SenioritySenior,
	"lead":         SeniorityLead,
	"staff":        SeniorityLead,
	"principal":    SeniorityPrincipal,
	"head":         SeniorityPrincipal,
	"director":     SeniorityPrincipal,
	"executive":    SeniorityPrincipal,
}

// ParseSeniority returns the highest seniority keyword found in a career
// level ("Senior") or a job title ("Sr. Backend Engineer").
func ParseSeniority(text string) (Seniority, bool) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-'
	})
	best, found := Seniority(0), false
	for _, w := range words {
		lvl, ok := seniorityWords[w]
		if !ok {
			continue
		}
		if !found || lvl > best {
			best, found = lvl, true
		}
	}
	return best, found
}
