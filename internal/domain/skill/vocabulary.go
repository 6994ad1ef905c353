package skill

import "strings"

// Vocabulary resolves free-text skill names through a static alias table.
// It is immutable after construction and safe for concurrent use.
type Vocabulary struct {
	byKey   map[string]Skill
	entries []Entry
}

func NewVocabulary(entries []Entry) *Vocabulary {
	v := &Vocabulary{
		byKey:   make(map[string]Skill, len(entries)*4),
		entries: make([]Entry, 0, len(entries)),
	}

	// Canonical ids are registered first so an alias can never shadow one.
	for _, e := range entries {
		id := Key(e.CanonicalID)
		if id == "" {
			id = Key(e.Name)
		}
		if id == "" {
			continue
		}
		if _, dup := v.byKey[id]; dup {
			continue
		}
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = id
		}
		cat := e.Category
		if cat == "" || cat == CategoryOther {
			cat = CategoryTechnical
		}
		v.byKey[id] = Skill{Name: name, Category: cat, CanonicalID: id}
		e.CanonicalID = id
		e.Name = name
		e.Category = cat
		v.entries = append(v.entries, e)
	}

	for _, e := range v.entries {
		s := v.byKey[e.CanonicalID]
		for _, a := range append([]string{e.Name}, e.Aliases...) {
			k := Key(a)
			if k == "" {
				continue
			}
			if _, taken := v.byKey[k]; taken {
				continue
			}
			v.byKey[k] = s
		}
	}

	return v
}

// Normalize never fails: names missing from the vocabulary come back as
// category other with the normalized key as their identity.
func (v *Vocabulary) Normalize(raw string) Skill {
	k := Key(raw)
	if v != nil {
		if s, ok := v.byKey[k]; ok {
			return s
		}
	}
	return Skill{Name: k, Category: CategoryOther, CanonicalID: k}
}

func (v *Vocabulary) Entries() []Entry {
	if v == nil {
		return nil
	}
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.entries)
}

// Key lower-cases, trims and collapses internal whitespace.
func Key(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
