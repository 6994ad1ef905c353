package matching

import (
	"context"
	"strings"
)

// EmbeddingProvider turns texts into vectors in one batched call. The i-th
// vector must correspond to the i-th text.
type EmbeddingProvider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type EmbeddingProviderFunc func(ctx context.Context, texts []string) ([][]float32, error)

func (f EmbeddingProviderFunc) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return f(ctx, texts)
}

func ProfileText(p UserProfile) string {
	var b strings.Builder
	if s := strings.TrimSpace(p.Summary); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}
	if lvl := strings.TrimSpace(p.CareerLevel); lvl != "" {
		b.WriteString("Career level: ")
		b.WriteString(lvl)
		b.WriteString("\n")
	}
	if len(p.Skills) > 0 {
		names := make([]string, 0, len(p.Skills))
		for _, s := range p.Skills {
			names = append(names, s.Skill.Name)
		}
		b.WriteString("Skills: ")
		b.WriteString(strings.Join(names, ", "))
	}
	return strings.TrimSpace(b.String())
}

func JobText(j JobPosting) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(j.Title))
	if c := strings.TrimSpace(j.Company); c != "" {
		b.WriteString(" at ")
		b.WriteString(c)
	}
	b.WriteString("\n")
	if d := strings.TrimSpace(j.Description); d != "" {
		b.WriteString(d)
		b.WriteString("\n")
	}
	if len(j.Requirements) > 0 {
		names := make([]string, 0, len(j.Requirements))
		for _, r := range j.Requirements {
			names = append(names, r.Skill.Name)
		}
		b.WriteString("Requirements: ")
		b.WriteString(strings.Join(names, ", "))
	}
	return strings.TrimSpace(b.String())
}
