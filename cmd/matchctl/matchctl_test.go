package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillmatch/internal/domain/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		matchInput, matchOutput, matchStrategy, matchMaxResults = "-", "", "", -1
	})

	err := rootCmd.Execute()
	return out.String(), err
}

const request = `{
	"strategy": "hybrid",
	"user_profile": {"skills": [{"skill": "golang", "category": "language", "confidence": 0.9, "years_experience": 4}]},
	"job_postings": [
		{"id": "rust", "requirements": [{"skill": "rust", "importance": 9}]},
		{"id": "go", "requirements": [{"skill": "go", "importance": 9, "years_required": 2}]}
	]
}`

func TestMatch_FromStdin(t *testing.T) {
	out, err := execute(t, request, "match", "--strategy", "rule_based")
	require.NoError(t, err)

	var results []matching.MatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "go", results[0].JobID)
	assert.Equal(t, matching.StrategyRuleBased, results[0].Strategy)
	assert.Equal(t, []string{"Rust"}, results[1].Gaps)
}

func TestMatch_FileInAndOut(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "req.json")
	outPath := filepath.Join(dir, "res.json")
	require.NoError(t, os.WriteFile(in, []byte(request), 0o644))

	_, err := execute(t, "", "match", "--in", in, "--out", outPath, "--max-results", "1")
	require.NoError(t, err)

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var results []matching.MatchResult
	require.NoError(t, json.Unmarshal(b, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "go", results[0].JobID)
	assert.False(t, results[0].SemanticActive)
}

func TestMatch_RejectsInvalidRequest(t *testing.T) {
	_, err := execute(t, `{"job_postings":[{"id":""}]}`, "match")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job_postings[0].id: required")

	_, err = execute(t, `{`, "match")
	assert.ErrorContains(t, err, "parse request")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "matchctl version: unknown\n", out)
}
