package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"skillmatch/internal/config"
	"skillmatch/internal/delivery/http/dto"
	"skillmatch/internal/domain/matching"
	"skillmatch/internal/embedding"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	matchInput      string
	matchOutput     string
	matchStrategy   string
	matchMaxResults int
	matchTimeout    time.Duration
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a profile against postings from a JSON request file",
	Long: "Reads a request shaped like the POST /api/v1/jobs/match body and prints the ranked results as JSON. " +
		"The semantic criterion is used only when GEMINI_API_KEY is set.",
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchInput, "in", "i", "-", "request file, - for stdin")
	matchCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "write results here instead of stdout")
	matchCmd.Flags().StringVar(&matchStrategy, "strategy", "", "override the request strategy (rule_based, semantic, hybrid)")
	matchCmd.Flags().IntVar(&matchMaxResults, "max-results", -1, "override the request max_results")
	matchCmd.Flags().DurationVar(&matchTimeout, "provider-timeout", 0, "embedding call timeout")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	raw, err := readInput(cmd, matchInput)
	if err != nil {
		return err
	}

	var req dto.MatchRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	if matchStrategy != "" {
		req.Strategy = matchStrategy
	}
	if matchMaxResults >= 0 {
		req.MaxResults = matchMaxResults
	}
	if fields := dto.Validate(req); fields != nil {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, f.Field+": "+f.Rule)
		}
		return fmt.Errorf("invalid request: %s", strings.Join(parts, ", "))
	}

	in, err := req.ToDomain()
	if err != nil {
		return err
	}

	engine, err := offlineEngine(cmd, log)
	if err != nil {
		return err
	}
	results, err := engine.Match(cmd.Context(), in)
	if err != nil {
		return err
	}
	if results == nil {
		results = []matching.MatchResult{}
	}

	out := cmd.OutOrStdout()
	if matchOutput != "" {
		f, err := os.Create(matchOutput)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func offlineEngine(cmd *cobra.Command, log *zap.Logger) (*matching.Engine, error) {
	weights, err := config.LoadWeights(viper.GetString("weights"))
	if err != nil {
		return nil, err
	}

	opts := []matching.Option{
		matching.WithWeights(weights),
		matching.WithProviderTimeout(matchTimeout),
		matching.WithLogger(log),
	}
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		g, err := embedding.NewGemini(cmd.Context(), key, os.Getenv("GEMINI_EMBEDDING_MODEL"), log)
		if err != nil {
			return nil, err
		}
		opts = append(opts, matching.WithEmbeddingProvider(g))
	}
	return matching.NewEngine(opts...), nil
}
