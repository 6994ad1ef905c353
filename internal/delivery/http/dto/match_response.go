package dto

import "skillmatch/internal/domain/matching"

type MatchResponse struct {
	Results []matching.MatchResult `json:"results"`
	Cached  bool                   `json:"cached"`
}

func NewMatchResponse(results []matching.MatchResult, cached bool) MatchResponse {
	if results == nil {
		results = []matching.MatchResult{}
	}
	return MatchResponse{Results: results, Cached: cached}
}
