package models

// RankingRequest is the payload consumed from the ranking-requests
// topic. QueryAspects and UserAspects are merged case-insensitively
// before analysis.
type RankingRequest struct {
	RequestID    string    `json:"request_id"`
	Products     []Product `json:"products"`
	QueryAspects []string  `json:"query_aspects"`
	UserAspects  []string  `json:"user_aspects"`
}

// RankingResult is published to the ranking-results topic once every
// product in the request has been analyzed and sorted.
type RankingResult struct {
	RequestID string          `json:"request_id"`
	Ranked    []RankedProduct `json:"ranked"`
}
