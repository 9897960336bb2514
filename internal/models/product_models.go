package models

// Product is the shape the product source hands us: an identifier plus
// the raw review texts to analyze.
type Product struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Reviews []string `json:"reviews"`
}

// RankedProduct pairs a product with its analysis and the overall
// score used for ordering. When analysis failed outright, Analysis is
// nil and Error holds the reason the caller should display.
type RankedProduct struct {
	Product      Product          `json:"product"`
	Analysis     *ProductAnalysis `json:"analysis"`
	OverallScore float64          `json:"overall_score"`
	Error        string           `json:"error,omitempty"`
}
