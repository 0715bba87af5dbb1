package model

// AnalysisReport is the structured output synthesized by the LLM. The
// field layout mirrors the JSON schema fixed in the analysis prompt.
type AnalysisReport struct {
	ExecutiveSummary   string           `json:"executiveSummary"`
	Products           []ProductSummary `json:"products"`
	PriceComparison    []PricePoint     `json:"priceComparison"`
	RatingComparison   []RatingPoint    `json:"ratingComparison"`
	SentimentBreakdown SentimentData    `json:"sentimentBreakdown"`
	Recommendations    Recommendations  `json:"recommendations"`
	ComparisonMatrix   []ComparisonRow  `json:"comparisonMatrix"`
}

// ProductSummary is the per-product section of the report.
type ProductSummary struct {
	ASIN        string   `json:"asin"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Price       *float64 `json:"price"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
}

// PricePoint is one bar of the price comparison chart.
type PricePoint struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	ASIN  string  `json:"asin"`
}

// RatingPoint is one bar of the rating comparison chart.
type RatingPoint struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	ASIN        string  `json:"asin"`
}

// SentimentData aggregates recurring review themes.
type SentimentData struct {
	PositiveThemes []ThemeCount `json:"positiveThemes"`
	NegativeThemes []ThemeCount `json:"negativeThemes"`
}

// ThemeCount is a named theme with its occurrence count.
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// Recommendations names the three picks of the report.
type Recommendations struct {
	BestOverall Recommendation `json:"bestOverall"`
	BestBudget  Recommendation `json:"bestBudget"`
	BestPremium Recommendation `json:"bestPremium"`
}

// Recommendation references one product by ASIN with a short reason.
type Recommendation struct {
	ASIN   string `json:"asin"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// ComparisonRow is one row of the feature comparison matrix. Values is
// keyed by ASIN; the key set must be a subset of the scraped products.
type ComparisonRow struct {
	Feature string            `json:"feature"`
	Values  map[string]string `json:"-"`
}
