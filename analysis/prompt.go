package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/Ruscigno/argus/model"
)

const (
	maxReviewsPerProduct = 10
	maxReviewBodyChars   = 300
)

const systemPrompt = `You are Argus, an expert Amazon product research analyst.
Analyze the provided product data and reviews to generate a comprehensive research report.
You MUST respond with valid JSON matching the exact schema specified. No markdown, no explanation—just JSON.`

// promptProduct is the bounded view of a product sent to the model.
type promptProduct struct {
	ASIN        string         `json:"asin"`
	Title       string         `json:"title"`
	Brand       string         `json:"brand"`
	Price       *float64       `json:"price"`
	Rating      *float64       `json:"rating"`
	ReviewCount int            `json:"reviewCount"`
	Features    []string       `json:"features"`
	Reviews     []promptReview `json:"reviews"`
}

type promptReview struct {
	Rating   float64 `json:"rating"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	Verified bool    `json:"verified"`
}

// BuildUserPrompt renders the product batch into the analysis prompt.
// Review lists and bodies are truncated to bound the request size.
func BuildUserPrompt(products []model.ProductWithReviews, query string) string {
	summaries := make([]promptProduct, 0, len(products))
	for _, p := range products {
		reviews := p.Reviews
		if len(reviews) > maxReviewsPerProduct {
			reviews = reviews[:maxReviewsPerProduct]
		}
		promptReviews := make([]promptReview, 0, len(reviews))
		for _, r := range reviews {
			body := r.Body
			if len(body) > maxReviewBodyChars {
				body = body[:maxReviewBodyChars]
			}
			promptReviews = append(promptReviews, promptReview{
				Rating:   r.Rating,
				Title:    r.Title,
				Body:     body,
				Verified: r.VerifiedPurchase,
			})
		}
		summaries = append(summaries, promptProduct{
			ASIN:        p.ASIN,
			Title:       p.Title,
			Brand:       p.Brand,
			Price:       p.Price,
			Rating:      p.Rating,
			ReviewCount: p.ReviewCount,
			Features:    p.Features,
			Reviews:     promptReviews,
		})
	}

	payload, _ := json.MarshalIndent(summaries, "", "  ")

	return fmt.Sprintf(`Analyze these Amazon products for the search query: %q

Product Data:
%s

Return a JSON object with this exact structure:
{
  "executiveSummary": "2-3 sentence overview of the market landscape for this product category",
  "products": [
    {
      "asin": "string",
      "title": "short product name (max 40 chars)",
      "brand": "string",
      "price": number or null,
      "rating": number or null,
      "reviewCount": number,
      "pros": ["up to 3 strengths"],
      "cons": ["up to 3 weaknesses"]
    }
  ],
  "priceComparison": [
    { "name": "short label (max 20 chars)", "price": number, "asin": "string" }
  ],
  "ratingComparison": [
    { "name": "short label", "rating": number, "reviewCount": number, "asin": "string" }
  ],
  "sentimentBreakdown": {
    "positiveThemes": [{ "theme": "string", "count": number }],
    "negativeThemes": [{ "theme": "string", "count": number }]
  },
  "recommendations": {
    "bestOverall": { "asin": "string", "title": "string", "reason": "1 sentence" },
    "bestBudget": { "asin": "string", "title": "string", "reason": "1 sentence" },
    "bestPremium": { "asin": "string", "title": "string", "reason": "1 sentence" }
  },
  "comparisonMatrix": [
    { "feature": "string", "ASIN1": "value", "ASIN2": "value" }
  ]
}

Important:
- Include only products that have price data in priceComparison
- For comparisonMatrix, use actual ASINs as keys and include 4-6 comparison features
- For sentimentBreakdown, identify 4-6 themes each from across ALL reviews
- Keep product names short for chart labels`, query, payload)
}
