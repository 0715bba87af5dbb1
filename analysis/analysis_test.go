package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ruscigno/argus/model"
)

const reportJSON = `{
	"executiveSummary": "Crowded market.",
	"products": [{"asin": "B0AAAA1111", "title": "Echo Buds", "brand": "Amazon", "price": 49.99, "rating": 4.3, "reviewCount": 1200, "pros": ["cheap"], "cons": ["mids"]}],
	"priceComparison": [{"name": "Echo Buds", "price": 49.99, "asin": "B0AAAA1111"}],
	"ratingComparison": [{"name": "Echo Buds", "rating": 4.3, "reviewCount": 1200, "asin": "B0AAAA1111"}],
	"sentimentBreakdown": {"positiveThemes": [{"theme": "battery", "count": 14}], "negativeThemes": [{"theme": "fit", "count": 6}]},
	"recommendations": {
		"bestOverall": {"asin": "B0AAAA1111", "title": "Echo Buds", "reason": "Best value."},
		"bestBudget": {"asin": "B0AAAA1111", "title": "Echo Buds", "reason": "Cheapest."},
		"bestPremium": {"asin": "B0AAAA1111", "title": "Echo Buds", "reason": "Only option."}
	},
	"comparisonMatrix": [{"feature": "Battery Life", "B0AAAA1111": "10h"}]
}`

func TestParseReportPlainJSON(t *testing.T) {
	report, err := ParseReport(reportJSON)
	require.NoError(t, err)
	assert.Equal(t, "Crowded market.", report.ExecutiveSummary)
	require.Len(t, report.Products, 1)
	assert.Equal(t, "B0AAAA1111", report.Products[0].ASIN)
	require.Len(t, report.ComparisonMatrix, 1)
	assert.Equal(t, "Battery Life", report.ComparisonMatrix[0].Feature)
	assert.Equal(t, "10h", report.ComparisonMatrix[0].Values["B0AAAA1111"])
}

func TestParseReportStripsFence(t *testing.T) {
	fenced := "```json\n" + reportJSON + "\n```"
	report, err := ParseReport(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Crowded market.", report.ExecutiveSummary)
}

func TestParseReportBraceWindow(t *testing.T) {
	chatty := "Here is your report:\n" + reportJSON + "\nHope this helps!"
	report, err := ParseReport(chatty)
	require.NoError(t, err)
	assert.Equal(t, "Crowded market.", report.ExecutiveSummary)
}

func TestParseReportRejectsNonJSON(t *testing.T) {
	_, err := ParseReport("I could not analyze these products.")
	require.Error(t, err)
}

func TestBuildUserPromptTruncatesReviews(t *testing.T) {
	reviews := make([]model.Review, 15)
	for i := range reviews {
		reviews[i] = model.Review{Title: "t", Body: strings.Repeat("x", 500), Rating: 5}
	}
	products := []model.ProductWithReviews{{
		Product: model.Product{ASIN: "B0AAAA1111", Title: "Echo Buds", Features: []string{}},
		Reviews: reviews,
	}}

	prompt := BuildUserPrompt(products, "wireless earbuds")

	// 10 reviews max, 300 chars of body each.
	assert.Equal(t, 10, strings.Count(prompt, `"verified"`))
	assert.NotContains(t, prompt, strings.Repeat("x", 301))
	assert.Contains(t, prompt, strings.Repeat("x", 300))
	assert.Contains(t, prompt, `"wireless earbuds"`)
	assert.Contains(t, prompt, "comparisonMatrix")
}

func TestSanitizeReportDropsUnknownASINs(t *testing.T) {
	report, err := ParseReport(reportJSON)
	require.NoError(t, err)

	report.PriceComparison = append(report.PriceComparison, model.PricePoint{Name: "Ghost", Price: 9.99, ASIN: "B0GHOST999"})
	report.RatingComparison = append(report.RatingComparison, model.RatingPoint{Name: "Ghost", Rating: 5, ASIN: "B0GHOST999"})
	report.Recommendations.BestPremium = model.Recommendation{ASIN: "B0GHOST999", Title: "Ghost", Reason: "n/a"}
	report.ComparisonMatrix[0].Values["B0GHOST999"] = "12h"

	products := []model.ProductWithReviews{{Product: model.Product{ASIN: "B0AAAA1111"}}}
	SanitizeReport(report, products)

	require.Len(t, report.PriceComparison, 1)
	assert.Equal(t, "B0AAAA1111", report.PriceComparison[0].ASIN)
	require.Len(t, report.RatingComparison, 1)
	assert.Empty(t, report.Recommendations.BestPremium.ASIN)
	assert.Equal(t, "B0AAAA1111", report.Recommendations.BestOverall.ASIN)
	_, ghost := report.ComparisonMatrix[0].Values["B0GHOST999"]
	assert.False(t, ghost)
	assert.Equal(t, "10h", report.ComparisonMatrix[0].Values["B0AAAA1111"])
}
