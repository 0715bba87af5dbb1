package analysis

import (
	"go.uber.org/zap"

	"github.com/Ruscigno/argus/model"
)

// SanitizeReport removes cross-references to ASINs that are not part of
// the scraped product set: chart entries, recommendation slots and
// comparison matrix columns. The model is not trusted on identifiers,
// so a fabricated ASIN must never reach a renderer. Everything else in
// the report passes through untouched.
func SanitizeReport(report *model.AnalysisReport, products []model.ProductWithReviews) {
	known := make(map[string]bool, len(products))
	for _, p := range products {
		if p.ASIN != "" {
			known[p.ASIN] = true
		}
	}

	prices := report.PriceComparison[:0]
	for _, point := range report.PriceComparison {
		if known[point.ASIN] {
			prices = append(prices, point)
		} else {
			zap.L().Warn("dropping price point with unknown asin", zap.String("asin", point.ASIN))
		}
	}
	report.PriceComparison = prices

	ratings := report.RatingComparison[:0]
	for _, point := range report.RatingComparison {
		if known[point.ASIN] {
			ratings = append(ratings, point)
		} else {
			zap.L().Warn("dropping rating point with unknown asin", zap.String("asin", point.ASIN))
		}
	}
	report.RatingComparison = ratings

	sanitizeRecommendation(&report.Recommendations.BestOverall, known)
	sanitizeRecommendation(&report.Recommendations.BestBudget, known)
	sanitizeRecommendation(&report.Recommendations.BestPremium, known)

	for i := range report.ComparisonMatrix {
		for asin := range report.ComparisonMatrix[i].Values {
			if !known[asin] {
				zap.L().Warn("dropping matrix column with unknown asin", zap.String("asin", asin))
				delete(report.ComparisonMatrix[i].Values, asin)
			}
		}
	}
}

// sanitizeRecommendation blanks a recommendation slot whose ASIN does
// not exist; renderers show a placeholder for an empty slot instead of
// linking a nonexistent product.
func sanitizeRecommendation(rec *model.Recommendation, known map[string]bool) {
	if rec.ASIN != "" && !known[rec.ASIN] {
		zap.L().Warn("dropping recommendation with unknown asin", zap.String("asin", rec.ASIN))
		*rec = model.Recommendation{}
	}
}
