// Package normalize maps raw scrape records into the canonical product
// and review shapes. Every function is pure and total: each output
// field has a defined default, so downstream code never checks for
// missing data.
package normalize

import (
	"fmt"

	"github.com/Ruscigno/argus/model"
)

// Defaults applied when a raw field is absent.
const (
	DefaultTitle    = "Unknown Product"
	DefaultCurrency = "USD"
	DefaultBrand    = "Unknown"
	DefaultAuthor   = "Anonymous"
)

// Product normalizes a raw scrape record. The URL is derived from the
// ASIN when the record carries none.
func Product(raw model.RawProduct) model.Product {
	p := model.Product{
		ASIN:     raw.ASIN,
		Title:    raw.Title,
		Price:    raw.Price,
		Currency: raw.Currency,
		Rating:   raw.Rating,
		Brand:    raw.Brand,
		Category: raw.Category,
		URL:      raw.URL,
		Features: raw.Features,
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	if raw.ReviewsCount != nil {
		p.ReviewCount = *raw.ReviewsCount
	}
	if p.Brand == "" {
		p.Brand = DefaultBrand
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.URL == "" {
		p.URL = fmt.Sprintf("https://www.amazon.com/dp/%s", raw.ASIN)
	}
	return p
}

// Review normalizes a raw review record.
func Review(raw model.RawReview) model.Review {
	r := model.Review{
		Title:  raw.Title,
		Body:   raw.Body,
		Author: raw.Author,
		Date:   raw.Date,
	}
	if raw.Rating != nil {
		r.Rating = *raw.Rating
	}
	if r.Author == "" {
		r.Author = DefaultAuthor
	}
	if raw.VerifiedPurchase != nil {
		r.VerifiedPurchase = *raw.VerifiedPurchase
	}
	return r
}

// Products normalizes a batch of raw products.
func Products(raws []model.RawProduct) []model.Product {
	out := make([]model.Product, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Product(raw))
	}
	return out
}

// Reviews normalizes a batch of raw reviews.
func Reviews(raws []model.RawReview) []model.Review {
	out := make([]model.Review, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Review(raw))
	}
	return out
}

// Merge joins a product with its reviews. A nil review slice becomes an
// empty one so the merged record serializes as [] rather than null.
func Merge(product model.Product, reviews []model.Review) model.ProductWithReviews {
	if reviews == nil {
		reviews = []model.Review{}
	}
	return model.ProductWithReviews{Product: product, Reviews: reviews}
}
