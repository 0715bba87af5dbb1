package model

// RawProduct is a loosely-typed record as returned by the scraping
// service. Any field may be absent; numeric fields are pointers so that
// "missing" and "zero" stay distinguishable until normalization.
type RawProduct struct {
	ASIN         string   `json:"asin,omitempty"`
	Title        string   `json:"title,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	ReviewsCount *int     `json:"reviews_count,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Category     string   `json:"category,omitempty"`
	Availability string   `json:"availability,omitempty"`
	URL          string   `json:"url,omitempty"`
	Features     []string `json:"features,omitempty"`
	// Markdown carries the raw scraped page body for extra LLM context.
	Markdown string `json:"-"`
}

// RawReview is a loosely-typed review record from the scraping service.
type RawReview struct {
	Title            string   `json:"title,omitempty"`
	Body             string   `json:"body,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	Author           string   `json:"author,omitempty"`
	Date             string   `json:"date,omitempty"`
	VerifiedPurchase *bool    `json:"verified_purchase,omitempty"`
}

// Product is the normalized product shape. Every field is populated
// with a documented default so downstream code never branches on
// missing data. Price and Rating stay nullable: "no price" is real
// information and must survive into the report.
type Product struct {
	ASIN        string   `json:"asin"`
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	Currency    string   `json:"currency"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	URL         string   `json:"url"`
	Features    []string `json:"features"`
}

// Review is the normalized review shape.
type Review struct {
	Title            string  `json:"title"`
	Body             string  `json:"body"`
	Rating           float64 `json:"rating"`
	Author           string  `json:"author"`
	Date             string  `json:"date"`
	VerifiedPurchase bool    `json:"verifiedPurchase"`
}

// ProductWithReviews joins a product with its collected reviews. Built
// once per product after the detail and review phases complete.
type ProductWithReviews struct {
	Product
	Reviews []Review `json:"reviews"`
}
