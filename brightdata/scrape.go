package brightdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Ruscigno/argus/extract"
	"github.com/Ruscigno/argus/model"
	"go.uber.org/zap"
)

const marketplaceDomain = "amazon.com"

// searchResult is the machine-parseable shape of one search engine hit.
type searchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// Search runs a web search scoped to the marketplace domain and keeps
// the hits that resolve to product detail pages. When the tool returns
// non-JSON text the markdown links in the payload are used instead.
func (c *Client) Search(ctx context.Context, query string) ([]model.RawProduct, error) {
	text, err := c.callTool(ctx, "search_engine", map[string]any{
		"query":  fmt.Sprintf("site:%s %s", marketplaceDomain, query),
		"engine": "google",
	})
	if err != nil {
		return nil, err
	}

	var products []model.RawProduct
	seen := make(map[string]bool)
	add := func(title, url string) {
		asin := extract.ASIN(url)
		if asin == "" || seen[asin] {
			return
		}
		seen[asin] = true
		products = append(products, model.RawProduct{
			ASIN:  asin,
			Title: strings.TrimSpace(title),
			URL:   fmt.Sprintf("https://www.%s/dp/%s", marketplaceDomain, asin),
		})
	}

	for _, hit := range parseSearchResults(text) {
		url := hit.URL
		if url == "" {
			url = hit.Link
		}
		add(hit.Title, url)
	}
	if len(products) == 0 {
		// Not machine-parseable JSON; fall back to [title](url) links.
		for _, link := range extract.Links(text) {
			add(link.Title, link.URL)
		}
	}

	zap.L().Debug("search resolved detail pages",
		zap.String("query", query), zap.Int("products", len(products)))
	return products, nil
}

// parseSearchResults tolerates the payload shapes the search tool is
// known to produce: a bare array, or an object wrapping it under
// "results" or "organic".
func parseSearchResults(text string) []searchResult {
	var direct []searchResult
	if err := json.Unmarshal([]byte(text), &direct); err == nil {
		return direct
	}
	var wrapped struct {
		Results []searchResult `json:"results"`
		Organic []searchResult `json:"organic"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil {
		if len(wrapped.Results) > 0 {
			return wrapped.Results
		}
		return wrapped.Organic
	}
	return nil
}

// ScrapeProduct fetches a detail page as markdown and runs the text
// extractors over it. The raw markdown body is carried along to give
// the analysis step extra context.
func (c *Client) ScrapeProduct(ctx context.Context, url string) (*model.RawProduct, error) {
	markdown, err := c.callTool(ctx, "scrape_as_markdown", map[string]any{"url": url})
	if err != nil {
		return nil, err
	}
	if markdown == "" {
		return nil, fmt.Errorf("scrape of %s returned an empty document", url)
	}

	asin := extract.ASIN(url)
	if asin == "" {
		asin = extract.ASIN(markdown)
	}
	return &model.RawProduct{
		ASIN:         asin,
		Title:        extract.Title(markdown),
		Price:        extract.Price(markdown),
		Rating:       extract.Rating(markdown),
		ReviewsCount: extract.ReviewCount(markdown),
		Brand:        extract.Brand(markdown),
		URL:          url,
		Features:     extract.Features(markdown),
		Markdown:     markdown,
	}, nil
}

// ScrapeReviews fetches the review page derived from a detail-page URL
// and splits it into per-review blocks.
func (c *Client) ScrapeReviews(ctx context.Context, url string) ([]model.RawReview, error) {
	reviewURL := strings.Replace(url, "/dp/", "/product-reviews/", 1)
	markdown, err := c.callTool(ctx, "scrape_as_markdown", map[string]any{"url": reviewURL})
	if err != nil {
		return nil, err
	}
	return extract.Reviews(markdown), nil
}
