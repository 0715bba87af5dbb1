// Package extract recovers structured product facts from the markdown
// documents returned by the scraping service. The input is an
// uncontrolled HTML-to-markdown conversion, so every function here is a
// best-effort pattern match: no match returns a nil pointer or empty
// value, never an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	asinRe        = regexp.MustCompile(`/(?:dp|gp/product|product-reviews)/([A-Z0-9]{10})`)
	priceRe       = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)
	ratingOutOfRe = regexp.MustCompile(`(\d(?:\.\d)?)\s*out of 5`)
	ratingSlashRe = regexp.MustCompile(`(\d(?:\.\d)?)/5`)
	reviewCountRe = regexp.MustCompile(`([\d,]+)\s*(?:ratings|reviews|global)`)
	headingRe     = regexp.MustCompile(`(?m)^#{1,3}\s+(.+)$`)
	boldRe        = regexp.MustCompile(`\*\*([^*]{10,})\*\*`)
	brandLabelRe  = regexp.MustCompile(`(?i)Brand[:\s|]+\**([A-Za-z0-9][A-Za-z0-9 .&\-']{1,40})`)
	byLineRe      = regexp.MustCompile(`(?i)\bby\s+\[?([A-Z][A-Za-z0-9 .&\-']{1,40})`)
	bulletRe      = regexp.MustCompile(`(?m)^\s*[-*•]\s+(.+)$`)
)

// ASIN returns the 10-character product identifier embedded in an
// Amazon detail or review URL, or "" when none is present.
func ASIN(text string) string {
	m := asinRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// Price returns the first dollar amount in the text. First match wins
// when several amounts appear.
func Price(text string) *float64 {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// Rating returns a star rating matched as "<r> out of 5" or "<r>/5".
func Rating(text string) *float64 {
	m := ratingOutOfRe.FindStringSubmatch(text)
	if m == nil {
		m = ratingSlashRe.FindStringSubmatch(text)
	}
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v > 5 {
		return nil
	}
	return &v
}

// ReviewCount returns the comma-grouped count preceding a
// "ratings"/"reviews"/"global" marker.
func ReviewCount(text string) *int {
	m := reviewCountRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil
	}
	return &v
}

// Title returns the first heading line, falling back to the first long
// bold span.
func Title(text string) string {
	if m := headingRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := boldRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Brand returns the text following a "Brand" label or a "by" byline.
func Brand(text string) string {
	if m := brandLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := byLineRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

const maxFeatures = 6

// Features returns the bullet lines under an "About this item" heading,
// or the first few bullet lines anywhere when that section is absent.
func Features(text string) []string {
	if idx := indexInsensitive(text, "about this item"); idx >= 0 {
		if feats := bullets(text[idx:], maxFeatures); len(feats) > 0 {
			return feats
		}
	}
	return bullets(text, maxFeatures)
}

func bullets(text string, max int) []string {
	var out []string
	for _, m := range bulletRe.FindAllStringSubmatch(text, -1) {
		line := strings.TrimSpace(m[1])
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == max {
			break
		}
	}
	return out
}

func indexInsensitive(haystack, needle string) int {
	return strings.Index(strings.ToLower(haystack), strings.ToLower(needle))
}
