package extract

import "regexp"

var markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)

// Link is a `[title](url)` pair pulled out of markdown text.
type Link struct {
	Title string
	URL   string
}

// Links returns all markdown-style links in the text. Used as the
// fallback when a search result payload is not machine-parseable JSON.
func Links(text string) []Link {
	matches := markdownLinkRe.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, Link{Title: m[1], URL: m[2]})
	}
	return links
}
