package extract

import (
	"regexp"
	"strings"

	"github.com/Ruscigno/argus/model"
)

var reviewAnchorRe = regexp.MustCompile(`(\d(?:\.\d)?)\s*out of 5`)

const maxReviewBody = 500

// Reviews splits a scraped review-page document into per-review blocks.
// Each block is anchored on a "<rating> out of 5" marker; the first
// non-rating line becomes the title and subsequent lines the body,
// capped at maxReviewBody characters.
func Reviews(text string) []model.RawReview {
	locs := reviewAnchorRe.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return nil
	}

	var reviews []model.RawReview
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := text[loc[0]:end]

		rating := Rating(block)
		title, body := splitReviewBlock(block)
		verified := strings.Contains(block, "Verified Purchase")

		reviews = append(reviews, model.RawReview{
			Title:            title,
			Body:             body,
			Rating:           rating,
			VerifiedPurchase: &verified,
		})
	}
	return reviews
}

// splitReviewBlock picks the first substantial non-rating line as the
// review title and joins the remainder into the body.
func splitReviewBlock(block string) (title, body string) {
	var bodyLines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.Trim(line, "#*_>- "))
		if line == "" || reviewAnchorRe.MatchString(line) {
			continue
		}
		if title == "" && len(line) < 120 {
			title = line
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	body = strings.Join(bodyLines, " ")
	if len(body) > maxReviewBody {
		body = body[:maxReviewBody]
	}
	return title, body
}
