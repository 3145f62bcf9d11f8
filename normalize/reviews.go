package normalize

import (
	"fmt"
	"math"

	"product-extractor/internal/types"
)

// NormalizeReviews converts a platform-shaped review list into at most
// MaxReviews bounded Review records. Entries without textual content are
// dropped entirely: a review with no text is not a review.
func NormalizeReviews(value interface{}) []types.Review {
	elems, ok := value.([]interface{})
	if !ok {
		return nil
	}

	var result []types.Review
	for i, e := range elems {
		if len(result) == types.MaxReviews {
			break
		}
		m, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		raw := types.RawPayload(m)

		content := raw.FirstString("content", "text", "body")
		if content == "" {
			continue
		}

		id := asString(raw.First("id"))
		if id == "" {
			id = fmt.Sprintf("review_%d", i)
		}
		author := raw.FirstString("author", "user", "reviewer")
		if author == "" {
			author = "Anonymous"
		}

		result = append(result, types.Review{
			ID:       id,
			Author:   author,
			Rating:   normalizeRating(raw.First("rating")),
			Content:  truncate(content, types.MaxReviewLength),
			Verified: m["verified"] != false,
		})
	}
	return result
}

// normalizeRating clamps a rating into [0,5]. An absent or unparseable
// rating defaults to 5; most platforms omit the rating field on
// satisfied reviews rather than sending zero.
func normalizeRating(value interface{}) float64 {
	r := ParseNumber(value)
	if math.IsNaN(r) || r == 0 {
		r = 5
	}
	return math.Min(5, math.Max(0, r))
}
