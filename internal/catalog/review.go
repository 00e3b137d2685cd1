package catalog

import (
	"math"

	"github.com/FItraRizky/fro/internal/domain"
)

// RatingCount is one row of a rating breakdown.
type RatingCount struct {
	Rating     int `json:"rating"`
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// ReviewSummary is the review section of a product page.
type ReviewSummary struct {
	Reviews   []domain.Review `json:"reviews"`
	Total     int             `json:"total"`
	Average   float64         `json:"average"`
	Breakdown []RatingCount   `json:"breakdown"`
}

// Reviews returns the reviews of a product. A rating between 1 and 5 keeps
// only reviews with exactly that many stars; any other value keeps all of
// them. Total, Average and Breakdown always describe every review of the
// product, so the breakdown stays stable while the shopper filters.
func (e *Engine) Reviews(productID string, rating int) (ReviewSummary, error) {
	p, err := e.Product(productID)
	if err != nil {
		return ReviewSummary{}, err
	}

	var all []domain.Review
	for _, r := range e.reviews {
		if r.ProductID == p.ID {
			all = append(all, r)
		}
	}

	summary := ReviewSummary{
		Reviews:   make([]domain.Review, 0, len(all)),
		Total:     len(all),
		Breakdown: RatingBreakdown(all),
	}

	sum := 0
	for _, r := range all {
		sum += r.Rating
		if rating < 1 || rating > 5 || r.Rating == rating {
			summary.Reviews = append(summary.Reviews, r)
		}
	}
	if len(all) > 0 {
		summary.Average = math.Round(float64(sum)/float64(len(all))*10) / 10
	}
	return summary, nil
}

// RatingBreakdown counts reviews per star rating, five stars first.
func RatingBreakdown(reviews []domain.Review) []RatingCount {
	out := make([]RatingCount, 0, 5)
	for stars := 5; stars >= 1; stars-- {
		rc := RatingCount{Rating: stars}
		for _, r := range reviews {
			if r.Rating == stars {
				rc.Count++
			}
		}
		if len(reviews) > 0 {
			rc.Percentage = int(math.Round(float64(rc.Count) / float64(len(reviews)) * 100))
		}
		out = append(out, rc)
	}
	return out
}
