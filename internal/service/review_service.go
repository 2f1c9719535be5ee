package service

import (
	"math"

	"vibewiki_backend/internal/model"
	"vibewiki_backend/internal/util"
)

// ReviewService aggregates reader ratings per content item.
type ReviewService struct{}

func NewReviewService() *ReviewService {
	return &ReviewService{}
}

// Validate rejects out-of-range ratings at the ingestion boundary.
func (s *ReviewService) Validate(r model.Review) error {
	if r.Rating < 1 || r.Rating > 5 {
		return util.ErrInvalidRating
	}
	return nil
}

// Summarize computes the rating summary for one content slug. The
// average over zero reviews is NaN, not an error; callers render it
// as "no ratings yet".
func (s *ReviewService) Summarize(slug string, reviews []model.Review) model.ReviewSummary {
	summary := model.ReviewSummary{
		ContentSlug: slug,
		Breakdown:   map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	var sum int
	for _, r := range reviews {
		if r.ContentSlug != slug || r.Rating < 1 || r.Rating > 5 {
			continue
		}
		summary.Count++
		summary.Breakdown[r.Rating]++
		sum += r.Rating
	}

	if summary.Count == 0 {
		summary.Average = math.NaN()
		return summary
	}
	summary.Average = float64(sum) / float64(summary.Count)
	return summary
}
