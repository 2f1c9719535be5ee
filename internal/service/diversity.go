package service

import "vibewiki_backend/internal/model"

// Items more similar than this to a selected result get down-weighted.
const diversitySimilarityCutoff = 0.3

// applyDiversity re-ranks a scored list so near-duplicates of already
// selected items sink. Greedy: pick the remaining item with the
// highest current score, then scale every remaining near-duplicate's
// score by (1 - factor × similarity). Same elements, same length,
// possibly reweighted scores. Quadratic, which is fine at corpus
// sizes in the tens to low hundreds.
func applyDiversity[T any](scored []model.RecommendationScore[T], factor float64, sim func(a, b T) float64) []model.RecommendationScore[T] {
	if factor == 0 || len(scored) <= 1 {
		return scored
	}

	remaining := make([]model.RecommendationScore[T], len(scored))
	copy(remaining, scored)

	out := make([]model.RecommendationScore[T], 0, len(scored))
	for len(remaining) > 0 {
		best := 0
		for i := 1; i < len(remaining); i++ {
			if remaining[i].Score > remaining[best].Score {
				best = i
			}
		}
		selected := remaining[best]
		out = append(out, selected)
		remaining = append(remaining[:best], remaining[best+1:]...)

		for i := range remaining {
			if s := sim(selected.Item, remaining[i].Item); s > diversitySimilarityCutoff {
				remaining[i].Score *= 1 - factor*s
			}
		}
	}
	return out
}
