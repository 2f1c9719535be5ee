package service

import (
	"testing"

	"vibewiki_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredArticle(slug string, score float64, tags ...string) model.RecommendationScore[model.Article] {
	return model.RecommendationScore[model.Article]{
		Item:  model.Article{Slug: slug, Tags: tags},
		Score: score,
	}
}

func articlePairSim(a, b model.Article) float64 {
	return similarity(articleSim(a), articleSim(b))
}

func TestApplyDiversityFactorZeroIsIdentity(t *testing.T) {
	scored := []model.RecommendationScore[model.Article]{
		scoredArticle("a", 0.9, "go"),
		scoredArticle("b", 0.8, "go"),
	}
	out := applyDiversity(scored, 0, articlePairSim)
	assert.Equal(t, scored, out)
}

func TestApplyDiversitySingleItemUntouched(t *testing.T) {
	scored := []model.RecommendationScore[model.Article]{
		scoredArticle("a", 0.9, "go"),
	}
	out := applyDiversity(scored, 0.5, articlePairSim)
	assert.Equal(t, scored, out)
}

func TestApplyDiversityDisjointItemsKeepScores(t *testing.T) {
	scored := []model.RecommendationScore[model.Article]{
		scoredArticle("a", 0.9, "go"),
		scoredArticle("b", 0.8, "rust"),
		scoredArticle("c", 0.7, "zig"),
	}
	out := applyDiversity(scored, 0.8, articlePairSim)
	require.Len(t, out, 3)
	for i, rs := range out {
		assert.Equal(t, scored[i].Score, rs.Score, rs.Item.Slug)
	}
}

func TestApplyDiversityDownWeightsNearDuplicates(t *testing.T) {
	// Identical tags give similarity 1, well past the cutoff.
	scored := []model.RecommendationScore[model.Article]{
		scoredArticle("a", 0.9, "go", "testing"),
		scoredArticle("b", 0.8, "go", "testing"),
		scoredArticle("c", 0.5, "rust"),
	}
	out := applyDiversity(scored, 0.5, articlePairSim)
	require.Len(t, out, 3)

	assert.Equal(t, "a", out[0].Item.Slug)
	assert.Equal(t, 0.9, out[0].Score)

	// The duplicate drops to 0.8 * (1 - 0.5) = 0.4 and falls behind
	// the unrelated item.
	assert.Equal(t, "c", out[1].Item.Slug)
	assert.Equal(t, "b", out[2].Item.Slug)
	assert.InDelta(t, 0.4, out[2].Score, 1e-9)
}

func TestApplyDiversityPreservesElements(t *testing.T) {
	scored := []model.RecommendationScore[model.Article]{
		scoredArticle("a", 0.9, "go"),
		scoredArticle("b", 0.8, "go"),
		scoredArticle("c", 0.7, "go"),
		scoredArticle("d", 0.6, "rust"),
	}
	out := applyDiversity(scored, 1.0, articlePairSim)
	require.Len(t, out, len(scored))

	seen := map[string]bool{}
	for _, rs := range out {
		seen[rs.Item.Slug] = true
	}
	assert.Len(t, seen, len(scored))
}
