package service

import (
	"math"
	"testing"
	"time"

	"vibewiki_backend/internal/model"
	"vibewiki_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftContribution(t *testing.T) model.Contribution {
	t.Helper()
	svc := NewContributionService()
	c := svc.CreateDraft("leila", "My First Prompt", "prompting",
		"Write what you want, plainly.", []string{"prompting"}, day(1))
	require.Equal(t, model.ContributionDraft, c.Status)
	require.NotEmpty(t, c.ID)
	return c
}

func TestContributionHappyPath(t *testing.T) {
	svc := NewContributionService()
	c := draftContribution(t)

	c, err := svc.Submit(c, day(2))
	require.NoError(t, err)
	assert.Equal(t, model.ContributionSubmitted, c.Status)

	c, err = svc.Approve(c, "solid intro", day(3))
	require.NoError(t, err)
	assert.Equal(t, model.ContributionApproved, c.Status)
	assert.Equal(t, "solid intro", c.Note)

	c, article, err := svc.Publish(c, "my-first-prompt", day(4))
	require.NoError(t, err)
	assert.Equal(t, model.ContributionPublished, c.Status)
	assert.Equal(t, "my-first-prompt", article.Slug)
	assert.Equal(t, c.Title, article.Title)
	assert.Equal(t, c.Content, article.Content)
	assert.Equal(t, day(4), c.UpdatedAt)
}

func TestContributionReject(t *testing.T) {
	svc := NewContributionService()
	c := draftContribution(t)

	c, err := svc.Submit(c, day(2))
	require.NoError(t, err)

	c, err = svc.Reject(c, "needs sources", day(3))
	require.NoError(t, err)
	assert.Equal(t, model.ContributionRejected, c.Status)
	assert.Equal(t, "needs sources", c.Note)
}

func TestContributionTransitionGuards(t *testing.T) {
	svc := NewContributionService()
	c := draftContribution(t)

	_, err := svc.Approve(c, "", day(2))
	assert.ErrorIs(t, err, util.ErrNotSubmitted)

	_, _, err = svc.Publish(c, "slug", day(2))
	assert.ErrorIs(t, err, util.ErrNotApproved)

	submitted, err := svc.Submit(c, day(2))
	require.NoError(t, err)

	_, err = svc.Submit(submitted, day(3))
	assert.ErrorIs(t, err, util.ErrNotDraft)

	rejected, err := svc.Reject(submitted, "no", day(3))
	require.NoError(t, err)

	_, _, err = svc.Publish(rejected, "slug", day(4))
	assert.ErrorIs(t, err, util.ErrNotApproved)
}

func TestContributionValidate(t *testing.T) {
	svc := NewContributionService()

	assert.NoError(t, svc.Validate(draftContribution(t)))
	assert.ErrorIs(t, svc.Validate(model.Contribution{Status: "archived"}),
		util.ErrInvalidContribStatus)
}

func TestContributionGuardLeavesStateUntouched(t *testing.T) {
	svc := NewContributionService()
	c := draftContribution(t)

	got, err := svc.Approve(c, "note", day(2))
	assert.Error(t, err)
	assert.Equal(t, c, got)
}

func TestReviewValidate(t *testing.T) {
	svc := NewReviewService()

	assert.NoError(t, svc.Validate(model.Review{Rating: 1}))
	assert.NoError(t, svc.Validate(model.Review{Rating: 5}))
	assert.ErrorIs(t, svc.Validate(model.Review{Rating: 0}), util.ErrInvalidRating)
	assert.ErrorIs(t, svc.Validate(model.Review{Rating: 6}), util.ErrInvalidRating)
}

func TestReviewSummarize(t *testing.T) {
	svc := NewReviewService()
	reviews := []model.Review{
		{ContentSlug: "a1", Rating: 5, CreatedAt: time.Now()},
		{ContentSlug: "a1", Rating: 4},
		{ContentSlug: "a1", Rating: 4},
		{ContentSlug: "other", Rating: 1},
		{ContentSlug: "a1", Rating: 9}, // out of range, skipped
	}

	summary := svc.Summarize("a1", reviews)
	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 13.0/3.0, summary.Average, 1e-9)
	assert.Equal(t, 2, summary.Breakdown[4])
	assert.Equal(t, 1, summary.Breakdown[5])
	assert.Equal(t, 0, summary.Breakdown[1])
}

func TestReviewSummarizeEmptyHasNaNAverage(t *testing.T) {
	svc := NewReviewService()

	summary := svc.Summarize("a1", nil)
	assert.Equal(t, 0, summary.Count)
	assert.True(t, math.IsNaN(summary.Average), "average over zero reviews is NaN")
	assert.Len(t, summary.Breakdown, 5)
}
