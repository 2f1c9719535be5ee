package service

import (
	"time"

	"vibewiki_backend/internal/model"
	"vibewiki_backend/internal/util"

	"github.com/google/uuid"
)

// ContributionService guards the lifecycle of community-submitted
// articles. Status transitions are the only operations in the system
// that return invariant-violation errors.
type ContributionService struct{}

func NewContributionService() *ContributionService {
	return &ContributionService{}
}

// CreateDraft starts a new contribution in draft state.
func (s *ContributionService) CreateDraft(author, title, section, content string, tags []string, now time.Time) model.Contribution {
	return model.Contribution{
		ID:        uuid.New().String(),
		Author:    author,
		Title:     title,
		Section:   section,
		Content:   content,
		Tags:      tags,
		Status:    model.ContributionDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate rejects contributions whose status fell outside the known
// lifecycle, which happens when stored drafts outlive a schema change.
func (s *ContributionService) Validate(c model.Contribution) error {
	if !c.Status.Valid() {
		return util.ErrInvalidContribStatus
	}
	return nil
}

// Submit moves a draft to review.
func (s *ContributionService) Submit(c model.Contribution, now time.Time) (model.Contribution, error) {
	if c.Status != model.ContributionDraft {
		return c, util.ErrNotDraft
	}
	c.Status = model.ContributionSubmitted
	c.UpdatedAt = now
	return c, nil
}

// Approve accepts a submitted contribution.
func (s *ContributionService) Approve(c model.Contribution, note string, now time.Time) (model.Contribution, error) {
	if c.Status != model.ContributionSubmitted {
		return c, util.ErrNotSubmitted
	}
	c.Status = model.ContributionApproved
	c.Note = note
	c.UpdatedAt = now
	return c, nil
}

// Reject declines a submitted contribution with a reviewer note.
func (s *ContributionService) Reject(c model.Contribution, note string, now time.Time) (model.Contribution, error) {
	if c.Status != model.ContributionSubmitted {
		return c, util.ErrNotSubmitted
	}
	c.Status = model.ContributionRejected
	c.Note = note
	c.UpdatedAt = now
	return c, nil
}

// Publish releases an approved contribution into the corpus. The
// returned article carries the contribution's content; corpus
// inclusion itself happens at the next content build.
func (s *ContributionService) Publish(c model.Contribution, slug string, now time.Time) (model.Contribution, model.Article, error) {
	if c.Status != model.ContributionApproved {
		return c, model.Article{}, util.ErrNotApproved
	}
	c.Status = model.ContributionPublished
	c.UpdatedAt = now

	article := model.Article{
		Slug:    slug,
		Title:   c.Title,
		Section: c.Section,
		Content: c.Content,
		Tags:    c.Tags,
	}
	return c, article, nil
}
