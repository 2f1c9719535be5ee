package model

import "time"

// ContributionStatus is the lifecycle state of a community-submitted
// article. Transitions are guarded by the contribution service; any
// other mutation path is an invariant violation.
type ContributionStatus string

const (
	ContributionDraft     ContributionStatus = "draft"
	ContributionSubmitted ContributionStatus = "submitted"
	ContributionApproved  ContributionStatus = "approved"
	ContributionRejected  ContributionStatus = "rejected"
	ContributionPublished ContributionStatus = "published"
)

func (s ContributionStatus) Valid() bool {
	switch s {
	case ContributionDraft, ContributionSubmitted, ContributionApproved,
		ContributionRejected, ContributionPublished:
		return true
	}
	return false
}

// Contribution is a user-authored article working its way toward the
// corpus.
type Contribution struct {
	ID        string             `json:"id"`
	Author    string             `json:"author"`
	Title     string             `json:"title"`
	Section   string             `json:"section"`
	Content   string             `json:"content"`
	Tags      []string           `json:"tags,omitempty"`
	Status    ContributionStatus `json:"status"`
	Note      string             `json:"note,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
