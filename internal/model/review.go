package model

import "time"

// Review is a reader rating on a piece of content. Rating is 1-5.
type Review struct {
	ContentSlug string    `json:"contentSlug"`
	Author      string    `json:"author"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReviewSummary aggregates reviews for one content item. Average is
// NaN when Count is 0; callers render that as "no ratings yet" rather
// than treating it as an error.
type ReviewSummary struct {
	ContentSlug string      `json:"contentSlug"`
	Count       int         `json:"count"`
	Average     float64     `json:"average"`
	Breakdown   map[int]int `json:"breakdown"`
}
