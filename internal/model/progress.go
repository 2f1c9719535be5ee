package model

import "time"

// Achievement is a gamification badge unlocked by the user.
type Achievement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Points     int       `json:"points"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// UserProgress is the accumulated learning state of one user. It is
// owned by the progress store; the search/recommendation core reads it
// as a snapshot and never mutates it. Services that advance progress
// (gamification) return fresh copies.
type UserProgress struct {
	CompletedArticles  []string            `json:"completedArticles"`
	CompletedTutorials []string            `json:"completedTutorials"`
	CompletedPaths     []string            `json:"completedPaths"`
	TutorialProgress   map[string][]string `json:"tutorialProgress,omitempty"`
	PathProgress       map[string][]string `json:"pathProgress,omitempty"`
	TotalPoints        int                 `json:"totalPoints"`
	Streak             int                 `json:"streak"`
	LastActivity       time.Time           `json:"lastActivity"`
	Achievements       []Achievement       `json:"achievements,omitempty"`
}

// Clone returns a deep copy so callers can advance state without
// touching the stored snapshot.
func (p UserProgress) Clone() UserProgress {
	out := p
	out.CompletedArticles = append([]string(nil), p.CompletedArticles...)
	out.CompletedTutorials = append([]string(nil), p.CompletedTutorials...)
	out.CompletedPaths = append([]string(nil), p.CompletedPaths...)
	out.Achievements = append([]Achievement(nil), p.Achievements...)
	if p.TutorialProgress != nil {
		out.TutorialProgress = make(map[string][]string, len(p.TutorialProgress))
		for k, v := range p.TutorialProgress {
			out.TutorialProgress[k] = append([]string(nil), v...)
		}
	}
	if p.PathProgress != nil {
		out.PathProgress = make(map[string][]string, len(p.PathProgress))
		for k, v := range p.PathProgress {
			out.PathProgress[k] = append([]string(nil), v...)
		}
	}
	return out
}

// HasCompletedArticle reports membership in the completed-article set.
func (p UserProgress) HasCompletedArticle(slug string) bool {
	return contains(p.CompletedArticles, slug)
}

func (p UserProgress) HasCompletedTutorial(id string) bool {
	return contains(p.CompletedTutorials, id)
}

func (p UserProgress) HasCompletedPath(id string) bool {
	return contains(p.CompletedPaths, id)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
