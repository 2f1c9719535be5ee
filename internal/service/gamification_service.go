package service

import (
	"time"

	"vibewiki_backend/internal/model"

	"github.com/google/uuid"
)

// Points granted per level; a learner levels up every 200 points.
const pointsPerLevel = 200

// achievementRule checks whether a progress state unlocks a badge.
type achievementRule struct {
	ID     string
	Title  string
	Points int
	Check  func(p model.UserProgress) bool
}

var achievementRules = []achievementRule{
	{
		ID: "first-article", Title: "First Read", Points: 10,
		Check: func(p model.UserProgress) bool { return len(p.CompletedArticles) >= 1 },
	},
	{
		ID: "ten-articles", Title: "Bookworm", Points: 50,
		Check: func(p model.UserProgress) bool { return len(p.CompletedArticles) >= 10 },
	},
	{
		ID: "first-tutorial", Title: "Hands On", Points: 20,
		Check: func(p model.UserProgress) bool { return len(p.CompletedTutorials) >= 1 },
	},
	{
		ID: "week-streak", Title: "Seven Days Strong", Points: 70,
		Check: func(p model.UserProgress) bool { return p.Streak >= 7 },
	},
	{
		ID: "thousand-points", Title: "Rising Star", Points: 100,
		Check: func(p model.UserProgress) bool { return p.TotalPoints >= 1000 },
	},
}

// GamificationService advances points, streaks and achievements. It
// never mutates the snapshot it receives; callers persist the returned
// copy through the progress repository.
type GamificationService struct{}

func NewGamificationService() *GamificationService {
	return &GamificationService{}
}

// AwardPoints adds points and unlocks any achievement whose condition
// the new state satisfies. Returns the updated copy and the newly
// unlocked achievements.
func (s *GamificationService) AwardPoints(progress model.UserProgress, points int, now time.Time) (model.UserProgress, []model.Achievement) {
	updated := progress.Clone()
	updated.TotalPoints += points

	var unlocked []model.Achievement
	for _, rule := range achievementRules {
		if hasAchievement(updated.Achievements, rule.ID) || !rule.Check(updated) {
			continue
		}
		a := model.Achievement{
			ID:         rule.ID,
			Title:      rule.Title,
			Points:     rule.Points,
			UnlockedAt: now,
		}
		updated.Achievements = append(updated.Achievements, a)
		updated.TotalPoints += rule.Points
		unlocked = append(unlocked, a)
	}
	return updated, unlocked
}

// RecordActivity maintains the consecutive-day streak: a second
// activity the same day changes nothing, the next day extends the
// streak, a gap resets it to one.
func (s *GamificationService) RecordActivity(progress model.UserProgress, now time.Time) model.UserProgress {
	updated := progress.Clone()

	last := progress.LastActivity
	switch {
	case last.IsZero():
		updated.Streak = 1
	case sameDay(last, now):
		// no change
	case sameDay(last.AddDate(0, 0, 1), now):
		updated.Streak++
	default:
		updated.Streak = 1
	}
	updated.LastActivity = now
	return updated
}

// LevelForPoints reports the current level and the points needed for
// the next one.
func (s *GamificationService) LevelForPoints(points int) (level, nextLevelPoints int) {
	level = points / pointsPerLevel
	nextLevelPoints = (level + 1) * pointsPerLevel
	return level, nextLevelPoints
}

// NewAchievementID mints an identifier for ad-hoc (event) badges that
// are not covered by the static rule table.
func NewAchievementID() string {
	return uuid.New().String()
}

func hasAchievement(list []model.Achievement, id string) bool {
	for _, a := range list {
		if a.ID == id {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
