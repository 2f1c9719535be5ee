package service

import (
	"sort"

	"vibewiki_backend/internal/model"
	"vibewiki_backend/internal/util"
)

// Defaults used when the user has not completed anything of a type.
const (
	defaultTypeRatio       = 0.33
	defaultArticleMinutes  = 10
	defaultTutorialMinutes = 30
	topInterests           = 5
	shortArticleThreshold  = 15
	shortTutorialThreshold = 45
	interactiveRatioCutoff = 0.4
)

// BuildProfile derives the behavioral profile from a progress
// snapshot. Pure and deterministic: no clock, no randomness, identical
// inputs always produce identical profiles.
func BuildProfile(progress model.UserProgress, articles []model.Article, tutorials []model.Tutorial) model.UserProfile {
	var completedArticles []model.Article
	for _, a := range articles {
		if progress.HasCompletedArticle(a.Slug) {
			completedArticles = append(completedArticles, a)
		}
	}
	var completedTutorials []model.Tutorial
	for _, t := range tutorials {
		if progress.HasCompletedTutorial(t.ID) {
			completedTutorials = append(completedTutorials, t)
		}
	}

	profile := model.UserProfile{
		SkillLevel:       model.SkillLevelForPoints(progress.TotalPoints),
		DifficultyCounts: map[model.Difficulty]int{},
	}

	total := len(completedArticles) + len(completedTutorials)
	if total == 0 {
		// Uninformative prior until the user completes anything.
		profile.TypeRatios = model.ContentTypeRatios{
			Article:  defaultTypeRatio,
			Tutorial: defaultTypeRatio,
			Path:     0,
		}
	} else {
		profile.TypeRatios = model.ContentTypeRatios{
			Article:  float64(len(completedArticles)) / float64(total),
			Tutorial: float64(len(completedTutorials)) / float64(total),
			// Path completions do not feed type preference yet.
			Path: 0,
		}
	}

	profile.AvgTime.Article = defaultArticleMinutes
	if len(completedArticles) > 0 {
		var sum float64
		for _, a := range completedArticles {
			sum += float64(util.ReadingTime(a.Content))
		}
		profile.AvgTime.Article = sum / float64(len(completedArticles))
	}
	profile.AvgTime.Tutorial = defaultTutorialMinutes
	if len(completedTutorials) > 0 {
		var sum float64
		for _, t := range completedTutorials {
			sum += float64(t.Duration)
		}
		profile.AvgTime.Tutorial = sum / float64(len(completedTutorials))
	}

	for _, a := range completedArticles {
		if a.Difficulty.Valid() {
			profile.DifficultyCounts[a.Difficulty]++
		}
	}
	for _, t := range completedTutorials {
		if t.Difficulty.Valid() {
			profile.DifficultyCounts[t.Difficulty]++
		}
	}

	profile.Interests = topTags(completedArticles, completedTutorials)

	profile.PrefersShortContent = profile.AvgTime.Article < shortArticleThreshold ||
		profile.AvgTime.Tutorial < shortTutorialThreshold
	profile.PrefersInteractiveContent = profile.TypeRatios.Tutorial > interactiveRatioCutoff

	withPrereqs := 0
	for _, t := range completedTutorials {
		if len(t.Prerequisites) > 0 {
			withPrereqs++
		}
	}
	profile.LikesPrerequisites = len(completedTutorials) > 0 &&
		withPrereqs*2 > len(completedTutorials)

	return profile
}

// topTags ranks tags of completed content by frequency and keeps the
// top five. Ties break alphabetically so the result is stable.
func topTags(articles []model.Article, tutorials []model.Tutorial) []string {
	freq := map[string]int{}
	for _, a := range articles {
		for _, tag := range a.Tags {
			freq[tag]++
		}
	}
	for _, t := range tutorials {
		for _, tag := range t.Tags {
			freq[tag]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	tags := make([]string, 0, len(freq))
	for tag := range freq {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if freq[tags[i]] != freq[tags[j]] {
			return freq[tags[i]] > freq[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > topInterests {
		tags = tags[:topInterests]
	}
	return tags
}
