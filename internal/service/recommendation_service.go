package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"vibewiki_backend/internal/model"
	"vibewiki_backend/internal/repository"
	"vibewiki_backend/internal/util"
	"vibewiki_backend/pkg/monitoring"
)

// RecommendationService ranks corpus items for one user. The corpus is
// immutable for the service lifetime; every call derives a fresh
// profile from the progress snapshot it is handed and never caches it.
type RecommendationService struct {
	Articles  []model.Article
	Tutorials []model.Tutorial
	Paths     []model.LearningPath
	Defaults  model.RecommendationOptions
}

func NewRecommendationService(corpus *repository.Corpus, defaults model.RecommendationOptions) *RecommendationService {
	return &RecommendationService{
		Articles:  corpus.Articles,
		Tutorials: corpus.Tutorials,
		Paths:     corpus.Paths,
		Defaults:  defaults.Normalize(),
	}
}

func (s *RecommendationService) options(opts *model.RecommendationOptions) model.RecommendationOptions {
	if opts == nil {
		return s.Defaults
	}
	return opts.Normalize()
}

// ---- signal bookkeeping ----

// signal is one contributing factor of a score. Only bonuses become
// signals; penalties lower the score without competing for the
// primary reason.
type signal struct {
	reason      model.Reason
	partial     float64
	explanation string
}

type signalSet struct {
	score   float64
	signals []signal
}

func (s *signalSet) add(reason model.Reason, partial float64, explanation string) {
	s.score += partial
	s.signals = append(s.signals, signal{reason: reason, partial: partial, explanation: explanation})
}

func (s *signalSet) penalize(amount float64) {
	s.score -= amount
}

// primary picks the signal with the highest partial score. Ties go to
// the earlier signal in evaluation order.
func (s *signalSet) primary() (model.Reason, string) {
	if len(s.signals) == 0 {
		return model.ReasonBuildsOnCompleted, "Already part of your completed learning"
	}
	best := s.signals[0]
	for _, sig := range s.signals[1:] {
		if sig.partial > best.partial {
			best = sig
		}
	}
	return best.reason, best.explanation
}

func (s *signalSet) clampedScore() float64 {
	if s.score < 0 {
		return 0
	}
	return s.score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ---- similarity ----

// simFields is the common shape similarity compares: title keywords,
// section (category for paths) and tags.
type simFields struct {
	Title   string
	Section string
	Tags    []string
}

func articleSim(a model.Article) simFields {
	return simFields{Title: a.Title, Section: a.Section, Tags: a.Tags}
}

func tutorialSim(t model.Tutorial) simFields {
	return simFields{Title: t.Title, Section: t.Section, Tags: t.Tags}
}

func pathSim(p model.LearningPath) simFields {
	return simFields{Title: p.Title, Section: p.Category, Tags: p.Tags}
}

// similarity is the unweighted mean of the factor scores that apply:
// tag Jaccard overlap (both items tagged), a flat 0.5 on exact section
// match, and 0.1 per shared title keyword longer than three
// characters. No applicable factor means zero similarity.
func similarity(a, b simFields) float64 {
	var factors []float64

	if len(a.Tags) > 0 && len(b.Tags) > 0 {
		factors = append(factors, tagJaccard(a.Tags, b.Tags))
	}
	if a.Section != "" && a.Section == b.Section {
		factors = append(factors, 0.5)
	}
	if shared := sharedTitleWords(a.Title, b.Title); shared > 0 {
		factors = append(factors, 0.1*float64(shared))
	}

	if len(factors) == 0 {
		return 0
	}
	var sum float64
	for _, f := range factors {
		sum += f
	}
	return sum / float64(len(factors))
}

func tagJaccard(a, b []string) float64 {
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[strings.ToLower(t)] = true
	}
	union := len(set)
	inter := 0
	for _, t := range b {
		k := strings.ToLower(t)
		if set[k] {
			inter++
			set[k] = false
		} else if _, dup := set[k]; !dup {
			set[k] = false
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func sharedTitleWords(a, b string) int {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(a)) {
		if len([]rune(w)) > 3 {
			words[w] = true
		}
	}
	shared := 0
	for _, w := range strings.Fields(strings.ToLower(b)) {
		if len([]rune(w)) > 3 && words[w] {
			shared++
			words[w] = false
		}
	}
	return shared
}

func interestMatches(tags []string, interests []string) int {
	set := make(map[string]bool, len(interests))
	for _, i := range interests {
		set[strings.ToLower(i)] = true
	}
	count := 0
	for _, t := range tags {
		if set[strings.ToLower(t)] {
			count++
		}
	}
	return count
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// ---- article scoring ----

func (s *RecommendationService) scoreArticle(a model.Article, profile model.UserProfile, progress model.UserProgress, opts model.RecommendationOptions) model.RecommendationScore[model.Article] {
	completed := progress.HasCompletedArticle(a.Slug)
	if completed && !opts.IncludeCompleted {
		return model.RecommendationScore[model.Article]{
			Item:        a,
			Reason:      model.ReasonBuildsOnCompleted,
			Explanation: "Already completed",
		}
	}

	var set signalSet
	readingTime := util.ReadingTime(a.Content)

	if !completed {
		set.add(model.ReasonNewContent, 0.3, "New content you have not read yet")
	}

	if matches := interestMatches(a.Tags, profile.Interests); matches > 0 {
		set.add(model.ReasonMatchesInterests, 0.2*float64(matches),
			fmt.Sprintf("Covers %d of your interest topics", matches))
	}

	var bestSim float64
	sameSection := 0
	for _, other := range s.Articles {
		if other.Slug == a.Slug || !progress.HasCompletedArticle(other.Slug) {
			continue
		}
		if sim := similarity(articleSim(a), articleSim(other)); sim > bestSim {
			bestSim = sim
		}
		if other.Section != "" && other.Section == a.Section {
			sameSection++
		}
	}
	if bestSim > 0 {
		set.add(model.ReasonSimilarToComplete, 0.3*bestSim, "Similar to articles you finished")
	}
	if sameSection >= 2 {
		set.add(model.ReasonBuildsOnCompleted, 0.15, "Builds on a section you are active in")
	}

	budget := profile.AvgTime.Article
	if float64(readingTime) <= budget {
		set.add(model.ReasonFitsTimeBudget, 0.2, "Fits your usual reading time")
	} else if float64(readingTime) > 1.5*budget {
		set.penalize(0.3)
	}

	if profile.TypeRatios.Article > 0 {
		set.add(model.ReasonPreferredFormat, 0.15*profile.TypeRatios.Article,
			"Matches your preference for articles")
	}
	if profile.PrefersShortContent && readingTime < 10 {
		set.add(model.ReasonPreferredFormat, 0.1, "Quick read")
	}

	if n := inProgressPathCount(progress); n > 0 {
		set.add(model.ReasonPrerequisitesMet, 0.05*float64(n),
			"Supports a learning path you started")
	}

	reason, explanation := set.primary()
	confidence := 0.2 + 0.15*float64(len(set.signals))
	if len(profile.Interests) > 0 {
		confidence += 0.2
	}

	return model.RecommendationScore[model.Article]{
		Item:        a,
		Score:       set.clampedScore(),
		Confidence:  clamp01(confidence),
		Reason:      reason,
		Explanation: explanation,
	}
}

func inProgressPathCount(progress model.UserProgress) int {
	n := 0
	for id, steps := range progress.PathProgress {
		if len(steps) > 0 && !progress.HasCompletedPath(id) {
			n++
		}
	}
	return n
}

// ---- tutorial scoring ----

func (s *RecommendationService) scoreTutorial(t model.Tutorial, profile model.UserProfile, progress model.UserProgress, opts model.RecommendationOptions) model.RecommendationScore[model.Tutorial] {
	completed := progress.HasCompletedTutorial(t.ID)
	if completed && !opts.IncludeCompleted {
		return model.RecommendationScore[model.Tutorial]{
			Item:        t,
			Reason:      model.ReasonBuildsOnCompleted,
			Explanation: "Already completed",
		}
	}

	var set signalSet

	if steps := progress.TutorialProgress[t.ID]; len(steps) > 0 && !completed {
		fraction := 0.0
		if len(t.Steps) > 0 {
			fraction = float64(len(steps)) / float64(len(t.Steps))
		}
		set.add(model.ReasonContinueProgress, 0.5+0.3*fraction,
			"Continue where you left off")
	} else if !completed {
		set.add(model.ReasonNewContent, 0.3, "A tutorial you have not started")
	}

	if itemLevel, ok := t.Difficulty.Level(); ok {
		userLevel, _ := profile.SkillLevel.Level()
		gap := math.Abs(itemLevel - userLevel)
		if gap <= 0.5 {
			set.add(model.ReasonSkillLevelMatch, 0.25, "Matches your skill level")
		} else {
			set.penalize(0.2)
		}
	}

	if matches := interestMatches(t.Tags, profile.Interests); matches > 0 {
		set.add(model.ReasonMatchesInterests, 0.15*float64(matches),
			fmt.Sprintf("Covers %d of your interest topics", matches))
	}

	if len(t.Prerequisites) > 0 {
		satisfied := true
		for _, prereq := range t.Prerequisites {
			if !progress.HasCompletedTutorial(prereq) {
				satisfied = false
				break
			}
		}
		if satisfied {
			set.add(model.ReasonPrerequisitesMet, 0.2, "You completed all prerequisites")
		} else {
			set.penalize(0.3)
		}
	}

	if profile.PrefersInteractiveContent {
		set.add(model.ReasonPreferredFormat, 0.15, "Hands-on format you favor")
	}

	budget := profile.AvgTime.Tutorial
	if float64(t.Duration) <= budget {
		set.add(model.ReasonFitsTimeBudget, 0.15, "Fits your usual session length")
	} else if float64(t.Duration) > 2*budget {
		set.penalize(0.2)
	}

	var bestSim float64
	for _, other := range s.Tutorials {
		if other.ID == t.ID || !progress.HasCompletedTutorial(other.ID) {
			continue
		}
		if sim := similarity(tutorialSim(t), tutorialSim(other)); sim > bestSim {
			bestSim = sim
		}
	}
	if bestSim > 0 {
		set.add(model.ReasonSimilarToComplete, 0.2*bestSim, "Similar to tutorials you finished")
	}

	if profile.TypeRatios.Tutorial > 0 {
		set.add(model.ReasonPreferredFormat, 0.15*profile.TypeRatios.Tutorial,
			"Matches your preference for tutorials")
	}

	reason, explanation := set.primary()
	confidence := clamp01(0.3 + 0.12*float64(len(set.signals)))

	return model.RecommendationScore[model.Tutorial]{
		Item:        t,
		Score:       set.clampedScore(),
		Confidence:  confidence,
		Reason:      reason,
		Explanation: explanation,
	}
}

// ---- path scoring ----

func (s *RecommendationService) scorePath(p model.LearningPath, profile model.UserProfile, progress model.UserProgress, opts model.RecommendationOptions) model.RecommendationScore[model.LearningPath] {
	completed := progress.HasCompletedPath(p.ID)
	if completed && !opts.IncludeCompleted {
		return model.RecommendationScore[model.LearningPath]{
			Item:        p,
			Reason:      model.ReasonBuildsOnCompleted,
			Explanation: "Already completed",
		}
	}

	var set signalSet

	if modules := progress.PathProgress[p.ID]; len(modules) > 0 && !completed {
		fraction := 0.0
		if len(p.Modules) > 0 {
			fraction = float64(len(modules)) / float64(len(p.Modules))
		}
		set.add(model.ReasonContinueProgress, 0.6+0.3*fraction,
			"Resume this learning path")
	} else if !completed {
		set.add(model.ReasonNewContent, 0.3, "A path you have not started")
	}

	if itemLevel, ok := p.Difficulty.Level(); ok {
		userLevel, _ := profile.SkillLevel.Level()
		gap := math.Abs(itemLevel - userLevel)
		if gap <= 0.5 {
			set.add(model.ReasonSkillLevelMatch, 0.3, "Matches your skill level")
		} else {
			set.penalize(0.3)
		}
	}

	interestBonus := 0.0
	if p.Category != "" && containsFold(profile.Interests, p.Category) {
		interestBonus += 0.2
	}
	if matches := interestMatches(p.Tags, profile.Interests); matches > 0 {
		interestBonus += 0.1 * float64(matches)
	}
	if interestBonus > 0 {
		set.add(model.ReasonMatchesInterests, interestBonus, "Aligned with your interests")
	}

	if len(p.Prerequisites) > 0 {
		satisfied := true
		for _, prereq := range p.Prerequisites {
			if !progress.HasCompletedPath(prereq) {
				satisfied = false
				break
			}
		}
		if satisfied {
			set.add(model.ReasonPrerequisitesMet, 0.15, "You completed the prerequisite paths")
		} else {
			// Paths are a bigger commitment, so missing prerequisites
			// weigh heavier than for tutorials.
			set.penalize(0.4)
		}
	}

	if p.Audience != "" &&
		strings.Contains(strings.ToLower(p.Audience), string(profile.SkillLevel)) {
		set.add(model.ReasonSkillLevelMatch, 0.15, "Written for learners at your level")
	}

	if progress.Streak >= 3 && p.Duration < 30 {
		set.add(model.ReasonMaintainsStreak, 0.1, "Short enough to keep your streak going")
	}

	if float64(p.Duration) <= profile.AvgTime.Tutorial {
		set.add(model.ReasonFitsTimeBudget, 0.15, "Fits your usual session length")
	}

	reason, explanation := set.primary()
	confidence := clamp01(0.25 + 0.15*float64(len(set.signals)))

	return model.RecommendationScore[model.LearningPath]{
		Item:        p,
		Score:       set.clampedScore(),
		Confidence:  confidence,
		Reason:      reason,
		Explanation: explanation,
	}
}

// ---- orchestration ----

// eligible applies the ranked-output filter. One threshold gates both
// score and confidence; the product behaves this way on purpose.
func eligible[T any](rs model.RecommendationScore[T], opts model.RecommendationOptions) bool {
	return rs.Score >= opts.MinConfidence && rs.Confidence >= opts.MinConfidence
}

func rank[T any](scored []model.RecommendationScore[T], opts model.RecommendationOptions, sim func(a, b T) float64) []model.RecommendationScore[T] {
	scored = applyDiversity(scored, opts.DiversityFactor, sim)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score*scored[i].Confidence > scored[j].Score*scored[j].Confidence
	})
	if len(scored) > opts.MaxResults {
		scored = scored[:opts.MaxResults]
	}
	return scored
}

// RecommendedArticles returns the ranked article recommendations for
// the given progress snapshot.
func (s *RecommendationService) RecommendedArticles(progress model.UserProgress, opts *model.RecommendationOptions) []model.RecommendationScore[model.Article] {
	o := s.options(opts)
	monitoring.RecommendationCounter.WithLabelValues(string(model.ContentArticle)).Inc()
	profile := BuildProfile(progress, s.Articles, s.Tutorials)

	var scored []model.RecommendationScore[model.Article]
	for _, a := range s.Articles {
		rs := s.scoreArticle(a, profile, progress, o)
		if eligible(rs, o) {
			scored = append(scored, rs)
		}
	}
	return rank(scored, o, func(x, y model.Article) float64 {
		return similarity(articleSim(x), articleSim(y))
	})
}

func (s *RecommendationService) RecommendedTutorials(progress model.UserProgress, opts *model.RecommendationOptions) []model.RecommendationScore[model.Tutorial] {
	o := s.options(opts)
	monitoring.RecommendationCounter.WithLabelValues(string(model.ContentTutorial)).Inc()
	profile := BuildProfile(progress, s.Articles, s.Tutorials)

	var scored []model.RecommendationScore[model.Tutorial]
	for _, t := range s.Tutorials {
		rs := s.scoreTutorial(t, profile, progress, o)
		if eligible(rs, o) {
			scored = append(scored, rs)
		}
	}
	return rank(scored, o, func(x, y model.Tutorial) float64 {
		return similarity(tutorialSim(x), tutorialSim(y))
	})
}

func (s *RecommendationService) RecommendedPaths(progress model.UserProgress, opts *model.RecommendationOptions) []model.RecommendationScore[model.LearningPath] {
	o := s.options(opts)
	monitoring.RecommendationCounter.WithLabelValues(string(model.ContentPath)).Inc()
	profile := BuildProfile(progress, s.Articles, s.Tutorials)

	var scored []model.RecommendationScore[model.LearningPath]
	for _, p := range s.Paths {
		rs := s.scorePath(p, profile, progress, o)
		if eligible(rs, o) {
			scored = append(scored, rs)
		}
	}
	return rank(scored, o, func(x, y model.LearningPath) float64 {
		return similarity(pathSim(x), pathSim(y))
	})
}

// AllRecommendations fans out to all three content types.
func (s *RecommendationService) AllRecommendations(progress model.UserProgress, opts *model.RecommendationOptions) model.AllRecommendations {
	return model.AllRecommendations{
		Articles:  s.RecommendedArticles(progress, opts),
		Tutorials: s.RecommendedTutorials(progress, opts),
		Paths:     s.RecommendedPaths(progress, opts),
	}
}

// NextRecommendation returns the single global best candidate across
// all types by the score-times-confidence utility, or nil when no
// candidate clears the threshold anywhere.
func (s *RecommendationService) NextRecommendation(progress model.UserProgress, opts *model.RecommendationOptions) *model.NextRecommendation {
	o := s.options(opts)
	o.MaxResults = 1

	var best *model.NextRecommendation
	utility := func(score, confidence float64) float64 { return score * confidence }

	if articles := s.RecommendedArticles(progress, &o); len(articles) > 0 {
		a := articles[0]
		best = &model.NextRecommendation{
			Type: model.ContentArticle, Item: a.Item,
			Score: a.Score, Confidence: a.Confidence,
			Reason: a.Reason, Explanation: a.Explanation,
		}
	}
	if tutorials := s.RecommendedTutorials(progress, &o); len(tutorials) > 0 {
		t := tutorials[0]
		if best == nil || utility(t.Score, t.Confidence) > utility(best.Score, best.Confidence) {
			best = &model.NextRecommendation{
				Type: model.ContentTutorial, Item: t.Item,
				Score: t.Score, Confidence: t.Confidence,
				Reason: t.Reason, Explanation: t.Explanation,
			}
		}
	}
	if paths := s.RecommendedPaths(progress, &o); len(paths) > 0 {
		p := paths[0]
		if best == nil || utility(p.Score, p.Confidence) > utility(best.Score, best.Confidence) {
			best = &model.NextRecommendation{
				Type: model.ContentPath, Item: p.Item,
				Score: p.Score, Confidence: p.Confidence,
				Reason: p.Reason, Explanation: p.Explanation,
			}
		}
	}
	return best
}

// RecommendationsByTime buckets recommendations by how an item's
// duration fits the caller's minutes budget: quick up to a third of
// the budget, moderate up to the full budget, long beyond it.
func (s *RecommendationService) RecommendationsByTime(progress model.UserProgress, budgetMinutes int, opts *model.RecommendationOptions) model.TimeBuckets {
	var buckets model.TimeBuckets
	if budgetMinutes <= 0 {
		return buckets
	}

	place := func(rec model.NextRecommendation, minutes int) {
		switch {
		case minutes*3 <= budgetMinutes:
			buckets.Quick = append(buckets.Quick, rec)
		case minutes <= budgetMinutes:
			buckets.Moderate = append(buckets.Moderate, rec)
		default:
			buckets.Long = append(buckets.Long, rec)
		}
	}

	all := s.AllRecommendations(progress, opts)
	for _, a := range all.Articles {
		place(model.NextRecommendation{
			Type: model.ContentArticle, Item: a.Item,
			Score: a.Score, Confidence: a.Confidence,
			Reason: a.Reason, Explanation: a.Explanation,
		}, util.ReadingTime(a.Item.Content))
	}
	for _, t := range all.Tutorials {
		place(model.NextRecommendation{
			Type: model.ContentTutorial, Item: t.Item,
			Score: t.Score, Confidence: t.Confidence,
			Reason: t.Reason, Explanation: t.Explanation,
		}, t.Item.Duration)
	}
	for _, p := range all.Paths {
		place(model.NextRecommendation{
			Type: model.ContentPath, Item: p.Item,
			Score: p.Score, Confidence: p.Confidence,
			Reason: p.Reason, Explanation: p.Explanation,
		}, p.Item.Duration)
	}
	return buckets
}
