package model

// Reason codes a recommendation can carry. Exactly one primary reason
// is attached per item: the contributing signal with the highest
// partial score.
type Reason string

const (
	ReasonContinueProgress  Reason = "continue_progress"
	ReasonNewContent        Reason = "new_content"
	ReasonMatchesInterests  Reason = "matches_interests"
	ReasonSimilarToComplete Reason = "similar_to_completed"
	ReasonSkillLevelMatch   Reason = "skill_level_match"
	ReasonPrerequisitesMet  Reason = "prerequisites_met"
	ReasonFitsTimeBudget    Reason = "fits_time_budget"
	ReasonPreferredFormat   Reason = "preferred_format"
	ReasonMaintainsStreak   Reason = "maintains_streak"
	ReasonBuildsOnCompleted Reason = "builds_on_completed"
)

// RecommendationScore wraps a corpus item with its ranking verdict.
// Score is clamped to be non-negative but has no upper bound;
// Confidence always lands in [0,1].
type RecommendationScore[T any] struct {
	Item        T       `json:"item"`
	Score       float64 `json:"score"`
	Confidence  float64 `json:"confidence"`
	Reason      Reason  `json:"reason"`
	Explanation string  `json:"explanation"`
}

// RecommendationOptions tune one recommendation request. MinConfidence
// deliberately gates both the score and the confidence of a candidate,
// matching the product's observed filter behavior.
type RecommendationOptions struct {
	MaxResults       int     `json:"maxResults"`
	MinConfidence    float64 `json:"minConfidence"`
	IncludeCompleted bool    `json:"includeCompleted"`
	DiversityFactor  float64 `json:"diversityFactor"`
}

const DefaultMaxResults = 5

// Normalize fills unset option fields with defaults.
func (o RecommendationOptions) Normalize() RecommendationOptions {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	return o
}

// AllRecommendations groups the per-type ranked lists.
type AllRecommendations struct {
	Articles  []RecommendationScore[Article]      `json:"articles"`
	Tutorials []RecommendationScore[Tutorial]     `json:"tutorials"`
	Paths     []RecommendationScore[LearningPath] `json:"paths"`
}

// NextRecommendation is the single global best candidate across all
// content types. Item is one of Article, Tutorial or LearningPath.
type NextRecommendation struct {
	Type        ContentType `json:"type"`
	Item        any         `json:"item"`
	Score       float64     `json:"score"`
	Confidence  float64     `json:"confidence"`
	Reason      Reason      `json:"reason"`
	Explanation string      `json:"explanation"`
}

// TimeBuckets splits recommendations by how they fit a minutes budget.
type TimeBuckets struct {
	Quick    []NextRecommendation `json:"quick"`
	Moderate []NextRecommendation `json:"moderate"`
	Long     []NextRecommendation `json:"long"`
}

// RecommendationExplanation is the user-facing transparency record.
type RecommendationExplanation struct {
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	Details    string  `json:"details"`
	Tier       string  `json:"tier"`
}
