package model

// ContentTypeRatios are per-type preference shares in [0,1]. They do
// not have to sum to 1; the path share stays 0 until path completions
// feed into type preference.
type ContentTypeRatios struct {
	Article  float64 `json:"article"`
	Tutorial float64 `json:"tutorial"`
	Path     float64 `json:"path"`
}

// AvgCompletionTime is the mean estimated minutes of completed items,
// per content type.
type AvgCompletionTime struct {
	Article  float64 `json:"article"`
	Tutorial float64 `json:"tutorial"`
}

// UserProfile is the behavioral profile derived from a progress
// snapshot. It is recomputed on every recommendation request and never
// cached across calls.
type UserProfile struct {
	TypeRatios       ContentTypeRatios  `json:"typeRatios"`
	AvgTime          AvgCompletionTime  `json:"avgTime"`
	DifficultyCounts map[Difficulty]int `json:"difficultyCounts"`
	Interests        []string           `json:"interests"`
	SkillLevel       Difficulty         `json:"skillLevel"`

	PrefersShortContent       bool `json:"prefersShortContent"`
	PrefersInteractiveContent bool `json:"prefersInteractiveContent"`
	LikesPrerequisites        bool `json:"likesPrerequisites"`
}

// SkillLevelForPoints maps total points onto a skill level. Pure and
// monotonic: 0-500 beginner, 500-2000 intermediate, above advanced.
func SkillLevelForPoints(points int) Difficulty {
	switch {
	case points > 2000:
		return DifficultyAdvanced
	case points >= 500:
		return DifficultyIntermediate
	default:
		return DifficultyBeginner
	}
}
