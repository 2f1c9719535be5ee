package service

import "vibewiki_backend/internal/model"

// reasonDisplay maps reason codes to user-facing text, Arabic first.
var reasonDisplay = map[model.Reason]string{
	model.ReasonContinueProgress:  "أكمل من حيث توقفت — Continue where you left off",
	model.ReasonNewContent:        "محتوى جديد — New content for you",
	model.ReasonMatchesInterests:  "يطابق اهتماماتك — Matches your interests",
	model.ReasonSimilarToComplete: "مشابه لما أنهيته — Similar to what you completed",
	model.ReasonSkillLevelMatch:   "مناسب لمستواك — Right for your skill level",
	model.ReasonPrerequisitesMet:  "أتممت المتطلبات — Prerequisites satisfied",
	model.ReasonFitsTimeBudget:    "يناسب وقتك — Fits your available time",
	model.ReasonPreferredFormat:   "بالصيغة التي تفضلها — In your preferred format",
	model.ReasonMaintainsStreak:   "يحافظ على سلسلتك — Keeps your streak alive",
	model.ReasonBuildsOnCompleted: "يبني على ما تعلمته — Builds on what you learned",
}

// confidenceTier labels confidence on the five-tier ladder.
func confidenceTier(confidence float64) string {
	switch {
	case confidence < 0.3:
		return "Suggestion"
	case confidence < 0.5:
		return "Likely Match"
	case confidence < 0.7:
		return "Good Match"
	case confidence < 0.9:
		return "Strong Match"
	default:
		return "Excellent Match"
	}
}

// ExplainRecommendation turns a recommendation verdict into the
// user-facing transparency record.
func ExplainRecommendation[T any](rs model.RecommendationScore[T]) model.RecommendationExplanation {
	reason, ok := reasonDisplay[rs.Reason]
	if !ok {
		reason = string(rs.Reason)
	}
	return model.RecommendationExplanation{
		Reason:     reason,
		Confidence: rs.Confidence,
		Details:    rs.Explanation,
		Tier:       confidenceTier(rs.Confidence),
	}
}
