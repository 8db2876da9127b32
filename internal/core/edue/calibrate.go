package edue

import (
	"math"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

// Page-support adjustments and the corroboration bonus applied on top
// of a raw confidence score.
const (
	widePageSupportBonus   = 0.05 // >= 5 distinct pages
	broadPageSupportBonus  = 0.03 // >= 3 distinct pages
	singlePageSupportMalus = 0.05 // exactly 1 page
	corroborationBonus     = 0.02 // secondary engine consulted, raw already strong
	corroborationMinimum   = 0.70
)

// Confidence band cutoffs, ordered highest first.
const (
	bandVeryHighCutoff = 0.90
	bandHighCutoff     = 0.75
	bandMediumCutoff   = 0.50
	bandLowCutoff      = 0.25
)

// Calibrate post-processes a raw confidence using corroboration
// signals into a banded, explainable confidence. It never changes
// which evidence was selected and is total over its input range: the
// calibrated score is always clamped into [0,1] before banding.
func Calibrate(rawConfidence float64, pages []int, secondaryUsed bool) domain.CalibratedConfidence {
	pageSupport := distinctPageCount(pages)

	score := rawConfidence
	switch {
	case pageSupport >= 5:
		score += widePageSupportBonus
	case pageSupport >= 3:
		score += broadPageSupportBonus
	case pageSupport == 1:
		score -= singlePageSupportMalus
	}

	if secondaryUsed && rawConfidence >= corroborationMinimum {
		score += corroborationBonus
	}

	score = math.Max(0, math.Min(score, 1))

	band, explanation := bandFor(score)
	return domain.CalibratedConfidence{
		RawScore:        math.Round(rawConfidence*100) / 100,
		CalibratedScore: math.Round(score*100) / 100,
		Band:            band,
		PageSupport:     pageSupport,
		Explanation:     explanation,
	}
}

func bandFor(score float64) (string, string) {
	switch {
	case score >= bandVeryHighCutoff:
		return "very_high", "Multiple strong matches across document sections"
	case score >= bandHighCutoff:
		return "high", "Clear and well-supported answer in document"
	case score >= bandMediumCutoff:
		return "medium", "Answer found but partially supported"
	case score >= bandLowCutoff:
		return "low", "Weak or fragmented references"
	default:
		return "very_low", "Information likely not present"
	}
}

func distinctPageCount(pages []int) int {
	seen := make(map[int]struct{}, len(pages))
	for _, page := range pages {
		seen[page] = struct{}{}
	}
	return len(seen)
}
