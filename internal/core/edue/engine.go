package edue

import (
	"math"
	"sort"
	"strings"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

// Scoring constants. These are part of the engine's contract: tests
// probe boundary behavior against them, so they live here rather than
// inline at the call sites.
const (
	// SectionFloor is the section-pass score below which the engine
	// falls back to sentence-level scoring.
	SectionFloor = 0.35

	// MinimumFloor is the score below which, with no sentence
	// candidates at all, the engine returns the sentinel response.
	MinimumFloor = 0.25

	// TitleKeywordBonus is added per question keyword present in a
	// section title.
	TitleKeywordBonus = 0.15

	// MaxFallbackSentences bounds how many sentences the fallback
	// pass assembles into an answer.
	MaxFallbackSentences = 3

	// minSentenceTokens filters out fragments too short to carry an
	// answer.
	minSentenceTokens = 4

	// ConfidenceBase and ConfidenceCap bound the raw confidence
	// derived from the best score.
	ConfidenceBase = 0.40
	ConfidenceCap  = 0.95

	// SentenceConfidenceStep is the per-selected-sentence confidence
	// increment on the fallback path.
	SentenceConfidenceStep = 0.15

	// UntracedConfidenceCap limits confidence when no page numbers
	// are attributable to the selected evidence.
	UntracedConfidenceCap = 0.60
)

// noisePhrases disqualify a sentence from fallback scoring.
var noisePhrases = []string{"http://", "https://", "www.", "learning objective"}

type sentenceCandidate struct {
	text  string
	score int
	order int
	pages []int
}

// Answer scores the document's sections (and, on fallback, sentences)
// against the question and assembles the best-evidence answer. Purely
// a function of its inputs: no side effects, fully reproducible.
func Answer(doc *domain.StructuredDocument, question string) domain.QueryResult {
	if doc == nil || doc.Sections == nil {
		return domain.NoAnswerResult()
	}

	qNorm := Normalize(question)
	keywords := Keywords(question)

	bestSection := -1
	bestScore := 0.0
	for i, section := range doc.Sections {
		titleNorm := Normalize(section.Title)
		score := SimilarityRatio(qNorm, titleNorm)
		for _, kw := range keywords {
			if containsToken(titleNorm, kw) {
				score += TitleKeywordBonus
			}
		}
		if score > bestScore {
			bestScore = score
			bestSection = i
		}
	}

	var selected []sentenceCandidate
	if bestScore < SectionFloor {
		selected = selectFallbackSentences(doc.Sections, keywords)
		bestScore = fallbackScore(selected)
	}

	if bestScore < MinimumFloor && len(selected) == 0 {
		return domain.NoAnswerResult()
	}
	if bestSection < 0 && len(selected) == 0 {
		return domain.NoAnswerResult()
	}

	var answer string
	var pages []int
	if len(selected) > 0 {
		parts := make([]string, 0, len(selected))
		for _, cand := range selected {
			parts = append(parts, cand.text)
			pages = mergePages(pages, cand.pages)
		}
		answer = strings.Join(parts, " ")
	} else {
		section := doc.Sections[bestSection]
		answer = strings.Join(section.Paragraphs, " ")
		pages = mergePages(nil, section.Pages)
	}
	answer = strings.TrimSpace(whitespaceRe.ReplaceAllString(answer, " "))
	answer = declarativeTransform(qNorm, answer)

	confidence := 0.0
	if len(selected) > 0 {
		confidence = ConfidenceBase + SentenceConfidenceStep*float64(len(selected))
	} else {
		confidence = ConfidenceBase + bestScore
	}
	if confidence > ConfidenceCap {
		confidence = ConfidenceCap
	}
	if len(pages) == 0 && confidence > UntracedConfidenceCap {
		confidence = UntracedConfidenceCap
	}
	confidence = math.Round(confidence*100) / 100

	sort.Ints(pages)
	if pages == nil {
		pages = []int{}
	}

	return domain.QueryResult{
		Answer:     answer,
		Confidence: confidence,
		Pages:      pages,
	}
}

// selectFallbackSentences scores every surviving sentence of every
// paragraph by term overlap with the question and keeps the top
// MaxFallbackSentences. Ties keep first-seen document order, so the
// selection is deterministic regardless of evaluation order.
func selectFallbackSentences(sections []domain.Section, keywords []string) []sentenceCandidate {
	questionTokens := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		questionTokens[kw] = struct{}{}
	}

	var candidates []sentenceCandidate
	order := 0
	for _, section := range sections {
		for _, paragraph := range section.Paragraphs {
			for _, sentence := range splitSentences(paragraph) {
				order++
				if isNoiseSentence(sentence) {
					continue
				}
				score := overlapCount(sentence, questionTokens)
				if score == 0 {
					continue
				}
				candidates = append(candidates, sentenceCandidate{
					text:  sentence,
					score: score,
					order: order,
					pages: section.Pages,
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > MaxFallbackSentences {
		candidates = candidates[:MaxFallbackSentences]
	}
	return candidates
}

// fallbackScore is the fallback-tier replacement for the section
// score: the best overlap count, zero when nothing survived.
func fallbackScore(selected []sentenceCandidate) float64 {
	best := 0
	for _, cand := range selected {
		if cand.score > best {
			best = cand.score
		}
	}
	return float64(best)
}

// isNoiseSentence drops fragments, URLs, boilerplate phrases and
// sentences that are themselves questions.
func isNoiseSentence(sentence string) bool {
	trimmed := strings.TrimSpace(sentence)
	if strings.HasSuffix(trimmed, "?") {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, phrase := range noisePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return len(strings.Fields(Normalize(trimmed))) < minSentenceTokens
}

// overlapCount counts distinct question tokens present in the
// sentence.
func overlapCount(sentence string, questionTokens map[string]struct{}) int {
	count := 0
	for token := range tokenSet(sentence) {
		if _, ok := questionTokens[token]; ok {
			count++
		}
	}
	return count
}

// mergePages unions src into dst without duplicates.
func mergePages(dst, src []int) []int {
	for _, page := range src {
		dst = appendPage(dst, page)
	}
	return dst
}

// containsToken reports whether normalized text contains token as a
// whole word.
func containsToken(normalized, token string) bool {
	for _, field := range strings.Fields(normalized) {
		if field == token {
			return true
		}
	}
	return false
}

// declarativeTransform rewrites definition- and relation-style
// questions into declarative answers. Scoring is unaffected.
func declarativeTransform(qNorm, answer string) string {
	for _, prefix := range []string{"what is ", "define "} {
		if subject := strings.TrimPrefix(qNorm, prefix); subject != qNorm && subject != "" {
			return subject + " is " + answer
		}
	}
	for _, prefix := range []string{"how is ", "how are "} {
		if subject := strings.TrimPrefix(qNorm, prefix); subject != qNorm && subject != "" {
			return subject + " are connected as follows: " + answer
		}
	}
	return answer
}
