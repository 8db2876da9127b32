package edue

import (
	"regexp"
	"strings"
)

// Stopwords dropped from question keywords: articles, common
// interrogatives, instruction verbs and self-referential fillers.
var stopwords = map[string]struct{}{
	"what": {}, "who": {}, "when": {}, "where": {}, "which": {}, "why": {}, "how": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "the": {}, "a": {}, "an": {},
	"of": {}, "to": {}, "in": {}, "for": {}, "and": {}, "or": {},
	"explain": {}, "describe": {}, "define": {}, "defined": {}, "definition": {},
	"this": {}, "document": {},
}

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[.!?]\s+`)
)

// Normalize lower-cases text, strips everything outside [a-z0-9 ],
// collapses whitespace runs and trims. Pure function of its input.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = nonAlnumRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Keywords returns the question's content tokens in order: normalized,
// stopwords removed, tokens of length <= 2 dropped.
func Keywords(question string) []string {
	fields := strings.Fields(Normalize(question))
	out := make([]string, 0, len(fields))
	for _, token := range fields {
		if len(token) <= 2 {
			continue
		}
		if _, skip := stopwords[token]; skip {
			continue
		}
		out = append(out, token)
	}
	return out
}

// tokenSet normalizes text and returns its distinct tokens.
func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(Normalize(text))
	set := make(map[string]struct{}, len(fields))
	for _, token := range fields {
		set[token] = struct{}{}
	}
	return set
}

// splitSentences collapses whitespace and splits on terminal
// punctuation followed by a space, keeping the punctuation with the
// sentence it ends.
func splitSentences(text string) []string {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	locs := sentenceRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	out := make([]string, 0, len(locs)+1)
	start := 0
	for _, loc := range locs {
		// loc[0]+1 keeps the terminal punctuation character.
		out = append(out, strings.TrimSpace(text[start:loc[0]+1]))
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// SimilarityRatio is a longest-matching-blocks string similarity in
// [0,1]: twice the total matched length over the combined length.
// Symmetric, 1 for identical strings, 0 against an empty string.
func SimilarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	matched := matchingBlocksTotal([]rune(a), []rune(b))
	return 2.0 * float64(matched) / float64(len([]rune(a))+len([]rune(b)))
}

// matchingBlocksTotal sums the sizes of matching blocks found by
// recursively taking the longest common substring and matching the
// pieces to its left and right.
func matchingBlocksTotal(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingBlocksTotal(a[:ai], b[:bi])
	total += matchingBlocksTotal(a[ai+size:], b[bi+size:])
	return total
}

// longestMatch finds the leftmost longest common substring of a and b,
// returning its start offsets and length.
func longestMatch(a, b []rune) (int, int, int) {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	bestA, bestB, bestSize := 0, 0, 0
	j2len := make(map[int]int)
	for i, r := range a {
		newJ2len := make(map[int]int)
		for _, j := range b2j[r] {
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestSize {
				bestA, bestB, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}
	return bestA, bestB, bestSize
}
