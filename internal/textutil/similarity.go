package textutil

import "strings"

// CoreOverlap scores two titles by the core words they share, divided by the
// larger core-word count. It is 0 when either title has no core words.
func CoreOverlap(a, b string) float64 {
	coreA := CoreWords(a)
	coreB := CoreWords(b)
	if len(coreA) == 0 || len(coreB) == 0 {
		return 0
	}
	inB := toSet(coreB...)
	shared := 0
	for _, word := range coreA {
		if _, ok := inB[word]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(coreA), len(coreB)))
}

// WordContainment returns the fraction of the shorter title's words that are
// a substring of, or contain, some word of the longer title, together with the
// shorter title's word count. When both titles have the same number of words,
// a is treated as the shorter one.
func WordContainment(a, b string) (float64, int) {
	wordsA := strings.Fields(NormalizeTitle(a))
	wordsB := strings.Fields(NormalizeTitle(b))
	shorter, longer := wordsA, wordsB
	if len(wordsB) < len(wordsA) {
		shorter, longer = wordsB, wordsA
	}
	if len(shorter) == 0 || len(longer) == 0 {
		return 0, len(shorter)
	}
	contained := 0
	for _, word := range shorter {
		for _, other := range longer {
			if strings.Contains(other, word) || strings.Contains(word, other) {
				contained++
				break
			}
		}
	}
	return float64(contained) / float64(len(shorter)), len(shorter)
}

// SharesCoreWord reports whether the two titles have at least one core word in common.
func SharesCoreWord(a, b string) bool {
	inB := toSet(CoreWords(b)...)
	for _, word := range CoreWords(a) {
		if _, ok := inB[word]; ok {
			return true
		}
	}
	return false
}

// NormalizedSubstring reports whether either normalized title contains the
// other. Empty titles never match.
func NormalizedSubstring(a, b string) bool {
	na := NormalizeTitle(a)
	nb := NormalizeTitle(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
