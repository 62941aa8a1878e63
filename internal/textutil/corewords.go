package textutil

import "strings"

// MinCoreWordLength is the shortest token kept as a core word.
const MinCoreWordLength = 3

var stopWords = toSet(
	"a", "an", "the",
	"of", "in", "on", "at", "to", "for", "with", "from", "by", "into", "onto",
	"over", "under", "about", "after", "before", "between", "through", "upon",
	"and", "or",
	"wa", "no", "hen",
)

var boilerplateWords = toSet(
	"season", "part", "final", "new", "movie", "ova", "special", "episode",
)

// CoreWords returns the meaningful tokens of title: stop words and anime
// boilerplate removed, tokens shorter than MinCoreWordLength dropped,
// duplicates removed keeping the first occurrence.
func CoreWords(title string) []string {
	tokens := strings.Fields(NormalizeTitle(title))
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if len([]rune(token)) < MinCoreWordLength {
			continue
		}
		if _, ok := stopWords[token]; ok {
			continue
		}
		if _, ok := boilerplateWords[token]; ok {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

func toSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
