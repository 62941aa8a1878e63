package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var punctuationReplacer = strings.NewReplacer(
	"°", " ",
	"'", " ",
	"’", " ",
	":", " ",
	"!", " ",
	"?", " ",
	".", " ",
	",", " ",
	"(", " ",
	")", " ",
	"-", " ",
)

var lowerCaser = cases.Lower(language.Und)

const romanTwoToTen = `(?:ii|iii|iv|v|vi|vii|viii|ix|x)`

// baseTitlePatterns run in order against a normalized title.
var baseTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:the\s+)?final\s+(?:season|cour)\b`),
	regexp.MustCompile(`\b(?:season|cour|series)\s+(?:\d+|` + romanTwoToTen + `)\b`),
	regexp.MustCompile(`\b\d+(?:st|nd|rd|th)\s+(?:season|cour)\b`),
	regexp.MustCompile(`\b(?:part|chapter)\s+(?:\d+|` + romanTwoToTen + `)\b`),
	regexp.MustCompile(`\b\d+(?:st|nd|rd|th)\s+(?:part|chapter)\b`),
	regexp.MustCompile(`\s+\d+$`),
	regexp.MustCompile(`\s+` + romanTwoToTen + `$`),
	regexp.MustCompile(`\b(?:ova|ona|movie|film|specials?)\b`),
}

// displaySuffixPatterns mirror baseTitlePatterns for titles that keep their
// original casing and punctuation. Format words only count as a suffix at
// the very end, bare or bracketed.
var displaySuffixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:the\s+)?final\s+(?:season|cour)\b`),
	regexp.MustCompile(`(?i)\b(?:season|cour)\s+(?:\d+|` + romanTwoToTen + `)\b`),
	regexp.MustCompile(`(?i)\b\d+(?:st|nd|rd|th)\s+(?:season|cour)\b`),
	regexp.MustCompile(`(?i)\b(?:part|chapter)\s+(?:\d+|` + romanTwoToTen + `)\b`),
	regexp.MustCompile(`(?i)\b\d+(?:st|nd|rd|th)\s+(?:part|chapter)\b`),
	regexp.MustCompile(`\s+\d+$`),
	regexp.MustCompile(`(?i)\s+` + romanTwoToTen + `$`),
	regexp.MustCompile(`(?i)\s*[(\[]\s*(?:the\s+)?(?:ova|ona|movie|film|specials?)\s*[)\]]$`),
	regexp.MustCompile(`(?i)(?:^|\s)(?:the\s+)?(?:ova|ona|movie|film|specials?)$`),
}

var (
	whitespacePattern   = regexp.MustCompile(`\s+`)
	spaceBeforeColon    = regexp.MustCompile(`\s+:`)
	repeatedSeparators  = regexp.MustCompile(`([:\-])(?:\s*[:\-])+`)
	emptyBrackets       = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
	danglingArticle     = regexp.MustCompile(`(?i)(?:^|[\s:\-]+)the$`)
	danglingPunctuation = " \t:-–"
)

// NormalizeTitle folds a raw title into its comparable form: Unicode
// compatibility normalized, lower-cased, with the punctuation set
// ° ' : ! ? . , ( ) - replaced by spaces and whitespace collapsed.
func NormalizeTitle(raw string) string {
	if raw == "" {
		return ""
	}
	folded := lowerCaser.String(norm.NFKC.String(raw))
	folded = punctuationReplacer.Replace(folded)
	return collapseWhitespace(folded)
}

// ExtractBaseTitle normalizes raw and strips season, part, numeral and
// format suffixes until nothing more changes.
func ExtractBaseTitle(raw string) string {
	current := NormalizeTitle(raw)
	for {
		next := current
		for _, pattern := range baseTitlePatterns {
			next = collapseWhitespace(pattern.ReplaceAllString(next, " "))
		}
		if next == current {
			return current
		}
		current = next
	}
}

// StripSeriesSuffixes removes season, part and numeral suffixes from a
// display title while keeping its casing and punctuation. Whatever a removal
// leaves behind (empty brackets, a trailing article, dangling separators) is
// cleaned up with it.
func StripSeriesSuffixes(raw string) string {
	current := collapseWhitespace(raw)
	for {
		next := current
		for _, pattern := range displaySuffixPatterns {
			if pattern.MatchString(next) {
				next = tidyDisplay(pattern.ReplaceAllString(next, " "))
			}
		}
		if next == current {
			return current
		}
		current = next
	}
}

func tidyDisplay(value string) string {
	value = collapseWhitespace(value)
	value = spaceBeforeColon.ReplaceAllString(value, ":")
	value = repeatedSeparators.ReplaceAllString(value, "$1")
	value = collapseWhitespace(emptyBrackets.ReplaceAllString(value, " "))
	value = strings.Trim(value, danglingPunctuation)
	value = danglingArticle.ReplaceAllString(value, "")
	return strings.Trim(value, danglingPunctuation)
}

func collapseWhitespace(value string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(value, " "))
}
