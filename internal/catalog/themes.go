package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// themePattern matches strings such as
//
//	1: "Guren no Yumiya" by Linked Horizon (eps 1-13)
var themePattern = regexp.MustCompile(`^\s*(?:#?(\d+)\s*:\s*)?"(.+?)"\s*(?:by\s+(.+?))?\s*(?:\((?:episodes?|eps?)\s*([^)]*)\))?\s*$`)

// ParseThemeSong parses a catalog theme string. Strings that do not follow
// the usual layout become a song whose title is the whole trimmed string.
// fallbackSeq is used when the string carries no sequence number. It returns
// false only for blank input.
func ParseThemeSong(kind string, fallbackSeq int, raw string) (ThemeSong, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ThemeSong{}, false
	}
	song := ThemeSong{Kind: kind, Sequence: fallbackSeq}
	match := themePattern.FindStringSubmatch(trimmed)
	if match == nil {
		song.Title = trimmed
		return song, true
	}
	if match[1] != "" {
		if seq, err := strconv.Atoi(match[1]); err == nil {
			song.Sequence = seq
		}
	}
	song.Title = strings.TrimSpace(match[2])
	song.Artist = strings.TrimSpace(match[3])
	song.Episodes = strings.TrimSpace(match[4])
	return song, true
}
