package textutil

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Attack on Titan", "attack on titan"},
		{"Re:Zero - Starting Life in Another World", "re zero starting life in another world"},
		{"Steins;Gate", "steins;gate"},
		{"  K-On!!  ", "k on"},
		{"JoJo's Bizarre Adventure (2012)", "jojo s bizarre adventure 2012"},
		{"Ｆｕｌｌｍｅｔａｌ　Ａｌｃｈｅｍｉｓｔ", "fullmetal alchemist"},
		{"Mushoku Tensei: Isekai Ittara Honki Dasu Part 2", "mushoku tensei isekai ittara honki dasu part 2"},
		{"Gintama°", "gintama"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeTitle(tt.in); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractBaseTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Attack on Titan Season 2", "attack on titan"},
		{"Shingeki no Kyojin: The Final Season", "shingeki no kyojin"},
		{"Kaguya-sama wa Kokurasetai 2nd Season", "kaguya sama wa kokurasetai"},
		{"Mushoku Tensei Part 2", "mushoku tensei"},
		{"Vinland Saga Season II", "vinland saga"},
		{"Overlord IV", "overlord"},
		{"Gintama 2", "gintama"},
		{"Made in Abyss Movie 3", "made in abyss"},
		{"Hellsing OVA", "hellsing"},
		{"Trigun", "trigun"},
		{"86", "86"},
		{"Season 2", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExtractBaseTitle(tt.in); got != tt.want {
				t.Errorf("ExtractBaseTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractBaseTitleIdempotent(t *testing.T) {
	inputs := []string{
		"Attack on Titan Season 2",
		"Overlord IV 2nd Season Part 3",
		"Mob Psycho 100 II",
		"Kimetsu no Yaiba Movie: Mugen Ressha-hen",
		"Sword Art Online: Alicization - War of Underworld 2nd Season",
		"",
	}
	for _, in := range inputs {
		once := ExtractBaseTitle(in)
		twice := ExtractBaseTitle(once)
		if once != twice {
			t.Errorf("ExtractBaseTitle not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestStripSeriesSuffixes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Attack on Titan Season 2", "Attack on Titan"},
		{"Shingeki no Kyojin: The Final Season", "Shingeki no Kyojin"},
		{"Kaguya-sama wa Kokurasetai 2nd Season", "Kaguya-sama wa Kokurasetai"},
		{"Kimetsu no Yaiba Movie: Mugen Ressha-hen", "Kimetsu no Yaiba Movie: Mugen Ressha-hen"},
		{"Kimi no Na wa. (Movie)", "Kimi no Na wa."},
		{"Cowboy Bebop: The Movie", "Cowboy Bebop"},
		{"Detective Conan Movie 01: The Time Bombed Skyscraper", "Detective Conan Movie 01: The Time Bombed Skyscraper"},
		{"Mushishi [Specials]", "Mushishi"},
		{"Natsume Yuujinchou (Season 2)", "Natsume Yuujinchou"},
		{"Special A", "Special A"},
		{"Overlord IV", "Overlord"},
		{"Re:Zero Season 2 Part 2", "Re:Zero"},
		{"Steins;Gate", "Steins;Gate"},
		{"OVA", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := StripSeriesSuffixes(tt.in); got != tt.want {
				t.Errorf("StripSeriesSuffixes(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
