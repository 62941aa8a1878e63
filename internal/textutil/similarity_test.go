package textutil

import (
	"math"
	"slices"
	"testing"
)

func TestCoreWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Attack on Titan Season 2", []string{"attack", "titan"}},
		{"Shingeki no Kyojin: The Final Season", []string{"shingeki", "kyojin"}},
		{"Sword Art Online", []string{"sword", "art", "online"}},
		{"Bakemonogatari Hen Bakemonogatari", []string{"bakemonogatari"}},
		{"K-On!", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := CoreWords(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("CoreWords(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCoreOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Trigun", "Trigun", 1},
		{"subset", "Fullmetal Alchemist: Brotherhood", "Fullmetal Alchemist", 2.0 / 3.0},
		{"season suffix", "Attack on Titan Season 2", "Attack on Titan", 1},
		{"disjoint", "Cowboy Bebop", "Trigun", 0},
		{"empty side", "K-On!", "K-On!", 0},
		{"both empty", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoreOverlap(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CoreOverlap(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCoreOverlapSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Fullmetal Alchemist: Brotherhood", "Fullmetal Alchemist"},
		{"Sword Art Online II", "Sword Art Online: Alicization"},
		{"Monogatari Series: Second Season", "Bakemonogatari"},
		{"", "Trigun"},
	}
	for _, p := range pairs {
		ab := CoreOverlap(p[0], p[1])
		ba := CoreOverlap(p[1], p[0])
		if ab != ba {
			t.Errorf("CoreOverlap not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("CoreOverlap out of range for %q/%q: %v", p[0], p[1], ab)
		}
	}
}

func TestWordContainment(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		want      float64
		wantShort int
	}{
		{"shorter fully contained", "Fullmetal Alchemist", "Fullmetal Alchemist: Brotherhood", 1, 2},
		{"argument order", "Fullmetal Alchemist: Brotherhood", "Fullmetal Alchemist", 1, 2},
		{"substring word", "Gintama", "Gintama'", 1, 1},
		{"partial", "Sword Art Online", "Sword of the Stranger", 1.0 / 3.0, 3},
		{"equal length uses a", "Cowboy Bebop", "Space Dandy", 0, 2},
		{"empty", "", "Trigun", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, short := WordContainment(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 || short != tt.wantShort {
				t.Errorf("WordContainment(%q, %q) = (%v, %d), want (%v, %d)", tt.a, tt.b, got, short, tt.want, tt.wantShort)
			}
		})
	}
}

func TestPartialMatchHelpers(t *testing.T) {
	if !SharesCoreWord("Naruto Shippuden", "Naruto") {
		t.Error("expected shared core word")
	}
	if SharesCoreWord("Cowboy Bebop", "Trigun") {
		t.Error("expected no shared core word")
	}
	if !NormalizedSubstring("K-On!", "K-On!!") {
		t.Error("expected normalized substring match")
	}
	if NormalizedSubstring("", "Trigun") {
		t.Error("empty title must not match")
	}
}

func TestTernary(t *testing.T) {
	if Ternary(true, "yes", "no") != "yes" || Ternary(false, 1, 2) != 2 {
		t.Error("Ternary returned the wrong branch")
	}
}
