package catalog

import "testing"

func TestParseThemeSong(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ThemeSong
		ok   bool
	}{
		{
			name: "full layout",
			raw:  `1: "Guren no Yumiya" by Linked Horizon (eps 1-13)`,
			want: ThemeSong{Kind: ThemeOpening, Sequence: 1, Title: "Guren no Yumiya", Artist: "Linked Horizon", Episodes: "1-13"},
			ok:   true,
		},
		{
			name: "no sequence",
			raw:  `"Again" by YUI`,
			want: ThemeSong{Kind: ThemeOpening, Sequence: 4, Title: "Again", Artist: "YUI"},
			ok:   true,
		},
		{
			name: "artist with parenthetical",
			raw:  `#2: "Period" by CHEMISTRY (Kaname Kawabata) (eps 27-38)`,
			want: ThemeSong{Kind: ThemeOpening, Sequence: 2, Title: "Period", Artist: "CHEMISTRY (Kaname Kawabata)", Episodes: "27-38"},
			ok:   true,
		},
		{
			name: "title only",
			raw:  `"Hologram"`,
			want: ThemeSong{Kind: ThemeOpening, Sequence: 4, Title: "Hologram"},
			ok:   true,
		},
		{
			name: "malformed",
			raw:  `  Rain by Sukima Switch  `,
			want: ThemeSong{Kind: ThemeOpening, Sequence: 4, Title: "Rain by Sukima Switch"},
			ok:   true,
		},
		{name: "blank", raw: "   ", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseThemeSong(ThemeOpening, 4, tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseThemeSong ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("ParseThemeSong(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
