package utils

import "testing"

func TestDetermineLocale(t *testing.T) {
	supported := []string{"ja", "en", "zh", "pt", "ms"}
	cases := []struct {
		name   string
		query  string
		accept string
		want   string
	}{
		{"query wins", "zh", "en;q=0.9", "zh"},
		{"query region normalized", "pt-BR", "", "pt"},
		{"query unsupported falls through", "fr", "en", "en"},
		{"accept highest q", "", "en;q=0.5,zh;q=0.9", "zh"},
		{"accept region normalized", "", "ja-JP,en;q=0.8", "ja"},
		{"accept zero q skipped", "", "en;q=0,zh;q=0.1", "zh"},
		{"nothing matches uses default", "", "fr,de;q=0.9", "ja"},
		{"empty input uses default", "", "", "ja"},
	}
	for _, c := range cases {
		if got := DetermineLocale(c.query, c.accept, supported, "ja"); got != c.want {
			t.Fatalf("%s: DetermineLocale(%q,%q)=%q, want %q", c.name, c.query, c.accept, got, c.want)
		}
	}
}

func TestDetermineLocaleDefaultNotSupported(t *testing.T) {
	if got := DetermineLocale("", "", []string{"en", "zh"}, "fr"); got != "en" {
		t.Fatalf("DetermineLocale = %q, want first supported en", got)
	}
}
