package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"slashes become dashes", "The Long Earth 1/2", "The Long Earth 1-2"},
		{"colon becomes dash", "Project Hail Mary: A Novel", "Project Hail Mary- A Novel"},
		{"question mark dropped", "Do Androids Dream?", "Do Androids Dream"},
		{"trailing dots trimmed", "Vol. 3...", "Vol. 3"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFileName(tc.in); got != tc.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken("Brandon Sanderson"); got != "brandon_sanderson" {
		t.Fatalf("SanitizeToken = %q", got)
	}
	if got := SanitizeToken("  "); got != "unknown" {
		t.Fatalf("SanitizeToken empty = %q", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := NewFingerprint("The Way of Kings")
	b := NewFingerprint("the way of kings (unabridged)")
	c := NewFingerprint("Completely Different Title Here")

	same := CosineSimilarity(a, b)
	diff := CosineSimilarity(a, c)
	if same <= diff {
		t.Fatalf("expected matching titles to outscore mismatch: same=%f diff=%f", same, diff)
	}
	if CosineSimilarity(nil, a) != 0 {
		t.Fatal("nil fingerprint should score 0")
	}
}

func TestTokenizeFiltersShortTokens(t *testing.T) {
	tokens := Tokenize("A to the Sea of Go")
	for _, tok := range tokens {
		if len(tok) < 3 {
			t.Fatalf("short token survived: %q", tok)
		}
	}
}
