package keys

import "testing"

func TestCardSlug(t *testing.T) {
	cases := map[string]string{
		"Dragão Ancião":    "dragao_anciao",
		"  Fênix-de-Fogo ": "fenix_de_fogo",
		"A  B__C":          "a_b_c",
		"!!!":              "",
	}
	for in, want := range cases {
		if got := CardSlug(in); got != want {
			t.Errorf("CardSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSynergyKey(t *testing.T) {
	if SynergyKey("  Fogo ") != "fogo" {
		t.Fatalf("expected trimmed lower-case key")
	}
}

func TestMatchupKeyOrderIndependent(t *testing.T) {
	a := MatchupKey("ABCD1234", []string{"Ana", "Bruno"})
	b := MatchupKey("ABCD1234", []string{"Bruno", "Ana"})
	if a != b {
		t.Fatalf("expected same key, got %q and %q", a, b)
	}
}
