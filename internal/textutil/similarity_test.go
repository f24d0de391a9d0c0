package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarityIdenticalText(t *testing.T) {
	a := NewFingerprint("The God in the Bowl")
	b := NewFingerprint("The God in the Bowl")
	if sim := CosineSimilarity(a, b); math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("identical text similarity = %f, want 1.0", sim)
	}
}

func TestCosineSimilarityDisjointText(t *testing.T) {
	a := NewFingerprint("Amazing Spider-Man")
	b := NewFingerprint("Detective Comics")
	if sim := CosineSimilarity(a, b); sim != 0 {
		t.Errorf("disjoint text similarity = %f, want 0", sim)
	}
}

func TestCosineSimilarityNilFingerprint(t *testing.T) {
	a := NewFingerprint("Saga")
	if sim := CosineSimilarity(a, nil); sim != 0 {
		t.Errorf("nil fingerprint similarity = %f, want 0", sim)
	}
	if sim := CosineSimilarity(nil, nil); sim != 0 {
		t.Errorf("nil fingerprints similarity = %f, want 0", sim)
	}
}

func TestCosineSimilarityPunctuationInsensitive(t *testing.T) {
	a := NewFingerprint("Amazing Spider-Man")
	b := NewFingerprint("amazing spider man")
	if sim := CosineSimilarity(a, b); math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("punctuation variant similarity = %f, want 1.0", sim)
	}
}

func TestTokenizeKeepsShortTokens(t *testing.T) {
	tokens := Tokenize("X-Men '92")
	want := []string{"x", "men", "92"}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize returned %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, tokens[i], want[i])
		}
	}
}

func TestNewWeightedFingerprintDropsNonPositive(t *testing.T) {
	fp := NewWeightedFingerprint(map[string]float64{"the": 0, "bowl": 1})
	if fp.TokenCount() != 1 {
		t.Errorf("TokenCount = %d, want 1", fp.TokenCount())
	}
	if fp := NewWeightedFingerprint(map[string]float64{"the": 0}); fp != nil {
		t.Error("expected nil fingerprint when all weights dropped")
	}
}

func TestNormalizeForComparison(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Amazing Spider-Man", "amazingspiderman"},
		{"Cloak & Dagger", "cloakanddagger"},
		{"  ", ""},
		{"Batman '66", "batman66"},
	}
	for _, tc := range cases {
		if got := NormalizeForComparison(tc.input); got != tc.want {
			t.Errorf("NormalizeForComparison(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := CollapseWhitespace("  the   god\tin the bowl "); got != "the god in the bowl" {
		t.Errorf("CollapseWhitespace = %q", got)
	}
}
