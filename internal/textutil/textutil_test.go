package textutil

import "testing"

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`The "Best" Song`, "The Best Song"},
		{`""`, ""},
		{"no quotes", "no quotes"},
		{`  "padded"  `, "  padded  "},
	}
	for _, tt := range tests {
		if got := StripQuotes(tt.in); got != tt.want {
			t.Errorf("StripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripAnnotations(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Song (Remastered 2011)", "Song"},
		{"Song [Live]", "Song"},
		{"  Album (Deluxe) [Bonus]  ", "Album"},
		{"Mixed (Live [2009])", "Mixed"},
		{"Plain Name", "Plain Name"},
		{"(Intro)", ""},
		{"Open (never closed", "Open (never closed"},
		{"Weird [a) b]", "Weird  b]"},
	}
	for _, tt := range tests {
		if got := StripAnnotations(tt.in); got != tt.want {
			t.Errorf("StripAnnotations(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldKey(t *testing.T) {
	if got := FoldKey("Spotify"); got != "spotify" {
		t.Fatalf("FoldKey = %q", got)
	}
	if got := FoldKey("ÉCOUTE"); got != "écoute" {
		t.Fatalf("FoldKey = %q", got)
	}
}

func TestCompareFolded(t *testing.T) {
	if CompareFolded("apple", "Banana") >= 0 {
		t.Fatal("expected apple before Banana")
	}
	if CompareFolded("Apple", "apple") >= 0 {
		t.Fatal("expected exact-text tie break to put Apple first")
	}
	if CompareFolded("same", "same") != 0 {
		t.Fatal("expected equal strings to compare equal")
	}
}
