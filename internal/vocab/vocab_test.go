package vocab

import "testing"

func TestPrefixesSortedByName(t *testing.T) {
	prefixes := Prefixes("")
	if len(prefixes) != 12 {
		t.Fatalf("expected 12 prefixes, got %d", len(prefixes))
	}
	for i := 1; i < len(prefixes); i++ {
		if prefixes[i-1].Name >= prefixes[i].Name {
			t.Fatalf("prefixes out of order: %q before %q", prefixes[i-1].Name, prefixes[i].Name)
		}
	}
	if prefixes[0].Name != PrefixDBPO || prefixes[len(prefixes)-1].Name != PrefixXSD {
		t.Fatalf("unexpected bounds: %v", prefixes)
	}
}

func TestPrefixesOverrideLocalNamespace(t *testing.T) {
	for _, p := range Prefixes("https://example.org/me/") {
		if p.Name == PrefixER && p.Namespace != "https://example.org/me/" {
			t.Fatalf("expected er override, got %q", p.Namespace)
		}
		if p.Name == PrefixEO && p.Namespace != EventOntology {
			t.Fatalf("expected eo untouched, got %q", p.Namespace)
		}
	}
}
