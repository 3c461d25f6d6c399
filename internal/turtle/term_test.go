package turtle

import (
	"testing"

	"scrobblegraph/internal/graph"
	"scrobblegraph/internal/vocab"
)

func TestCompactorResource(t *testing.T) {
	c := newCompactor(vocab.Prefixes(""))
	tests := []struct {
		uri  string
		want string
	}{
		{"http://ernes7a.lt/sws/145105", "er:145105"},
		{"http://ernes7a.lt/sws/%E2%88%9E_EP", "er:%E2%88%9E_EP"},
		{"http://ernes7a.lt/sws/100%25_%28live%29", "er:100%25_%28live%29"},
		{"http://dbpedia.org/resource/Last.fm", "dbpr:Last.fm"},
		{"http://dbpedia.org/resource/AC/DC", "<http://dbpedia.org/resource/AC/DC>"},
		{"http://dbpedia.org/resource/Trailing.", "<http://dbpedia.org/resource/Trailing.>"},
		{"http://ernes7a.lt/sws/bad%2", "<http://ernes7a.lt/sws/bad%2>"},
		{"http://ernes7a.lt/sws/-M-", "<http://ernes7a.lt/sws/-M->"},
		{"http://ernes7a.lt/sws/A-ha", "er:A-ha"},
		{"http://ernes7a.lt/sws/:colon", "er::colon"},
		{"http://dbpedia.org/resource/", "<http://dbpedia.org/resource/>"},
		{"http://example.org/x", "<http://example.org/x>"},
		{"http://example.org/{x}", `<http://example.org/\u007Bx\u007D>`},
		{"http://example.org/a b", `<http://example.org/a\u0020b>`},
	}
	for _, tt := range tests {
		if got := c.resource(graph.URI(tt.uri)); got != tt.want {
			t.Errorf("resource(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestLiteralEscapes(t *testing.T) {
	if got, want := literal("a\"b\\c\nd\re\tf"), `"a\"b\\c\nd\re\tf"`; got != want {
		t.Fatalf("literal = %s, want %s", got, want)
	}
	if got, want := dateTime("2015-01-18T20:57:06"), `"2015-01-18T20:57:06"^^xsd:dateTime`; got != want {
		t.Fatalf("dateTime = %s, want %s", got, want)
	}
}
