package turtle_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"scrobblegraph/internal/graph"
	"scrobblegraph/internal/resolve"
	"scrobblegraph/internal/turtle"
)

const prefixBlock = `@prefix dbpo: <http://dbpedia.org/ontology/> .
@prefix dbpr: <http://dbpedia.org/resource/> .
@prefix dc: <http://purl.org/dc/elements/1.1/> .
@prefix eo: <http://ernes7a.lt/ont/> .
@prefix er: <http://ernes7a.lt/sws/> .
@prefix foaf: <http://xmlns.com/foaf/0.1/> .
@prefix last: <http://purl.org/ontology/last-fm/> .
@prefix mbalbum: <http://musicbrainz.org/release/> .
@prefix mbartist: <http://musicbrainz.org/artist/> .
@prefix mbtrack: <http://musicbrainz.org/recording/> .
@prefix mo: <http://purl.org/ontology/mo/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

`

func render(t *testing.T, store *graph.Store, namespace string) string {
	t.Helper()
	var buf bytes.Buffer
	n, err := turtle.NewWriter(store, namespace).WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo reported %d bytes, wrote %d", n, buf.Len())
	}
	return buf.String()
}

func TestWriteToRoundTripDocument(t *testing.T) {
	track := graph.URI("http://musicbrainz.org/recording/66c49cfb-aaaa")
	artist := graph.URI("http://musicbrainz.org/artist/fe58d045-bbbb")
	album := graph.URI("http://musicbrainz.org/release/b05da54f-cccc")
	app := graph.URI("http://dbpedia.org/resource/Last.fm")

	store := graph.NewStore()
	store.AddScrobble(graph.Scrobble{ID: "http://ernes7a.lt/sws/1", Ordinal: 1, Date: "2015-01-18T20:57:06", Track: track, Application: app})
	store.UpsertApplication(app, graph.Application{Title: "Last.fm Scrobbler"})
	store.UpsertTrack(track, graph.Track{Title: "Bing Bada Bang", Maker: artist})
	store.UpsertArtist(artist, graph.Artist{Name: "Futumani"})
	store.UpsertAlbum(album, graph.Album{Title: "∞ EP", Maker: artist, Tracks: []graph.URI{track}})

	want := prefixBlock + `er:1 a last:ScrobbleEvent .
er:1 dc:date "2015-01-18T20:57:06"^^xsd:dateTime .
er:1 eo:track mbtrack:66c49cfb-aaaa .
er:1 dbpo:computingMedia dbpr:Last.fm .

dbpr:Last.fm a dbpo:Software .
dbpr:Last.fm dc:title "Last.fm Scrobbler" .

mbtrack:66c49cfb-aaaa a mo:Track .
mbtrack:66c49cfb-aaaa dc:title "Bing Bada Bang" .
mbtrack:66c49cfb-aaaa foaf:maker mbartist:fe58d045-bbbb .

mbartist:fe58d045-bbbb a mo:MusicArtist .
mbartist:fe58d045-bbbb foaf:name "Futumani" .

mbalbum:b05da54f-cccc a mo:Record .
mbalbum:b05da54f-cccc dc:title "∞ EP" .
mbalbum:b05da54f-cccc foaf:maker mbartist:fe58d045-bbbb .
mbalbum:b05da54f-cccc mo:track mbtrack:66c49cfb-aaaa .

`
	if got := render(t, store, ""); got != want {
		t.Fatalf("unexpected document:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteToEmptyStore(t *testing.T) {
	got := render(t, graph.NewStore(), "")
	if want := prefixBlock + strings.Repeat("\n", 5); got != want {
		t.Fatalf("unexpected empty document:\n%q", got)
	}
}

func TestWriteToOmitsEmptySlots(t *testing.T) {
	store := graph.NewStore()
	store.AddScrobble(graph.Scrobble{ID: "http://ernes7a.lt/sws/7", Ordinal: 7})
	got := render(t, store, "")
	if !strings.Contains(got, "er:7 a last:ScrobbleEvent .\n\n") {
		t.Fatalf("expected bare scrobble, got:\n%s", got)
	}
	for _, forbidden := range []string{"dc:date", "eo:track", "dbpo:computingMedia"} {
		if strings.Contains(got, "er:7 "+forbidden) {
			t.Fatalf("unexpected %s triple in:\n%s", forbidden, got)
		}
	}
}

func TestWriteToEscapesResourcesAndLiterals(t *testing.T) {
	store := graph.NewStore()
	odd := graph.URI("http://dbpedia.org/resource/Foo_(band)")
	foreign := graph.URI("http://example.org/a b")
	store.UpsertArtist(odd, graph.Artist{Name: "Tab\there \\ \"q\""})
	store.UpsertArtist(foreign, graph.Artist{Name: "x"})

	got := render(t, store, "")
	for _, want := range []string{
		`<http://dbpedia.org/resource/Foo_(band)> a mo:MusicArtist .`,
		`<http://dbpedia.org/resource/Foo_(band)> foaf:name "Tab\there \\ \"q\"" .`,
		`<http://example.org/a\u0020b> a mo:MusicArtist .`,
	} {
		if !strings.Contains(got, want+"\n") {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestWriteToCustomNamespace(t *testing.T) {
	store := graph.NewStore()
	store.AddScrobble(graph.Scrobble{ID: "https://example.org/plays/3", Ordinal: 3})
	got := render(t, store, "https://example.org/plays/")
	if !strings.Contains(got, "@prefix er: <https://example.org/plays/> .\n") {
		t.Fatalf("expected er bound to custom namespace:\n%s", got)
	}
	if !strings.Contains(got, "er:3 a last:ScrobbleEvent .\n") {
		t.Fatalf("expected compact scrobble subject:\n%s", got)
	}
}

func TestWriteToIsRepeatable(t *testing.T) {
	store := graph.NewStore()
	store.UpsertApplication("http://ernes7a.lt/sws/b", graph.Application{Title: "b"})
	store.UpsertApplication("http://ernes7a.lt/sws/A", graph.Application{Title: "A"})
	first := render(t, store, "")
	if second := render(t, store, ""); first != second {
		t.Fatal("expected identical output on repeated writes")
	}
	if strings.Index(first, "er:A a") > strings.Index(first, "er:b a") {
		t.Fatalf("expected case-folded application order:\n%s", first)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteToReportsWriteError(t *testing.T) {
	store := graph.NewStore()
	for i := range 500 {
		store.AddScrobble(graph.Scrobble{ID: graph.URI("http://ernes7a.lt/sws/" + strings.Repeat("x", i%7+1)), Ordinal: i + 1})
	}
	if _, err := turtle.NewWriter(store, "").WriteTo(failingWriter{}); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestWriteToLeadingHyphenUsesFullIRI(t *testing.T) {
	store := graph.NewStore()
	store.UpsertArtist(resolve.LocalURI("http://ernes7a.lt/sws/", "-M-"), graph.Artist{Name: "-M-"})
	got := render(t, store, "")
	if !strings.Contains(got, "<http://ernes7a.lt/sws/-M-> a mo:MusicArtist .\n") {
		t.Fatalf("expected full IRI for leading hyphen:\n%s", got)
	}
	if strings.Contains(got, "er:-M-") {
		t.Fatalf("invalid prefixed name written:\n%s", got)
	}
}
