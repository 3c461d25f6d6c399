// Package vocab holds the closed RDF vocabulary written by scrobblegraph:
// namespace prefixes, class and property terms, and the DBpedia ontology
// classes used to constrain keyword discovery.
package vocab

import (
	"sort"
	"strings"
)

// Namespaces.
const (
	DBPediaOntology  = "http://dbpedia.org/ontology/"
	DBPediaResource  = "http://dbpedia.org/resource/"
	DublinCore       = "http://purl.org/dc/elements/1.1/"
	EventOntology    = "http://ernes7a.lt/ont/"
	LocalResource    = "http://ernes7a.lt/sws/"
	FOAF             = "http://xmlns.com/foaf/0.1/"
	LastFM           = "http://purl.org/ontology/last-fm/"
	MusicBrainzAlbum = "http://musicbrainz.org/release/"
	MusicBrainzActor = "http://musicbrainz.org/artist/"
	MusicBrainzTrack = "http://musicbrainz.org/recording/"
	MusicOntology    = "http://purl.org/ontology/mo/"
	XSD              = "http://www.w3.org/2001/XMLSchema#"
)

// Prefix names.
const (
	PrefixDBPO     = "dbpo"
	PrefixDBPR     = "dbpr"
	PrefixDC       = "dc"
	PrefixEO       = "eo"
	PrefixER       = "er"
	PrefixFOAF     = "foaf"
	PrefixLast     = "last"
	PrefixMBAlbum  = "mbalbum"
	PrefixMBArtist = "mbartist"
	PrefixMBTrack  = "mbtrack"
	PrefixMO       = "mo"
	PrefixXSD      = "xsd"
)

// Classes, written in compact form.
const (
	ClassScrobbleEvent = "last:ScrobbleEvent"
	ClassSoftware      = "dbpo:Software"
	ClassTrack         = "mo:Track"
	ClassMusicArtist   = "mo:MusicArtist"
	ClassRecord        = "mo:Record"
)

// Properties, written in compact form.
const (
	PropType           = "a"
	PropDate           = "dc:date"
	PropTitle          = "dc:title"
	PropEventTrack     = "eo:track"
	PropComputingMedia = "dbpo:computingMedia"
	PropMaker          = "foaf:maker"
	PropName           = "foaf:name"
	PropTrack          = "mo:track"
)

// DatatypeDateTime is the datatype suffix for scrobble timestamps.
const DatatypeDateTime = "xsd:dateTime"

// Discovery classes, most specific first. Names are DBpedia ontology local names.
var (
	ApplicationClasses = []string{"Software", "Website"}
	AlbumClasses       = []string{"Album", "MusicalWork"}
	ArtistClasses      = []string{"Agent"}
	TrackClasses       = []string{"Song", "Single", "MusicalWork"}
)

// Prefix binds a prefix name to a namespace IRI.
type Prefix struct {
	Name      string
	Namespace string
}

// Prefixes returns every prefix declaration sorted by name. localNamespace
// replaces the default er namespace when non-empty.
func Prefixes(localNamespace string) []Prefix {
	local := strings.TrimSpace(localNamespace)
	if local == "" {
		local = LocalResource
	}
	out := []Prefix{
		{PrefixDBPO, DBPediaOntology},
		{PrefixDBPR, DBPediaResource},
		{PrefixDC, DublinCore},
		{PrefixEO, EventOntology},
		{PrefixER, local},
		{PrefixFOAF, FOAF},
		{PrefixLast, LastFM},
		{PrefixMBAlbum, MusicBrainzAlbum},
		{PrefixMBArtist, MusicBrainzActor},
		{PrefixMBTrack, MusicBrainzTrack},
		{PrefixMO, MusicOntology},
		{PrefixXSD, XSD},
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
