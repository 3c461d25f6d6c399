package turtle

import (
	"bufio"
	"io"

	"scrobblegraph/internal/graph"
	"scrobblegraph/internal/vocab"
)

// Writer renders a store. It only reads from the store.
type Writer struct {
	store     *graph.Store
	prefixes  []vocab.Prefix
	compactor compactor
}

// NewWriter returns a Writer declaring the standard prefixes, with er bound to
// localNamespace (or the default local namespace when empty).
func NewWriter(store *graph.Store, localNamespace string) *Writer {
	prefixes := vocab.Prefixes(localNamespace)
	return &Writer{
		store:     store,
		prefixes:  prefixes,
		compactor: newCompactor(prefixes),
	}
}

// WriteTo writes the whole document to w and reports the bytes written.
func (tw *Writer) WriteTo(w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	out := &lineWriter{buf: bufio.NewWriter(counter)}

	for _, p := range tw.prefixes {
		out.line("@prefix " + p.Name + ": <" + p.Namespace + "> .")
	}
	out.line("")

	tw.writeScrobbles(out)
	tw.writeApplications(out)
	tw.writeTracks(out)
	tw.writeArtists(out)
	tw.writeAlbums(out)

	if out.err == nil {
		out.err = out.buf.Flush()
	}
	return counter.n, out.err
}

func (tw *Writer) writeScrobbles(out *lineWriter) {
	for _, s := range tw.store.Scrobbles() {
		subject := tw.compactor.resource(s.ID)
		out.triple(subject, vocab.PropType, vocab.ClassScrobbleEvent)
		if s.Date != "" {
			out.triple(subject, vocab.PropDate, dateTime(s.Date))
		}
		if !s.Track.IsZero() {
			out.triple(subject, vocab.PropEventTrack, tw.compactor.resource(s.Track))
		}
		if !s.Application.IsZero() {
			out.triple(subject, vocab.PropComputingMedia, tw.compactor.resource(s.Application))
		}
	}
	out.line("")
}

func (tw *Writer) writeApplications(out *lineWriter) {
	for _, e := range tw.store.Applications() {
		subject := tw.compactor.resource(e.URI)
		out.triple(subject, vocab.PropType, vocab.ClassSoftware)
		if e.Record.Title != "" {
			out.triple(subject, vocab.PropTitle, literal(e.Record.Title))
		}
	}
	out.line("")
}

func (tw *Writer) writeTracks(out *lineWriter) {
	for _, e := range tw.store.Tracks() {
		subject := tw.compactor.resource(e.URI)
		out.triple(subject, vocab.PropType, vocab.ClassTrack)
		if e.Record.Title != "" {
			out.triple(subject, vocab.PropTitle, literal(e.Record.Title))
		}
		if !e.Record.Maker.IsZero() {
			out.triple(subject, vocab.PropMaker, tw.compactor.resource(e.Record.Maker))
		}
	}
	out.line("")
}

func (tw *Writer) writeArtists(out *lineWriter) {
	for _, e := range tw.store.Artists() {
		subject := tw.compactor.resource(e.URI)
		out.triple(subject, vocab.PropType, vocab.ClassMusicArtist)
		if e.Record.Name != "" {
			out.triple(subject, vocab.PropName, literal(e.Record.Name))
		}
	}
	out.line("")
}

func (tw *Writer) writeAlbums(out *lineWriter) {
	for _, e := range tw.store.Albums() {
		subject := tw.compactor.resource(e.URI)
		out.triple(subject, vocab.PropType, vocab.ClassRecord)
		if e.Record.Title != "" {
			out.triple(subject, vocab.PropTitle, literal(e.Record.Title))
		}
		if !e.Record.Maker.IsZero() {
			out.triple(subject, vocab.PropMaker, tw.compactor.resource(e.Record.Maker))
		}
		for _, track := range e.Record.Tracks {
			out.triple(subject, vocab.PropTrack, tw.compactor.resource(track))
		}
	}
	out.line("")
}

// lineWriter keeps the first write error and ignores everything after it.
type lineWriter struct {
	buf *bufio.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	if _, err := lw.buf.WriteString(s); err != nil {
		lw.err = err
		return
	}
	lw.err = lw.buf.WriteByte('\n')
}

func (lw *lineWriter) triple(subject, predicate, object string) {
	lw.line(subject + " " + predicate + " " + object + " .")
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
