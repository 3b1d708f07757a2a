package rdf

import "io"

// Option configures a decoder constructor. See WithBase, WithStrict
// and WithChunkSize.
type Option func(*options)

type options struct {
	base      string
	strict    bool
	chunkSize int
}

// WithBase sets the initial base IRI used to resolve relative IRIs.
// Turtle/TriG's @base/BASE directives are resolved against it. In
// RDF/XML an xml:base attribute replaces it with the attribute value
// as written; that value is not resolved against the initial base.
// The default is "", under which a
// relative IRI reference with no in-document base is passed through
// unresolved.
func WithBase(base string) Option {
	return func(o *options) { o.base = base }
}

// WithStrict enables stricter RDF/XML processing: an rdf:parseType
// value other than "Resource", "Collection" or "Literal" is reported
// as InvalidParseTypeCombination rather than silently treated as
// "Literal". It has no effect on the other formats.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithChunkSize sets the number of bytes the tokenizer's stream reader
// requests from its source per refill. The default is 8192. It has no
// effect on NewRDFXMLDecoder, which reads through encoding/xml's own
// buffering instead.
func WithChunkSize(n int) Option {
	return func(o *options) { o.chunkSize = n }
}

func newOptions(opts []Option) options {
	o := options{chunkSize: defaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decoder is the pull-based sequence of quads exposed by every
// format-specific constructor in this package (NewTurtleDecoder,
// NewTriGDecoder, NewNTDecoder, NewNQDecoder, NewRDFXMLDecoder). All
// quads from NewTurtleDecoder and NewNTDecoder have a nil Graph, since
// neither format has a notion of named graphs.
type Decoder struct {
	driver *emissionDriver
}

// Decode returns the next quad, or io.EOF once the source is
// exhausted. A malformed document yields a *ParseError. Once io.EOF
// or an error has been returned, every later call returns
// ErrAlreadyConsumed.
func (d *Decoder) Decode() (Quad, error) {
	q, ok, err := d.driver.Next()
	if !ok {
		if err == nil {
			return Quad{}, io.EOF
		}
		return Quad{}, err
	}
	return q, nil
}

// DecodeAll decodes and returns every quad in the source.
func (d *Decoder) DecodeAll() ([]Quad, error) {
	var qs []Quad
	for {
		q, err := d.Decode()
		if err == io.EOF {
			return qs, nil
		}
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
}

// Close releases the decoder's producer goroutine. It is safe to call
// after the source has already been read to completion, and a no-op
// in that case; callers that stop iterating early must call it to
// avoid leaking the goroutine.
func (d *Decoder) Close() { d.driver.Close() }

// NewTurtleDecoder returns a Decoder parsing Turtle from r.
func NewTurtleDecoder(r io.Reader, opts ...Option) *Decoder {
	o := newOptions(opts)
	l := newLexerChunked(r, false, o.chunkSize)
	return &Decoder{driver: newEmissionDriver(newTTLParser(l, false, o.base))}
}

// NewTriGDecoder returns a Decoder parsing TriG from r.
func NewTriGDecoder(r io.Reader, opts ...Option) *Decoder {
	o := newOptions(opts)
	l := newLexerChunked(r, true, o.chunkSize)
	return &Decoder{driver: newEmissionDriver(newTTLParser(l, true, o.base))}
}

// NewNTDecoder returns a Decoder parsing N-Triples from r.
func NewNTDecoder(r io.Reader, opts ...Option) *Decoder {
	o := newOptions(opts)
	l := newLineLexerChunked(r, o.chunkSize)
	return &Decoder{driver: newEmissionDriver(newNQuadsParser(l, false))}
}

// NewNQDecoder returns a Decoder parsing N-Quads from r.
func NewNQDecoder(r io.Reader, opts ...Option) *Decoder {
	o := newOptions(opts)
	l := newLineLexerChunked(r, o.chunkSize)
	return &Decoder{driver: newEmissionDriver(newNQuadsParser(l, true))}
}

// NewRDFXMLDecoder returns a Decoder parsing RDF/XML from r.
func NewRDFXMLDecoder(r io.Reader, opts ...Option) *Decoder {
	o := newOptions(opts)
	return &Decoder{driver: newEmissionDriver(newRDFXMLParser(r, o.base, o.strict))}
}
