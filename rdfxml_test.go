package rdf

import (
	"strings"
	"testing"
)

func TestRDFXMLBasic(t *testing.T) {
	const input = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/">
  <rdf:Description rdf:about="http://example.org/alice">
    <ex:name>Alice</ex:name>
    <ex:knows rdf:resource="http://example.org/bob"/>
  </rdf:Description>
</rdf:RDF>`
	dec := NewRDFXMLDecoder(strings.NewReader(input))
	got := mustDecodeAll(t, dec)

	want := []Quad{
		{Subject: NewIRIUnsafe("http://example.org/alice"), Predicate: NewIRIUnsafe("http://example.org/name"), Object: NewPlainLiteral("Alice")},
		{Subject: NewIRIUnsafe("http://example.org/alice"), Predicate: NewIRIUnsafe("http://example.org/knows"), Object: NewIRIUnsafe("http://example.org/bob")},
	}
	diffQuads(t, got, want)
}

func TestRDFXMLTypedNodeAndPropertyAttr(t *testing.T) {
	const input = `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/">
  <ex:Person rdf:about="http://example.org/bob" ex:name="Bob"/>
</rdf:RDF>`
	dec := NewRDFXMLDecoder(strings.NewReader(input))
	got := mustDecodeAll(t, dec)

	want := []Quad{
		{Subject: NewIRIUnsafe("http://example.org/bob"), Predicate: RDFType, Object: NewIRIUnsafe("http://example.org/Person")},
		{Subject: NewIRIUnsafe("http://example.org/bob"), Predicate: NewIRIUnsafe("http://example.org/name"), Object: NewPlainLiteral("Bob")},
	}
	diffQuads(t, got, want)
}

func TestRDFXMLCollection(t *testing.T) {
	const input = `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/">
  <rdf:Description rdf:about="http://example.org/s">
    <ex:p rdf:parseType="Collection">
      <rdf:Description rdf:about="http://example.org/a"/>
      <rdf:Description rdf:about="http://example.org/b"/>
    </ex:p>
  </rdf:Description>
</rdf:RDF>`
	dec := NewRDFXMLDecoder(strings.NewReader(input))
	got := mustDecodeAll(t, dec)

	if len(got) != 5 {
		t.Fatalf("got %d quads, want 5: %v", len(got), got)
	}
	last := got[len(got)-1]
	if !last.Predicate.Eq(RDFRest) || !last.Object.Eq(RDFNil) {
		t.Errorf("last quad = %v, want rdf:rest rdf:nil", last)
	}
}

func TestRDFXMLReification(t *testing.T) {
	const input = `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/">
  <rdf:Description rdf:about="http://example.org/s">
    <ex:p rdf:ID="stmt1">value</ex:p>
  </rdf:Description>
</rdf:RDF>`
	dec := NewRDFXMLDecoder(strings.NewReader(input))
	got := mustDecodeAll(t, dec)

	if len(got) != 5 {
		t.Fatalf("got %d quads, want 1 statement + 4 reification quads: %v", len(got), got)
	}
	foundStatementType := false
	for _, q := range got[1:] {
		if q.Predicate.Eq(RDFType) && q.Object.Eq(RDFStatement) {
			foundStatementType = true
		}
	}
	if !foundStatementType {
		t.Errorf("expected a rdf:type rdf:Statement reification quad, got %v", got)
	}
}

func TestRDFXMLForbidsAboutEach(t *testing.T) {
	const input = `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/">
  <rdf:Description rdf:aboutEach="http://example.org/s">
    <ex:p>value</ex:p>
  </rdf:Description>
</rdf:RDF>`
	dec := NewRDFXMLDecoder(strings.NewReader(input))
	_, err := dec.DecodeAll()
	var perr *ParseError
	if !asParseError(err, &perr) || perr.Kind != ForbiddenRdfConstruct {
		t.Fatalf("err = %v, want ForbiddenRdfConstruct", err)
	}
}

func TestRDFXMLDuplicateID(t *testing.T) {
	const input = `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/">
  <rdf:Description rdf:ID="x"><ex:p>1</ex:p></rdf:Description>
  <rdf:Description rdf:ID="x"><ex:p>2</ex:p></rdf:Description>
</rdf:RDF>`
	dec := NewRDFXMLDecoder(strings.NewReader(input))
	_, err := dec.DecodeAll()
	var perr *ParseError
	if !asParseError(err, &perr) || perr.Kind != DuplicateRdfId {
		t.Fatalf("err = %v, want DuplicateRdfId", err)
	}
}
