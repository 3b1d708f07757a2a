package rdf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"runtime"
)

const (
	elAbout           = "about"
	elAboutEach       = "aboutEach"
	elAboutEachPrefix = "aboutEachPrefix"
	elAlt             = "Alt"
	elBag             = "Bag"
	elBagID           = "bagID"
	elBase            = "base"
	elCollection      = "Collection"
	elDataType        = "datatype"
	elDescription     = "Description"
	elID              = "ID"
	elLang            = "lang"
	elLi              = "li"
	elNodeID          = "nodeID"
	elParseType       = "parseType"
	elRDF             = "RDF"
	elResource        = "resource"
	elSeq             = "Seq"
	elType            = "type"
	elXMLNS           = "xmlns"

	xmlNS = `http://www.w3.org/XML/1998/namespace`
)

var rgxpNCName = regexp.MustCompile(`^[\pL_][\d\pL\pM_.-]*$`)

// xmlEvalCtx is the evaluation context attached to one XML node: the
// in-scope base IRI, subject, language and li-counter (reset per
// container per the rdf:li/rdf:_n numbering rule), and the namespace
// declarations visible at that node.
type xmlEvalCtx struct {
	Base string
	Subj Subject
	Lang string
	LiN  int
	NS   []string
}

// rdfXMLParser is an event-driven stack machine over encoding/xml's
// pull-event Decoder.Token(), producing quads (always in the default
// graph; RDF/XML has no notion of named graphs) through the producer
// interface.
type rdfXMLParser struct {
	dec     *xml.Decoder
	strict  bool
	scope   *blankScope
	seenIDs map[string]bool

	state     parseXMLFn
	nextState parseXMLFn
	ns        []string
	base      string
	tok       xml.Token
	topElem   string
	reifyID   string
	dt        *IRI
	lang      string
	current   Quad
	ctx       xmlEvalCtx
	ctxStack  []xmlEvalCtx
	depth     int

	quads []Quad
}

func newRDFXMLParser(r io.Reader, base string, strict bool) *rdfXMLParser {
	return &rdfXMLParser{
		dec:       xml.NewDecoder(r),
		strict:    strict,
		scope:     newBlankScope(),
		seenIDs:   make(map[string]bool),
		nextState: parseXMLTopElem,
		base:      base,
		ctx:       xmlEvalCtx{Base: base},
	}
}

// run implements producer, driving the XML stack machine to
// completion and handing every quad it assembles to sink. Each cycle
// starts at nextState on a fresh XML token; a cycle that does not name
// its successor continues with parseXMLPropElemOrNodeEnd. Production
// ends once a state sets nextState to nil (the closing top element).
func (d *rdfXMLParser) run(sink func(Quad)) (err error) {
	defer d.recoverErr(&err)

	for d.nextState != nil {
		d.nextXMLToken()
		d.state = d.nextState
		d.nextState = parseXMLPropElemOrNodeEnd
		for d.state != nil {
			d.state = d.state(d)
		}
	}
	for _, q := range d.quads {
		sink(q)
	}
	return nil
}

type parseXMLFn func(*rdfXMLParser) parseXMLFn

// parseXMLTopElem parses the top-level document element, usually
// rdf:RDF, though any single node element may stand alone.
func parseXMLTopElem(d *rdfXMLParser) parseXMLFn {
	switch elem := d.tok.(type) {
	case xml.StartElement:
		d.topElem = elem.Name.Space + elem.Name.Local
		d.storePrefixNS(elem)

		if as := attrXML(elem, elBase); as != nil {
			d.base = as[0].Value
			d.ctx.Base = d.base
		}
		if as := attrXMLNS(elem); as != nil {
			for _, a := range as {
				d.ns = append(d.ns, a.Value, a.Name.Local)
			}
		}

		if elem.Name.Space != rdfNSPrefix || elem.Name.Local != elRDF {
			return parseXMLNodeElem
		}

		d.nextXMLToken()
		return parseXMLNodeElem
	default:
		d.nextXMLToken()
		return parseXMLTopElem
	}
}

// parseXMLNodeElem parses node elements, establishing the subject of
// the quad unless it is an empty rdf:Description.
func parseXMLNodeElem(d *rdfXMLParser) parseXMLFn {
	switch elem := d.tok.(type) {
	case xml.StartElement:
		if elem.Name.Space == rdfNSPrefix {
			switch elem.Name.Local {
			case elDescription:
				d.storePrefixNS(elem)
				d.resolveSubjectAttrs(elem)

				if as := attrRDF(elem, elType); as != nil {
					d.current.Predicate = RDFType
					d.current.Object = NewIRIUnsafe(resolveIRI(d.ctx.Base, as[0].Value))
					d.emit()
					d.nextState = parseXMLPropElemOrNodeEnd
					return nil
				}

				if l := attrXML(elem, elLang); l != nil {
					d.ctx.Lang = l[0].Value
				}

				if len(elem.Attr) == 0 || d.current.Subject == nil {
					d.current.Subject = d.scope.anon()
				}

				if as := attrRest(elem); as != nil {
					for _, a := range as {
						d.current.Predicate = NewIRIUnsafe(a.Name.Space + a.Name.Local)
						d.current.Object = d.parseObjLiteral(a.Value)
						d.emit()
					}
					d.nextState = parseXMLPropElemOrNodeEnd
					return nil
				}

				d.nextXMLToken()
				return parseXMLPropElem
			case elBag, elSeq, elAlt:
				d.storePrefixNS(elem)
				d.pushContext()
			case elLi, elRDF, elID, elBagID, elAbout, elParseType, elResource, elNodeID, elAboutEach, elAboutEachPrefix:
				panic(newForbiddenConstruct(d.pos(), "rdf:"+elem.Name.Local))
			default:
				// valid typed node element name; handled below
			}
		}

		d.resolveSubjectAttrs(elem)
		if d.current.Subject == nil {
			d.current.Subject = d.scope.anon()
		}

		d.current.Predicate = RDFType
		d.current.Object = NewIRIUnsafe(elem.Name.Space + elem.Name.Local)
		d.emit()

		if as := attrRestWithLn(elem); as != nil {
			for _, a := range as {
				d.current.Predicate = NewIRIUnsafe(a.Name.Space + a.Name.Local)
				d.current.Object = d.parseObjLiteral(a.Value)
				d.emit()
			}
		}

		d.nextState = parseXMLPropElemOrNodeEnd
		return nil
	case xml.EndElement:
		if elem.Name.Space+elem.Name.Local == d.topElem {
			d.nextState = nil
			return nil
		}
		panic(newUnexpectedToken(d.pos(), "closing tag of "+d.topElem, elem.Name.Local))
	default:
		d.nextXMLToken()
		return parseXMLNodeElem
	}
}

// resolveSubjectAttrs resolves rdf:about/rdf:ID/rdf:nodeID into the
// current subject, enforcing their mutual exclusion and rdf:ID
// uniqueness within the document.
func (d *rdfXMLParser) resolveSubjectAttrs(elem xml.StartElement) {
	if as := attrRDF(elem, elAbout); as != nil {
		d.current.Subject = NewIRIUnsafe(resolveIRI(d.ctx.Base, as[0].Value))
	}
	if as := attrRDF(elem, elID); as != nil {
		if a := attrRDF(elem, elNodeID); a != nil {
			panic(newError(InvalidParseTypeCombination, d.pos(), "a node element cannot have both rdf:ID and rdf:nodeID"))
		}
		d.markID(as[0].Value)
		d.current.Subject = NewIRIUnsafe(resolveIRI(d.ctx.Base, "#"+as[0].Value))
	}
	if as := attrRDF(elem, elNodeID); as != nil {
		if a := attrRDF(elem, elAbout); a != nil {
			panic(newError(InvalidParseTypeCombination, d.pos(), "a node element cannot have both rdf:about and rdf:nodeID"))
		}
		d.current.Subject = d.scope.named(as[0].Value)
	}
}

func (d *rdfXMLParser) markID(id string) {
	if d.seenIDs[id] {
		panic(newDuplicateRdfId(d.pos(), id))
	}
	d.seenIDs[id] = true
}

// parseXMLPropElemOrNodeEnd parses further property elements of a
// containing node element, or its closing tag.
func parseXMLPropElemOrNodeEnd(d *rdfXMLParser) parseXMLFn {
	switch elem := d.tok.(type) {
	case xml.StartElement:
		if elem.Name.Space == rdfNSPrefix && (elem.Name.Local == elLi || isLn(elem.Name.Local)) {
			return parseXMLPropElem
		}
		if len(elem.Attr) == 0 {
			d.current.Predicate = NewIRIUnsafe(elem.Name.Space + elem.Name.Local)
			d.nextXMLToken()
			return parseXMLCharDataOrElemNode
		}
		return parseXMLPropElem
	case xml.EndElement:
		d.popContext()
		if d.current.Subject != nil {
			d.nextXMLToken()
			return parseXMLPropElemOrNodeEnd
		}
		d.nextXMLToken()
		return parseXMLNodeElem
	default:
		d.nextXMLToken()
		return parseXMLPropElemOrNodeEnd
	}
}

// parseXMLCharDataOrElemNode finds either a string literal object or a
// nested node element following an attribute-free property element.
func parseXMLCharDataOrElemNode(d *rdfXMLParser) parseXMLFn {
	var charData string

first:
	switch elem := d.tok.(type) {
	case xml.CharData:
		charData = string(elem)
	case xml.StartElement:
		d.pushContext()
		d.pushContext()
		if elem.Name.Space == rdfNSPrefix && elem.Name.Local == elDescription && len(elem.Attr) == 0 {
			b := d.scope.anon()
			d.current.Object = b
			d.emit()
			d.current.Subject = b
			d.nextState = parseXMLPropElemOrNodeEnd
			return nil
		}
		panic(newUnexpectedToken(d.pos(), "literal or rdf:Description", elem.Name.Local))
	case xml.EndElement:
		d.current.Object = d.parseObjLiteral("")
		d.emit()
		d.reifyCheck()
		d.nextState = parseXMLPropElemOrNodeEnd
		return nil
	default:
		d.nextXMLToken()
		goto first
	}

	d.nextXMLToken()

second:
	switch elem := d.tok.(type) {
	case xml.StartElement:
		d.pushContext()
		d.pushContext()

		if elem.Name.Space == rdfNSPrefix && elem.Name.Local == elDescription {
			d.storePrefixNS(elem)

			if as := attrRest(elem); as != nil {
				b := d.scope.anon()
				d.current.Object = b
				d.emit()
				d.reifyCheck()

				d.current.Subject = b
				for _, a := range as {
					d.current.Predicate = NewIRIUnsafe(a.Name.Space + a.Name.Local)
					d.current.Object = d.parseObjLiteral(a.Value)
					d.emit()
				}
				d.nextState = parseXMLPropElemOrNodeEnd
				return nil
			}
			if as := attrRDF(elem, elNodeID); as != nil {
				d.current.Object = d.scope.named(as[0].Value)
				d.emit()
				d.reifyCheck()
				d.current.Subject = d.current.Object.(Subject)
				d.nextState = parseXMLPropElemOrNodeEnd
				return nil
			}

			b := d.scope.anon()
			d.current.Object = b
			d.emit()
			d.reifyCheck()
			d.current.Subject = b
			d.nextState = parseXMLPropElemOrNodeEnd
			return nil
		}

		if as := attrRDF(elem, elAbout); as != nil {
			iri := NewIRIUnsafe(resolveIRI(d.ctx.Base, as[0].Value))
			d.current.Object = iri
			d.emit()
			d.current.Subject = iri
			d.nextState = parseXMLPropElemOrNodeEnd
			return nil
		}
		panic(newUnexpectedToken(d.pos(), "rdf:about on typed node element", elem.Name.Local))
	case xml.EndElement:
		d.current.Object = d.parseObjLiteral(charData)
		d.emit()
		d.nextState = parseXMLPropElemOrNodeEnd
		return parseXMLPropElemEnd
	default:
		d.nextXMLToken()
		goto second
	}
}

func parseXMLPropElemEnd(d *rdfXMLParser) parseXMLFn {
	switch d.tok.(type) {
	case xml.EndElement:
		d.reifyCheck()
		d.lang = ""
		return nil
	case xml.CharData, xml.Comment, xml.ProcInst:
		d.nextXMLToken()
		return parseXMLPropElemEnd
	default:
		panic(newUnexpectedToken(d.pos(), "closing tag", fmt.Sprintf("%v", d.tok)))
	}
}

// parseXMLPropElem parses a property element: rdf:li numbering,
// rdf:parseType handling, rdf:resource/rdf:nodeID shortcuts, and the
// property-attribute abbreviation.
func parseXMLPropElem(d *rdfXMLParser) parseXMLFn {
	switch elem := d.tok.(type) {
	case xml.StartElement:
		d.storePrefixNS(elem)

		if elem.Name.Space == rdfNSPrefix {
			switch elem.Name.Local {
			case elLi:
				d.ctx.LiN++
				d.current.Predicate = NewIRIUnsafe(fmt.Sprintf("%s_%d", rdfNSPrefix, d.ctx.LiN))
			case elDescription, elRDF, elID, elAbout, elBagID, elParseType, elResource, elNodeID, elAboutEach, elAboutEachPrefix:
				panic(newForbiddenConstruct(d.pos(), "rdf:"+elem.Name.Local))
			default:
				if isLn(elem.Name.Local) {
					d.current.Predicate = NewIRIUnsafe(fmt.Sprintf("%s_%s", rdfNSPrefix, elem.Name.Local[1:]))
				} else {
					d.current.Predicate = NewIRIUnsafe(elem.Name.Space + elem.Name.Local)
				}
			}
		} else {
			d.current.Predicate = NewIRIUnsafe(elem.Name.Space + elem.Name.Local)
		}

		if a := attrRDF(elem, elID); a != nil {
			d.markID(a[0].Value)
			d.reifyID = "#" + a[0].Value
		}

		if as := attrRDF(elem, elParseType); as != nil {
			switch as[0].Value {
			case "Resource":
				b := d.scope.anon()
				d.current.Object = b
				d.emit()
				d.reifyCheck()
				d.pushContext()
				d.current.Subject = b
				d.nextXMLToken()
				return parseXMLPropElemOrNodeEnd
			case elCollection:
				return parseXMLColl
			default:
				if d.strict && as[0].Value != "Literal" {
					panic(newError(InvalidParseTypeCombination, d.pos(), fmt.Sprintf("unrecognized rdf:parseType %q", as[0].Value)))
				}
				if as := attrRDF(elem, elResource); as != nil {
					panic(newError(InvalidParseTypeCombination, d.pos(), "cannot combine rdf:parseType=\"Literal\" and rdf:resource"))
				}
				if attrRest(elem) != nil {
					panic(newError(InvalidParseTypeCombination, d.pos(), "cannot combine rdf:parseType=\"Literal\" and property attributes"))
				}
				d.current.Object = d.parseXMLLiteral(elem)
				d.emit()
				d.nextState = parseXMLPropElemOrNodeEnd
				return nil
			}
		}

		if as := attrRDF(elem, elResource); as != nil {
			if a := attrRDF(elem, elNodeID); a != nil {
				panic(newError(InvalidParseTypeCombination, d.pos(), "a property element cannot have both rdf:resource and rdf:nodeID"))
			}
			d.current.Object = NewIRIUnsafe(resolveIRI(d.ctx.Base, as[0].Value))
			d.emit()
			d.reifyCheck()

			if ar := attrRest(elem); ar != nil {
				d.pushContext()
				d.current.Subject = d.current.Object.(Subject)
				for _, a := range ar {
					d.current.Predicate = NewIRIUnsafe(a.Name.Space + a.Name.Local)
					d.current.Object = d.parseObjLiteral(a.Value)
					d.emit()
				}
				d.popContext()
			}

			d.nextXMLToken()
			d.nextState = parseXMLPropElemOrNodeEnd
			return parseXMLPropElemEnd
		}

		if as := attrRDF(elem, elNodeID); as != nil {
			d.current.Object = d.scope.named(as[0].Value)
			d.emit()
			d.reifyCheck()
			d.pushContext()
			d.nextState = parseXMLPropElemOrNodeEnd
			return nil
		}

		if a := attrRDF(elem, elDataType); a != nil {
			dt := NewIRIUnsafe(resolveIRI(d.ctx.Base, a[0].Value))
			d.dt = &dt
		} else if l := attrXML(elem, elLang); l != nil {
			d.lang = l[0].Value
		}

		if as := attrRest(elem); as != nil {
			b := d.scope.anon()
			d.current.Object = b
			d.emit()
			d.pushContext()
			d.reifyCheck()

			d.current.Subject = b
			for _, a := range as {
				d.current.Predicate = NewIRIUnsafe(a.Name.Space + a.Name.Local)
				d.current.Object = d.parseObjLiteral(a.Value)
				d.emit()
			}
			d.nextState = parseXMLPropElemOrNodeEnd
			return nil
		}

		d.nextXMLToken()
		return parseXMLCharDataOrElemNode
	case xml.EndElement:
		return parseXMLPropElemOrNodeEnd
	default:
		d.nextXMLToken()
		return parseXMLPropElem
	}
}

// parseXMLColl parses parseType="Collection", expanding the contained
// node elements into the 2n+1 rdf:first/rdf:rest/rdf:nil chain.
func parseXMLColl(d *rdfXMLParser) parseXMLFn {
	b := d.scope.anon()
	d.current.Object = b
	d.emit()
	d.current.Subject = b

	startTok := d.tok.(xml.StartElement)
	tag := startTok.Name.Space + startTok.Name.Local
	first := true
outer:
	for {
		d.nextXMLToken()
		switch elem := d.tok.(type) {
		case xml.StartElement:
			if elem.Name.Space != rdfNSPrefix || elem.Name.Local != elDescription {
				panic(newUnexpectedToken(d.pos(), "rdf:Description", elem.Name.Local))
			}
			a := attrRDF(elem, elAbout)
			if a == nil {
				panic(newUnexpectedToken(d.pos(), "rdf:about", "none"))
			}
			if first {
				d.current.Predicate = RDFFirst
				d.current.Object = NewIRIUnsafe(a[0].Value)
				d.emit()
				first = false
			} else {
				next := d.scope.anon()
				d.current.Predicate = RDFRest
				d.current.Object = next
				d.emit()

				d.current.Subject = next
				d.current.Predicate = RDFFirst
				d.current.Object = NewIRIUnsafe(a[0].Value)
				d.emit()
			}
		case xml.EndElement:
			if elem.Name.Space+elem.Name.Local == tag {
				break outer
			}
		default:
			continue outer
		}
	}

	d.current.Predicate = RDFRest
	d.current.Object = RDFNil
	d.emit()

	return nil
}

// parseObjLiteral builds the Literal object for character data,
// honoring the in-scope rdf:datatype/xml:lang.
func (d *rdfXMLParser) parseObjLiteral(data string) Literal {
	if d.dt != nil {
		l := NewTypedLiteral(data, *d.dt)
		d.dt = nil
		return l
	}
	if d.lang != "" {
		return NewLangLiteral(data, d.lang)
	}
	if d.ctx.Lang != "" {
		return NewLangLiteral(data, d.ctx.Lang)
	}
	return NewPlainLiteral(data)
}

// parseXMLLiteral assembles an rdf:parseType="Literal" XML literal,
// re-declaring any namespaces it uses so the result is self-contained.
func (d *rdfXMLParser) parseXMLLiteral(elem xml.StartElement) Literal {
	var b bytes.Buffer
	curTok := elem.Name.Space + elem.Name.Local
	prefixes := make(map[string]struct{})
parseLiteral:
	for {
		d.nextXMLToken()
		switch elem := d.tok.(type) {
		case xml.StartElement:
			b.WriteString("<")
			if elem.Name.Space != "" {
				b.WriteString(d.getPrefix(elem.Name.Space))
				b.WriteString(":")
				b.WriteString(elem.Name.Local)
				if _, ok := prefixes[elem.Name.Space]; !ok {
					fmt.Fprintf(&b, " xmlns:%s=%q", d.getPrefix(elem.Name.Space), elem.Name.Space)
					prefixes[elem.Name.Space] = struct{}{}
				}
			} else {
				b.WriteString(elem.Name.Local)
			}
			for _, a := range elem.Attr {
				b.WriteString(" ")
				if a.Name.Space != "" {
					b.WriteString(d.getPrefix(a.Name.Space))
					b.WriteString(":")
					b.WriteString(a.Name.Local)
					if _, ok := prefixes[a.Name.Space]; !ok {
						fmt.Fprintf(&b, " xmlns:%s=%q", d.getPrefix(a.Name.Space), a.Name.Space)
						prefixes[a.Name.Space] = struct{}{}
					}
				} else {
					b.WriteString(a.Name.Local)
				}
				fmt.Fprintf(&b, "=%q", a.Value)
			}
			b.WriteString(">")
		case xml.EndElement:
			if elem.Name.Space+elem.Name.Local == curTok {
				break parseLiteral
			}
			b.WriteString("</")
			if elem.Name.Space != "" {
				b.WriteString(d.getPrefix(elem.Name.Space))
				b.WriteString(":")
			}
			b.WriteString(elem.Name.Local)
			b.WriteString(">")
		case xml.CharData:
			b.Write(elem)
		default:
			panic(newUnexpectedToken(d.pos(), "XML literal content", fmt.Sprintf("%v", elem)))
		}
	}
	return NewTypedLiteral(b.String(), RDFXMLLiteral)
}

// reifyCheck emits the four rdf:ID reification triples if a property
// element carried one.
func (d *rdfXMLParser) reifyCheck() {
	if d.reifyID == "" {
		return
	}
	iri := NewIRIUnsafe(resolveIRI(d.ctx.Base, d.reifyID))
	d.quads = append(d.quads,
		Quad{Subject: iri, Predicate: RDFType, Object: RDFStatement},
		Quad{Subject: iri, Predicate: RDFSubject, Object: d.current.Subject.(Object)},
		Quad{Subject: iri, Predicate: RDFPredicate, Object: d.current.Predicate},
		Quad{Subject: iri, Predicate: RDFObject, Object: d.current.Object},
	)
	d.reifyID = ""
}

func (d *rdfXMLParser) getPrefix(ns string) string {
	for i := 0; i < len(d.ctx.NS); i += 2 {
		if d.ctx.NS[i] == ns {
			return d.ctx.NS[i+1]
		}
	}
	for i := 0; i < len(d.ns); i += 2 {
		if d.ns[i] == ns {
			return d.ns[i+1]
		}
	}
	panic(newError(InvalidToken, d.pos(), fmt.Sprintf("no prefix found for namespace: %q", ns)))
}

func (d *rdfXMLParser) storePrefixNS(elem xml.StartElement) {
	if as := attrXMLNS(elem); as != nil {
		for _, a := range as {
			d.ctx.NS = append(d.ctx.NS, a.Value, a.Name.Local)
		}
	}
	if as := attrXML(elem, elBase); as != nil {
		d.ctx.Base = as[0].Value
	}
}

func (d *rdfXMLParser) pushContext() {
	d.ctx.Subj = d.current.Subject
	d.ctxStack = append(d.ctxStack, d.ctx)
	d.depth++
	d.ctx.LiN = 0
}

func (d *rdfXMLParser) popContext() {
	if d.depth > 0 {
		d.depth--
	}
	switch len(d.ctxStack) {
	case 0:
		d.ctx = xmlEvalCtx{Base: d.base}
		d.current.Subject = nil
	case 1:
		d.ctx = d.ctxStack[0]
		d.current.Subject = d.ctxStack[0].Subj
		d.ctxStack = d.ctxStack[:0]
	default:
		d.ctx = d.ctxStack[len(d.ctxStack)-1]
		d.current.Subject = d.ctx.Subj
		d.ctxStack = d.ctxStack[:len(d.ctxStack)-1]
	}
}

func (d *rdfXMLParser) emit() {
	d.quads = append(d.quads, d.current)
}

func (d *rdfXMLParser) pos() Position {
	return Position{Depth: d.depth + 1}
}

func (d *rdfXMLParser) recoverErr(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	if _, ok := e.(runtime.Error); ok {
		panic(e)
	}
	*errp = e.(error)
}

func (d *rdfXMLParser) nextXMLToken() {
	tok, err := d.dec.Token()
	if err != nil {
		if err == io.EOF {
			panic(newError(UnterminatedConstruct, d.pos(), "unexpected end of document"))
		}
		panic(newError(InvalidEncoding, d.pos(), err.Error()))
	}
	d.tok = xml.CopyToken(tok)
}

// isLn reports whether s matches rdf:_N (N >= 1).
func isLn(s string) bool {
	if len(s) < 2 || s[0] != '_' {
		return false
	}
	if s[1] < '1' || s[1] > '9' {
		return false
	}
	for _, r := range s[2:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func attrRDF(e xml.StartElement, lname string) []xml.Attr {
	var as []xml.Attr
	for _, a := range e.Attr {
		if a.Name.Space != rdfNSPrefix {
			continue
		}
		switch a.Name.Local {
		case lname:
			if lname == elNodeID || lname == elID {
				if !rgxpNCName.MatchString(a.Value) {
					panic(newError(InvalidToken, Position{}, fmt.Sprintf("rdf:%s is not a valid XML NCName: %q", a.Name.Local, a.Value)))
				}
			}
			as = append(as, a)
		case elLi:
			panic(newForbiddenConstruct(Position{}, "rdf:"+a.Name.Local+" as attribute"))
		}
	}
	return as
}

func attrXMLNS(e xml.StartElement) []xml.Attr {
	var as []xml.Attr
	for _, a := range e.Attr {
		if a.Name.Space == elXMLNS {
			as = append(as, a)
		}
	}
	return as
}

func attrXML(e xml.StartElement, lname string) []xml.Attr {
	for _, a := range e.Attr {
		if a.Name.Space == xmlNS && a.Name.Local == lname {
			return []xml.Attr{a}
		}
	}
	return nil
}

// attrRest filters out xml/rdf syntax attributes, leaving those
// assumed to be string-literal property values on the containing
// element — the property-attribute abbreviation.
func attrRest(e xml.StartElement) []xml.Attr {
	var as []xml.Attr
	for _, a := range e.Attr {
		if a.Name.Space == rdfNSPrefix {
			switch a.Name.Local {
			case elAbout, elParseType, elResource, elDataType, elLi, elType:
				continue
			case elID, elNodeID:
				if !rgxpNCName.MatchString(a.Value) {
					panic(newError(InvalidToken, Position{}, fmt.Sprintf("rdf:%s is not a valid XML NCName: %q", a.Name.Local, a.Value)))
				}
				continue
			case elAboutEach, elAboutEachPrefix, elBagID:
				panic(newForbiddenConstruct(Position{}, "rdf:"+a.Name.Local))
			default:
				if isLn(a.Name.Local) {
					continue
				}
				as = append(as, a)
			}
			continue
		}
		if a.Name.Space == xmlNS || a.Name.Space == elXMLNS || a.Name.Local == elXMLNS || a.Name.Space == "" {
			continue
		}
		as = append(as, a)
	}
	return as
}

// attrRestWithLn is like attrRest but also keeps rdf:_n attributes.
func attrRestWithLn(e xml.StartElement) []xml.Attr {
	var as []xml.Attr
	for _, a := range e.Attr {
		if a.Name.Space == rdfNSPrefix {
			switch a.Name.Local {
			case elAbout, elParseType, elResource, elDataType, elLi, elType:
				continue
			case elID, elNodeID:
				if !rgxpNCName.MatchString(a.Value) {
					panic(newError(InvalidToken, Position{}, fmt.Sprintf("rdf:%s is not a valid XML NCName: %q", a.Name.Local, a.Value)))
				}
				continue
			case elAboutEach, elAboutEachPrefix, elBagID:
				panic(newForbiddenConstruct(Position{}, "rdf:"+a.Name.Local))
			default:
				as = append(as, a)
			}
			continue
		}
		if a.Name.Space == xmlNS || a.Name.Space == elXMLNS || a.Name.Local == elXMLNS {
			continue
		}
		as = append(as, a)
	}
	return as
}
