package rdf

import (
	"fmt"
	"runtime"
	"strconv"
)

// ttlParser is the TrigParser of §4.3: a recursive-descent parser
// driven by the TrigTokenizer, producing quads through the producer
// interface. isTrig selects between Turtle semantics (graph is always
// the default graph, "{"/"}"/GRAPH are rejected) and TriG semantics
// (default-graph blocks and named-graph blocks are recognized).
type ttlParser struct {
	l      *lexer
	isTrig bool

	base  string
	ns    map[string]string
	scope *blankScope

	graph   GraphName // active graph; nil is the default graph
	inBlock bool      // true while inside a TriG "{ ... }" or "GRAPH x { ... }" block

	state parseFn // current parser state function

	tokens    [3]token
	peekCount int

	current  ctxQuad
	ctxStack []ctxQuad

	quads []Quad
}

func newTTLParser(l *lexer, isTrig bool, base string) *ttlParser {
	return &ttlParser{
		l:        l,
		isTrig:   isTrig,
		base:     base,
		ns:       make(map[string]string),
		scope:    newBlankScope(),
		ctxStack: make([]ctxQuad, 0, 8),
		quads:    make([]Quad, 0, 4),
	}
}

// run implements producer: it drives the parser to completion, one
// top-level directive/block/statement cycle per iteration, handing
// every quad it assembles to sink.
func (d *ttlParser) run(sink func(Quad)) (err error) {
	defer d.recoverErr(&err)

	for {
		if d.next().typ == tokenEOF {
			return nil
		}
		d.backup()

		for d.state = parseStart; d.state != nil; {
			d.state = d.state(d)
		}

		for _, q := range d.quads {
			sink(q)
		}
		d.quads = d.quads[:0]
	}
}

// parseFn represents the state of the parser as a function that
// returns the next state.
type parseFn func(*ttlParser) parseFn

// ctxQuad is the quad currently being assembled, plus the context
// (top level, inside a collection, inside a blank node property list)
// it appears in.
type ctxQuad struct {
	Quad
	Ctx context
}

type context int

const (
	ctxTop context = iota
	ctxColl
	ctxList
)

// parseStart parses directives and block boundaries at the top level,
// falling through to triple parsing for anything else.
func parseStart(d *ttlParser) parseFn {
	if d.inBlock && d.peek().typ == tokenRCurly {
		d.next()
		d.inBlock = false
		d.graph = nil
		return nil
	}

	tok := d.next()
	switch tok.typ {
	case tokenPrefix:
		label := d.expect1As("prefix label", tokenPrefixLabel)
		iri := d.expectAs("prefix IRI", tokenIRIAbs, tokenIRIRel)
		d.ns[label.text] = d.resolveToken(iri)
		d.expect1As("directive trailing dot", tokenDot)
	case tokenSparqlPrefix:
		label := d.expect1As("prefix label", tokenPrefixLabel)
		iri := d.expectAs("prefix IRI", tokenIRIAbs, tokenIRIRel)
		d.ns[label.text] = d.resolveToken(iri)
	case tokenBase:
		iri := d.expectAs("base IRI", tokenIRIAbs, tokenIRIRel)
		d.base = d.resolveToken(iri)
		d.expect1As("directive trailing dot", tokenDot)
	case tokenSparqlBase:
		iri := d.expectAs("base IRI", tokenIRIAbs, tokenIRIRel)
		d.base = d.resolveToken(iri)
	case tokenGraph:
		if !d.isTrig {
			d.unexpected(tok, "start of statement")
		}
		d.graph = d.parseGraphLabel()
		d.expect1As("graph block start", tokenLCurly)
		d.inBlock = true
	case tokenLCurly:
		if !d.isTrig {
			d.unexpected(tok, "start of statement")
		}
		d.graph = nil
		d.inBlock = true
	case tokenEOF:
		return nil
	default:
		d.backup()
		return parseTriple
	}
	return parseStart
}

// parseGraphLabel consumes and resolves the graph name following the
// GRAPH keyword.
func (d *ttlParser) parseGraphLabel() GraphName {
	tok := d.next()
	switch tok.typ {
	case tokenIRIAbs:
		return NewIRIUnsafe(tok.text)
	case tokenIRIRel:
		return NewIRIUnsafe(resolveIRI(d.base, tok.text))
	case tokenBNode:
		return d.scope.named(tok.text)
	case tokenPrefixLabel:
		return NewIRIUnsafe(d.expandPrefixed(tok))
	default:
		d.unexpected(tok, "graph name")
		return nil
	}
}

func parseTriple(d *ttlParser) parseFn {
	return parseSubject
}

func parseSubject(d *ttlParser) parseFn {
	d.popContext()

	if d.current.Subject != nil {
		return parsePredicate
	}
	tok := d.next()
	switch tok.typ {
	case tokenIRIAbs:
		d.current.Subject = NewIRIUnsafe(tok.text)
	case tokenIRIRel:
		d.current.Subject = NewIRIUnsafe(resolveIRI(d.base, tok.text))
	case tokenBNode:
		d.current.Subject = d.scope.named(tok.text)
	case tokenAnonBNode:
		d.current.Subject = d.scope.anon()
	case tokenPrefixLabel:
		d.current.Subject = NewIRIUnsafe(d.expandPrefixed(tok))
	case tokenPropertyListStart:
		d.current.Subject = d.scope.anon()
		d.pushContext()
		d.current.Ctx = ctxList
	case tokenCollectionStart:
		if d.peek().typ == tokenCollectionEnd {
			d.next()
			d.current.Subject = RDFNil
			break
		}
		b := d.scope.anon()
		d.current.Subject = b
		d.pushContext()
		d.current.Predicate = RDFFirst
		d.current.Ctx = ctxColl
		return parseObject
	case tokenError:
		d.syntaxError(tok)
	default:
		d.unexpected(tok, "subject")
	}

	// Top-level TriG "label { ... }" shorthand: the term just parsed
	// as a subject is actually a graph name if a "{" follows, and this
	// isn't already inside a block (blocks don't nest).
	if d.isTrig && !d.inBlock && d.current.Ctx == ctxTop && d.peek().typ == tokenLCurly {
		name, ok := d.current.Subject.(GraphName)
		if !ok {
			d.unexpected(d.peek(), "graph name")
		}
		d.next()
		d.graph = name
		d.inBlock = true
		d.current.Subject = nil
		return parseStart
	}

	return parsePredicate
}

func parsePredicate(d *ttlParser) parseFn {
	if d.current.Predicate.Value() != "" {
		return parseObject
	}
	tok := d.next()
	switch tok.typ {
	case tokenIRIAbs:
		d.current.Predicate = NewIRIUnsafe(tok.text)
	case tokenIRIRel:
		d.current.Predicate = NewIRIUnsafe(resolveIRI(d.base, tok.text))
	case tokenRDFType:
		d.current.Predicate = RDFType
	case tokenPrefixLabel:
		d.current.Predicate = NewIRIUnsafe(d.expandPrefixed(tok))
	case tokenError:
		d.syntaxError(tok)
	default:
		d.unexpected(tok, "predicate")
	}

	return parseObject
}

func parseObject(d *ttlParser) parseFn {
	tok := d.next()
	switch tok.typ {
	case tokenIRIAbs:
		d.current.Object = NewIRIUnsafe(tok.text)
	case tokenIRIRel:
		d.current.Object = NewIRIUnsafe(resolveIRI(d.base, tok.text))
	case tokenBNode:
		d.current.Object = d.scope.named(tok.text)
	case tokenAnonBNode:
		d.current.Object = d.scope.anon()
	case tokenLiteral, tokenLiteral3:
		d.current.Object = d.parseLiteralObject(tok.text)
	case tokenLiteralDouble:
		d.current.Object = NewTypedLiteral(tok.text, XSDDouble)
	case tokenLiteralDecimal:
		d.current.Object = NewTypedLiteral(tok.text, XSDDecimal)
	case tokenLiteralInteger:
		d.current.Object = NewTypedLiteral(tok.text, XSDInteger)
	case tokenLiteralBoolean:
		d.current.Object = NewTypedLiteral(tok.text, XSDBoolean)
	case tokenPrefixLabel:
		d.current.Object = NewIRIUnsafe(d.expandPrefixed(tok))
	case tokenPropertyListStart:
		d.pushContext()

		b := d.scope.anon()
		d.current.Object = b
		d.emit()

		d.current.Subject = b
		d.current.Predicate = IRI{}
		d.current.Object = nil
		d.current.Ctx = ctxList
		d.pushContext()
		return nil
	case tokenCollectionStart:
		if d.peek().typ == tokenCollectionEnd {
			d.next()
			d.current.Object = RDFNil
			break
		}
		d.pushContext()

		b := d.scope.anon()
		d.current.Object = b
		d.emit()
		d.current.Subject = b
		d.current.Predicate = RDFFirst
		d.current.Object = nil
		d.current.Ctx = ctxColl
		d.pushContext()
		return nil
	case tokenError:
		d.syntaxError(tok)
	default:
		d.unexpected(tok, "object")
	}

	d.emit()

	return parseEnd
}

// parseLiteralObject parses the optional language tag or datatype
// following a quoted string token.
func (d *ttlParser) parseLiteralObject(lexical string) Literal {
	switch d.peek().typ {
	case tokenLangMarker:
		d.next()
		tag := d.expect1As("literal language", tokenLang)
		return NewLangLiteral(lexical, tag.text)
	case tokenDataTypeMarker:
		d.next()
		tok := d.expectAs("literal datatype", tokenIRIAbs, tokenIRIRel, tokenPrefixLabel)
		switch tok.typ {
		case tokenIRIAbs:
			return NewTypedLiteral(lexical, NewIRIUnsafe(tok.text))
		case tokenIRIRel:
			return NewTypedLiteral(lexical, NewIRIUnsafe(resolveIRI(d.base, tok.text)))
		default: // tokenPrefixLabel
			return NewTypedLiteral(lexical, NewIRIUnsafe(d.expandPrefixed(tok)))
		}
	default:
		return NewPlainLiteral(lexical)
	}
}

// parseEnd parses the punctuation ('.', ';', ',', ']', ')') that
// follows a complete triple, before the current quad is emitted or
// the next one is started.
func parseEnd(d *ttlParser) parseFn {
	tok := d.next()
	switch tok.typ {
	case tokenSemicolon:
		switch d.peek().typ {
		case tokenSemicolon, tokenDot:
			return parseEnd
		case tokenEOF:
			d.syntaxErrorf(tok, "expected triple termination, got end of input")
			return nil
		}
		d.current.Predicate = IRI{}
		d.current.Object = nil
		d.pushContext()
		return nil
	case tokenComma:
		d.current.Object = nil
		d.pushContext()
		return nil
	case tokenPropertyListEnd:
		d.popContext()
		if d.peek().typ == tokenDot {
			d.next()
			return d.statementDone()
		}
		if d.current.Predicate.Value() == "" {
			d.pushContext()
			return nil
		}
		return parseEnd
	case tokenCollectionEnd:
		d.current.Predicate = RDFRest
		d.current.Object = RDFNil
		d.emit()

		d.popContext()
		if d.current.Predicate.Value() == "" {
			d.pushContext()
			return nil
		}
		return parseEnd
	case tokenDot:
		if d.current.Ctx == ctxColl {
			return parseEnd
		}
		return d.statementDone()
	case tokenError:
		d.syntaxError(tok)
		return nil
	default:
		if d.current.Ctx == ctxColl {
			d.backup()

			rest := d.scope.anon()
			d.current.Predicate = RDFRest
			d.current.Object = rest
			d.emit()

			d.current.Subject = rest
			d.current.Object = nil
			d.current.Predicate = RDFFirst
			d.pushContext()
			return nil
		}
		d.syntaxErrorf(tok, "expected triple termination, got %v", tok.typ)
		return nil
	}
}

// statementDone finishes a top-level statement: inside a TriG block,
// parsing resumes looking for the next statement or the closing "}";
// at the top level it ends this cycle.
func (d *ttlParser) statementDone() parseFn {
	if d.inBlock {
		return parseStart
	}
	return nil
}

func (d *ttlParser) pushContext() {
	d.ctxStack = append(d.ctxStack, d.current)
}

func (d *ttlParser) popContext() {
	switch len(d.ctxStack) {
	case 0:
		d.current = ctxQuad{}
	case 1:
		d.current = d.ctxStack[0]
		d.ctxStack = d.ctxStack[:0]
	default:
		d.current = d.ctxStack[len(d.ctxStack)-1]
		d.ctxStack = d.ctxStack[:len(d.ctxStack)-1]
	}
}

func (d *ttlParser) emit() {
	q := d.current.Quad
	q.Graph = d.graph
	d.quads = append(d.quads, q)
}

func (d *ttlParser) expandPrefixed(tok token) string {
	ns, ok := d.ns[tok.text]
	if !ok {
		panic(newUndefinedPrefix(d.pos(tok), tok.text))
	}
	suf := d.expect1As("IRI suffix", tokenIRISuffix)
	return ns + suf.text
}

func (d *ttlParser) resolveToken(tok token) string {
	if tok.typ == tokenIRIRel {
		return resolveIRI(d.base, tok.text)
	}
	return tok.text
}

// next returns the next token.
func (d *ttlParser) next() token {
	if d.peekCount > 0 {
		d.peekCount--
	} else {
		d.tokens[0] = d.l.nextToken()
	}
	return d.tokens[d.peekCount]
}

// peek returns but does not consume the next token.
func (d *ttlParser) peek() token {
	if d.peekCount > 0 {
		return d.tokens[d.peekCount-1]
	}
	d.peekCount = 1
	d.tokens[0] = d.l.nextToken()
	return d.tokens[0]
}

// backup backs the input stream up one token.
func (d *ttlParser) backup() {
	d.peekCount++
}

func (d *ttlParser) pos(t token) Position {
	return Position{Line: t.line, Col: t.col}
}

func (d *ttlParser) syntaxError(t token) {
	panic(newLexError(d.pos(t), t.text))
}

func (d *ttlParser) syntaxErrorf(t token, format string, args ...interface{}) {
	panic(newError(InvalidToken, d.pos(t), fmt.Sprintf(format, args...)))
}

func (d *ttlParser) unexpected(t token, context string) {
	panic(newUnexpectedToken(d.pos(t), context, tokenTypeName(t.typ)))
}

// expect1As consumes the next token and guarantees it has the
// expected type.
func (d *ttlParser) expect1As(context string, expected tokenType) token {
	t := d.next()
	if t.typ != expected {
		if t.typ == tokenError {
			d.syntaxError(t)
		}
		d.unexpected(t, context)
	}
	return t
}

// expectAs consumes the next token and guarantees it has one of the
// expected types.
func (d *ttlParser) expectAs(context string, expected ...tokenType) token {
	t := d.next()
	for _, e := range expected {
		if t.typ == e {
			return t
		}
	}
	if t.typ == tokenError {
		d.syntaxError(t)
	}
	d.unexpected(t, context)
	return t
}

// recoverErr catches the *ParseError panics raised by this parser and
// binds them to errp; it does not recover runtime errors.
func (d *ttlParser) recoverErr(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	if _, ok := e.(runtime.Error); ok {
		panic(e)
	}
	*errp = e.(error)
}

func tokenTypeName(t tokenType) string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenDot:
		return "'.'"
	case tokenSemicolon:
		return "';'"
	case tokenComma:
		return "','"
	case tokenPropertyListStart:
		return "'['"
	case tokenPropertyListEnd:
		return "']'"
	case tokenCollectionStart:
		return "'('"
	case tokenCollectionEnd:
		return "')'"
	case tokenLCurly:
		return "'{'"
	case tokenRCurly:
		return "'}'"
	case tokenGraph:
		return "GRAPH"
	default:
		return "token(" + strconv.Itoa(int(t)) + ")"
	}
}
