package rdf

import (
	"runtime"
)

// nquadsParser is the NQuadsLineScanner of §4.4: one quad per line,
// shared between N-Triples (allowGraph false, every quad's Graph is
// nil) and N-Quads (allowGraph true, a fourth term before the final
// "." names the graph). Blank node labels are scoped per parser
// instance via scope, exactly as every other format in this package.
type nquadsParser struct {
	l          *lexer
	allowGraph bool
	scope      *blankScope

	tokens    [3]token
	peekCount int
}

func newNQuadsParser(l *lexer, allowGraph bool) *nquadsParser {
	return &nquadsParser{l: l, allowGraph: allowGraph, scope: newBlankScope()}
}

// run implements producer: it parses one line at a time until the
// underlying lexer is exhausted.
func (d *nquadsParser) run(sink func(Quad)) (err error) {
	defer d.recoverErr(&err)

	for {
		for d.peek().typ == tokenEOL {
			d.next()
		}
		if d.peek().typ == tokenEOF {
			return nil
		}

		sink(d.parseLine())
	}
}

func (d *nquadsParser) parseLine() Quad {
	var q Quad

	tok := d.expectAs("subject", tokenIRIAbs, tokenBNode)
	if tok.typ == tokenIRIAbs {
		q.Subject = NewIRIUnsafe(tok.text)
	} else {
		q.Subject = d.scope.named(tok.text)
	}

	tok = d.expect1As("predicate", tokenIRIAbs)
	q.Predicate = NewIRIUnsafe(tok.text)

	tok = d.expectAs("object", tokenIRIAbs, tokenBNode, tokenLiteral)
	switch tok.typ {
	case tokenBNode:
		q.Object = d.scope.named(tok.text)
	case tokenIRIAbs:
		q.Object = NewIRIUnsafe(tok.text)
	case tokenLiteral:
		lexical := tok.text
		switch d.peek().typ {
		case tokenLangMarker:
			d.next()
			tag := d.expect1As("literal language", tokenLang)
			q.Object = NewLangLiteral(lexical, tag.text)
		case tokenDataTypeMarker:
			d.next()
			dt := d.expect1As("literal datatype", tokenIRIAbs)
			q.Object = NewTypedLiteral(lexical, NewIRIUnsafe(dt.text))
		default:
			q.Object = NewPlainLiteral(lexical)
		}
	}

	switch d.peek().typ {
	case tokenIRIAbs:
		if !d.allowGraph {
			d.unexpected(d.peek(), "end of statement")
		}
		tok = d.next()
		q.Graph = NewIRIUnsafe(tok.text)
	case tokenBNode:
		if !d.allowGraph {
			d.unexpected(d.peek(), "end of statement")
		}
		tok = d.next()
		q.Graph = d.scope.named(tok.text)
	case tokenDot:
		// default graph
	default:
		d.unexpected(d.peek(), "graph or end of statement")
	}

	d.expect1As("'.'", tokenDot)
	d.expect1As("end of line", tokenEOL)

	return q
}

func (d *nquadsParser) next() token {
	if d.peekCount > 0 {
		d.peekCount--
	} else {
		d.tokens[0] = d.l.nextToken()
	}
	return d.tokens[d.peekCount]
}

func (d *nquadsParser) peek() token {
	if d.peekCount > 0 {
		return d.tokens[d.peekCount-1]
	}
	d.peekCount = 1
	d.tokens[0] = d.l.nextToken()
	return d.tokens[0]
}

func (d *nquadsParser) pos(t token) Position {
	return Position{Line: t.line, Col: t.col}
}

func (d *nquadsParser) unexpected(t token, context string) {
	panic(newUnexpectedToken(d.pos(t), context, tokenTypeName(t.typ)))
}

func (d *nquadsParser) expect1As(context string, expected tokenType) token {
	t := d.next()
	if t.typ != expected {
		if t.typ == tokenError {
			panic(newLexError(d.pos(t), t.text))
		}
		d.unexpected(t, context)
	}
	return t
}

func (d *nquadsParser) expectAs(context string, expected ...tokenType) token {
	t := d.next()
	for _, e := range expected {
		if t.typ == e {
			return t
		}
	}
	if t.typ == tokenError {
		panic(newLexError(d.pos(t), t.text))
	}
	d.unexpected(t, context)
	return t
}

func (d *nquadsParser) recoverErr(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	if _, ok := e.(runtime.Error); ok {
		panic(e)
	}
	*errp = e.(error)
}
