package export

import (
	"fmt"
	"strings"
	"unicode"
)

// Triple is one parsed statement. Terms keep their prefixed form (qnames
// are compared as written); literals keep surrounding double quotes so they
// are distinguishable from resources.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// parseTurtle reads the Turtle subset this package emits and the shapes
// files it validates: prefixed names, the "a" keyword, quoted string
// literals, ";" predicate lists and "[ ... ]" blank nodes. @prefix lines
// are accepted and skipped since terms stay prefixed.
func parseTurtle(text string) ([]Triple, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &turtleParser{tokens: tokens}
	return p.parse()
}

type turtleParser struct {
	tokens []string
	pos    int
	blanks int
}

func (p *turtleParser) parse() ([]Triple, error) {
	var out []Triple
	for !p.done() {
		if p.peek() == "@prefix" {
			p.skipUntil(".")
			continue
		}
		triples, err := p.statement()
		if err != nil {
			return nil, err
		}
		out = append(out, triples...)
	}
	return out, nil
}

// statement parses "<subject> <pred> <obj> (; <pred> <obj>)* ."
func (p *turtleParser) statement() ([]Triple, error) {
	subject, extra, err := p.term()
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}
	out := extra
	for {
		pred, _, err := p.term()
		if err != nil {
			return nil, fmt.Errorf("predicate after %s: %w", subject, err)
		}
		if pred == "a" {
			pred = "rdf:type"
		}
		obj, extra, err := p.term()
		if err != nil {
			return nil, fmt.Errorf("object of %s %s: %w", subject, pred, err)
		}
		out = append(out, extra...)
		out = append(out, Triple{Subject: subject, Predicate: pred, Object: obj})

		switch tok := p.next(); tok {
		case ";":
			// Shapes files often end a blank node body with "; ]" or a
			// statement with "; ." after the last pair.
			if p.peek() == "." {
				p.next()
				return out, nil
			}
			continue
		case ".":
			return out, nil
		default:
			return nil, fmt.Errorf("expected ';' or '.' after %s %s %s, got %q", subject, pred, obj, tok)
		}
	}
}

// term reads one subject/predicate/object position. A "[" opens an inline
// blank node whose own triples come back alongside its generated id.
func (p *turtleParser) term() (string, []Triple, error) {
	if p.done() {
		return "", nil, fmt.Errorf("unexpected end of input")
	}
	tok := p.next()
	if tok != "[" {
		return tok, nil, nil
	}

	p.blanks++
	id := fmt.Sprintf("_:b%d", p.blanks)
	var out []Triple
	for {
		if p.done() {
			return "", nil, fmt.Errorf("unterminated blank node %s", id)
		}
		if p.peek() == "]" {
			p.next()
			return id, out, nil
		}
		pred, _, err := p.term()
		if err != nil {
			return "", nil, err
		}
		if pred == "a" {
			pred = "rdf:type"
		}
		obj, extra, err := p.term()
		if err != nil {
			return "", nil, err
		}
		out = append(out, extra...)
		out = append(out, Triple{Subject: id, Predicate: pred, Object: obj})
		if p.peek() == ";" {
			p.next()
		}
	}
}

func (p *turtleParser) done() bool   { return p.pos >= len(p.tokens) }
func (p *turtleParser) peek() string { return p.tokens[p.pos] }

func (p *turtleParser) next() string {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *turtleParser) skipUntil(tok string) {
	for !p.done() {
		if p.next() == tok {
			return
		}
	}
}

// tokenize splits on whitespace while keeping quoted literals intact and
// treating the structural characters as standalone tokens.
func tokenize(text string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '#' && cur.Len() == 0:
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case r == '"':
			flush()
			var lit strings.Builder
			lit.WriteRune('"')
			i++
			for i < len(runes) {
				if runes[i] == '\\' && i+1 < len(runes) {
					lit.WriteRune(runes[i])
					lit.WriteRune(runes[i+1])
					i += 2
					continue
				}
				if runes[i] == '"' {
					break
				}
				lit.WriteRune(runes[i])
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("unterminated string literal")
			}
			lit.WriteRune('"')
			tokens = append(tokens, lit.String())
		case r == '[' || r == ']' || r == ';' || r == ',':
			flush()
			tokens = append(tokens, string(r))
		case r == '.' && (i+1 >= len(runes) || unicode.IsSpace(runes[i+1])) && cur.Len() == 0:
			tokens = append(tokens, ".")
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens, nil
}

func isLiteral(term string) bool {
	return strings.HasPrefix(term, `"`)
}
