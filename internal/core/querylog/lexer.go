package querylog

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokInt
	tokFloat
	tokPunct
)

type token struct {
	kind tokenKind
	text string // unescaped for strings
	pos  int
}

func (t token) is(punct string) bool {
	return t.kind == tokPunct && t.text == punct
}

// lex splits one log line into tokens. Any rune that is not part of an
// identifier, number or string becomes a single punctuation token, including
// a quote that is never closed. A "//" outside a string ends the line.
func lex(line string) []token {
	var toks []token
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case strings.HasPrefix(line[i:], commentPrefix):
			i = len(line)
		case r == '"' || r == '\'':
			text, end, err := lexString(line, i, r)
			if err != nil {
				toks = append(toks, token{kind: tokPunct, text: string(r), pos: i})
				i += size
				continue
			}
			toks = append(toks, token{kind: tokString, text: text, pos: i})
			i = end
		case isDigit(r) || (r == '-' && i+1 < len(line) && isDigit(rune(line[i+1]))):
			tok, end := lexNumber(line, i)
			toks = append(toks, tok)
			i = end
		case isIdentStart(r):
			start := i
			for i < len(line) {
				r, size = utf8.DecodeRuneInString(line[i:])
				if !isIdentPart(r) {
					break
				}
				i += size
			}
			toks = append(toks, token{kind: tokIdent, text: line[start:i], pos: start})
		default:
			toks = append(toks, token{kind: tokPunct, text: string(r), pos: i})
			i += size
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(line)})
	return toks
}

func lexString(line string, start int, quote rune) (string, int, error) {
	var b strings.Builder
	i := start + 1
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		switch {
		case r == quote:
			return b.String(), i + size, nil
		case r == '\\' && i+size < len(line):
			esc, escSize := utf8.DecodeRuneInString(line[i+size:])
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '\\', '"', '\'':
				b.WriteRune(esc)
			default:
				b.WriteRune(r)
				b.WriteRune(esc)
			}
			i += size + escSize
		default:
			b.WriteRune(r)
			i += size
		}
	}
	return "", 0, fmt.Errorf("unterminated string at offset %d", start)
}

func lexNumber(line string, start int) (token, int) {
	i := start
	if line[i] == '-' {
		i++
	}
	for i < len(line) && isDigit(rune(line[i])) {
		i++
	}
	kind := tokInt
	if i < len(line) && line[i] == '.' {
		kind = tokFloat
		i++
		for i < len(line) && isDigit(rune(line[i])) {
			i++
		}
	}
	return token{kind: kind, text: line[start:i], pos: start}, i
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
