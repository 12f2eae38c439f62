package document

import (
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokArray
	tokOperator
)

type token struct {
	kind  tokenKind
	text  string
	elems []token // for tokArray
}

// contentLexer tokenizes a PDF content stream far enough for text
// extraction: numbers, names, literal and hex strings, arrays, and
// operators. Dictionaries and inline images are skipped.
type contentLexer struct {
	data []byte
	pos  int
}

func newContentLexer(data []byte) *contentLexer {
	return &contentLexer{data: data}
}

func (l *contentLexer) next() (token, bool) {
	l.skipWhitespaceAndComments()
	if l.pos >= len(l.data) {
		return token{}, false
	}

	c := l.data[l.pos]
	switch {
	case c == '(':
		return token{kind: tokString, text: l.readLiteralString()}, true
	case c == '<':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			l.skipDict()
			return l.next()
		}
		return token{kind: tokString, text: l.readHexString()}, true
	case c == '[':
		return l.readArray(), true
	case c == ']':
		l.pos++
		return l.next()
	case c == '/':
		return token{kind: tokName, text: l.readName()}, true
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return token{kind: tokNumber, text: l.readNumber()}, true
	default:
		return token{kind: tokOperator, text: l.readOperator()}, true
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' || c == '[' || c == ']' ||
		c == '{' || c == '}' || c == '/' || c == '%'
}

func (l *contentLexer) skipWhitespaceAndComments() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if isWhitespace(c) {
			l.pos++
			continue
		}
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		return
	}
}

func (l *contentLexer) readLiteralString() string {
	// Skip '('.
	l.pos++
	var b strings.Builder
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch c {
		case '\\':
			l.pos++
			if l.pos >= len(l.data) {
				return b.String()
			}
			e := l.data[l.pos]
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'b', 'f':
				// Rare in text runs, dropped.
			case '0', '1', '2', '3', '4', '5', '6', '7':
				oct := []byte{e}
				for len(oct) < 3 && l.pos+1 < len(l.data) &&
					l.data[l.pos+1] >= '0' && l.data[l.pos+1] <= '7' {
					l.pos++
					oct = append(oct, l.data[l.pos])
				}
				if v, err := strconv.ParseUint(string(oct), 8, 16); err == nil {
					b.WriteByte(byte(v))
				}
			default:
				b.WriteByte(e)
			}
		case '(':
			depth++
			b.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				l.pos++
				return b.String()
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
		l.pos++
	}
	return b.String()
}

func (l *contentLexer) readHexString() string {
	// Skip '<'.
	l.pos++
	var hex strings.Builder
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		c := l.data[l.pos]
		if !isWhitespace(c) {
			hex.WriteByte(c)
		}
		l.pos++
	}
	if l.pos < len(l.data) {
		l.pos++
	}

	h := hex.String()
	if len(h)%2 == 1 {
		h += "0"
	}
	var b strings.Builder
	for i := 0; i+1 < len(h); i += 2 {
		if v, err := strconv.ParseUint(h[i:i+2], 16, 8); err == nil {
			b.WriteByte(byte(v))
		}
	}
	return b.String()
}

func (l *contentLexer) readArray() token {
	// Skip '['.
	l.pos++
	arr := token{kind: tokArray}
	for {
		l.skipWhitespaceAndComments()
		if l.pos >= len(l.data) || l.data[l.pos] == ']' {
			if l.pos < len(l.data) {
				l.pos++
			}
			return arr
		}
		tok, ok := l.next()
		if !ok {
			return arr
		}
		arr.elems = append(arr.elems, tok)
	}
}

func (l *contentLexer) readName() string {
	// Skip '/'.
	l.pos++
	start := l.pos
	for l.pos < len(l.data) && !isWhitespace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

func (l *contentLexer) readNumber() string {
	start := l.pos
	l.pos++
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			l.pos++
			continue
		}
		break
	}
	return string(l.data[start:l.pos])
}

func (l *contentLexer) readOperator() string {
	start := l.pos
	for l.pos < len(l.data) && !isWhitespace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		// Lone delimiter we do not handle ('{', '}', '>'); consume it.
		l.pos++
	}
	return string(l.data[start:l.pos])
}

func (l *contentLexer) skipDict() {
	depth := 0
	for l.pos+1 < len(l.data) {
		if l.data[l.pos] == '<' && l.data[l.pos+1] == '<' {
			depth++
			l.pos += 2
			continue
		}
		if l.data[l.pos] == '>' && l.data[l.pos+1] == '>' {
			depth--
			l.pos += 2
			if depth == 0 {
				return
			}
			continue
		}
		l.pos++
	}
	l.pos = len(l.data)
}
