package reader

import (
	"strconv"
	"strings"
)

// contentText returns the strings shown by the text operators of a decoded
// page content stream. Each text object and each explicit line move starts a
// new line. String bytes are read as Latin-1, since the stream carries no
// font encoding of its own.
func contentText(content []byte) string {
	var (
		lines   []string
		line    strings.Builder
		pending []string
		inArray bool
	)

	flush := func() {
		if s := strings.TrimRight(line.String(), " "); s != "" {
			lines = append(lines, s)
		}
		line.Reset()
	}

	lx := &contentLexer{data: content}
	for {
		tok, kind := lx.next()
		switch kind {
		case tokEOF:
			flush()
			return strings.Join(lines, "\n")
		case tokString:
			pending = append(pending, tok)
		case tokArrayStart:
			inArray = true
		case tokArrayEnd:
			inArray = false
		case tokNumber:
			// a large negative TJ adjustment is a word gap
			if inArray {
				if f, err := strconv.ParseFloat(tok, 64); err == nil && f <= -200 {
					pending = append(pending, " ")
				}
			}
		case tokOperator:
			switch tok {
			case "Tj", "TJ":
				line.WriteString(strings.Join(pending, ""))
			case "'", `"`:
				flush()
				line.WriteString(strings.Join(pending, ""))
			case "T*", "Td", "TD":
				flush()
			case "ET":
				flush()
			case "ID":
				lx.skipInlineImage()
			}
			pending = pending[:0]
		}
	}
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokNumber
	tokOperator
	tokArrayStart
	tokArrayEnd
	tokOther
)

type contentLexer struct {
	data []byte
	pos  int
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (lx *contentLexer) next() (string, tokenKind) {
	for lx.pos < len(lx.data) {
		c := lx.data[lx.pos]
		switch {
		case isSpace(c):
			lx.pos++
		case c == '%':
			for lx.pos < len(lx.data) && lx.data[lx.pos] != '\n' && lx.data[lx.pos] != '\r' {
				lx.pos++
			}
		case c == '(':
			lx.pos++
			return lx.literal(), tokString
		case c == '<':
			if lx.pos+1 < len(lx.data) && lx.data[lx.pos+1] == '<' {
				lx.pos += 2
				return "<<", tokOther
			}
			lx.pos++
			return lx.hex(), tokString
		case c == '>':
			lx.pos++
			if lx.pos < len(lx.data) && lx.data[lx.pos] == '>' {
				lx.pos++
			}
			return ">>", tokOther
		case c == '[':
			lx.pos++
			return "[", tokArrayStart
		case c == ']':
			lx.pos++
			return "]", tokArrayEnd
		case c == '/':
			lx.pos++
			return "/" + lx.regular(), tokOther
		case c == ')' || c == '{' || c == '}':
			lx.pos++
			return string(c), tokOther
		default:
			tok := lx.regular()
			if tok == "" {
				lx.pos++
				continue
			}
			if isNumber(tok) {
				return tok, tokNumber
			}
			return tok, tokOperator
		}
	}
	return "", tokEOF
}

func isNumber(tok string) bool {
	switch tok[0] {
	case '+', '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	}
	return false
}

func (lx *contentLexer) regular() string {
	start := lx.pos
	for lx.pos < len(lx.data) && !isSpace(lx.data[lx.pos]) && !isDelimiter(lx.data[lx.pos]) {
		lx.pos++
	}
	return string(lx.data[start:lx.pos])
}

// literal reads a parenthesized string; the opening paren is consumed.
func (lx *contentLexer) literal() string {
	var out []byte
	depth := 1
	for lx.pos < len(lx.data) {
		c := lx.data[lx.pos]
		lx.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return latin1(out)
			}
		case '\\':
			if lx.pos >= len(lx.data) {
				continue
			}
			e := lx.data[lx.pos]
			lx.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if lx.pos < len(lx.data) && lx.data[lx.pos] == '\n' {
					lx.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for i := 0; i < 2 && lx.pos < len(lx.data); i++ {
						d := lx.data[lx.pos]
						if d < '0' || d > '7' {
							break
						}
						v = v*8 + int(d-'0')
						lx.pos++
					}
					out = append(out, byte(v))
					continue
				}
				out = append(out, e)
			}
			continue
		}
		out = append(out, c)
	}
	return latin1(out)
}

// hex reads a <...> string; the opening bracket is consumed.
func (lx *contentLexer) hex() string {
	var (
		out  []byte
		cur  byte
		half bool
	)
	for lx.pos < len(lx.data) {
		c := lx.data[lx.pos]
		lx.pos++
		if c == '>' {
			break
		}
		v, ok := hexValue(c)
		if !ok {
			continue
		}
		if half {
			out = append(out, cur<<4|v)
		} else {
			cur = v
		}
		half = !half
	}
	if half {
		out = append(out, cur<<4)
	}
	return latin1(out)
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// skipInlineImage moves past binary inline image data up to its EI operator.
func (lx *contentLexer) skipInlineImage() {
	for lx.pos+2 <= len(lx.data) {
		if lx.data[lx.pos] == 'E' && lx.data[lx.pos+1] == 'I' &&
			lx.pos > 0 && isSpace(lx.data[lx.pos-1]) &&
			(lx.pos+2 == len(lx.data) || isSpace(lx.data[lx.pos+2])) {
			lx.pos += 2
			return
		}
		lx.pos++
	}
	lx.pos = len(lx.data)
}

func latin1(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
