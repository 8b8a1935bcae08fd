package pdf

import (
	"strconv"
	"strings"
)

// Kerning adjustment (in thousandths of text space units) treated as a
// cell boundary inside a TJ array. Word spacing sits around -100 to
// -300, column gaps are far larger.
const cellKernThreshold = -600.0

// contentScanner walks a decoded PDF content stream and reconstructs
// text rows from the text-showing and text-positioning operators. It
// tracks just enough state for table detection: strings shown, cell
// breaks from large TJ kerning, row breaks from vertical moves.
type contentScanner struct {
	data []byte
	pos  int

	operands []token
	rows     [][]string
	cells    []string
	cell     strings.Builder
}

type token struct {
	str    string
	num    float64
	isStr  bool
	isNum  bool
	strs   []string
	kerned bool // array contained a kern jump past cellKernThreshold
}

// parseContentRows reconstructs text rows from a decoded content stream
func parseContentRows(content []byte) [][]string {
	s := &contentScanner{data: content}
	s.scan()
	return s.rows
}

func (s *contentScanner) scan() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case isContentSpace(c):
			s.pos++
		case c == '%':
			s.skipComment()
		case c == '(':
			s.pushString(s.readLiteralString())
		case c == '<' && s.peek(1) == '<':
			s.pos += 2 // dictionary open, operands inside are ignored
		case c == '>' && s.peek(1) == '>':
			s.pos += 2
		case c == '<':
			s.pushString(s.readHexString())
		case c == '[':
			s.readArray()
		case c == ']':
			s.pos++
		case c == '/':
			s.readName()
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			s.pushNumber(s.readNumber())
		default:
			op := s.readOperator()
			switch {
			case op == "":
				// Stray delimiter byte, drop it so the scan advances
				s.pos++
			case op == "BI":
				s.skipInlineImage()
			default:
				s.applyOperator(op)
			}
		}
	}
	s.flushRow()
}

// skipInlineImage skips a BI inline image up to its closing EI. The
// bytes after the ID operator are raw image data and may contain
// anything, including delimiters and operator-shaped sequences.
func (s *contentScanner) skipInlineImage() {
	for s.pos+1 < len(s.data) {
		if s.data[s.pos] == 'E' && s.data[s.pos+1] == 'I' &&
			(s.pos == 0 || isContentSpace(s.data[s.pos-1])) &&
			(s.pos+2 >= len(s.data) || isContentSpace(s.data[s.pos+2])) {
			s.pos += 2
			return
		}
		s.pos++
	}
	s.pos = len(s.data)
}

func (s *contentScanner) peek(n int) byte {
	if s.pos+n >= len(s.data) {
		return 0
	}
	return s.data[s.pos+n]
}

func (s *contentScanner) skipComment() {
	for s.pos < len(s.data) && s.data[s.pos] != '\n' {
		s.pos++
	}
}

// readLiteralString reads a (...) string handling escapes and nesting
func (s *contentScanner) readLiteralString() string {
	s.pos++ // consume '('
	var b strings.Builder
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch c {
		case '\\':
			s.pos++
			if s.pos >= len(s.data) {
				return b.String()
			}
			b.WriteByte(unescapeChar(s.data[s.pos]))
		case '(':
			depth++
			b.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				s.pos++
				return b.String()
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
		s.pos++
	}
	return b.String()
}

func unescapeChar(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return c
	}
}

// readHexString reads a <...> string, decoding hex pairs as latin-1
func (s *contentScanner) readHexString() string {
	s.pos++ // consume '<'
	var hex strings.Builder
	for s.pos < len(s.data) && s.data[s.pos] != '>' {
		c := s.data[s.pos]
		if isHexDigit(c) {
			hex.WriteByte(c)
		}
		s.pos++
	}
	s.pos++ // consume '>'

	h := hex.String()
	if len(h)%2 == 1 {
		h += "0"
	}

	var b strings.Builder
	for i := 0; i+1 < len(h); i += 2 {
		if n, err := strconv.ParseUint(h[i:i+2], 16, 8); err == nil {
			b.WriteByte(byte(n))
		}
	}
	return b.String()
}

// readArray reads a [...] array, collecting strings and noting kern
// jumps large enough to count as cell boundaries
func (s *contentScanner) readArray() {
	s.pos++ // consume '['
	tok := token{}
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case c == ']':
			s.pos++
			s.operands = append(s.operands, tok)
			return
		case isContentSpace(c):
			s.pos++
		case c == '(':
			tok.strs = append(tok.strs, s.readLiteralString())
		case c == '<':
			tok.strs = append(tok.strs, s.readHexString())
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			if s.readNumber() < cellKernThreshold {
				tok.strs = append(tok.strs, "\x00") // cell break marker
				tok.kerned = true
			}
		default:
			s.pos++
		}
	}
	s.operands = append(s.operands, tok)
}

func (s *contentScanner) readName() {
	s.pos++ // consume '/'
	for s.pos < len(s.data) && !isContentSpace(s.data[s.pos]) && !isDelimiter(s.data[s.pos]) {
		s.pos++
	}
}

func (s *contentScanner) readNumber() float64 {
	start := s.pos
	s.pos++
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' {
			s.pos++
		} else {
			break
		}
	}
	n, _ := strconv.ParseFloat(string(s.data[start:s.pos]), 64)
	return n
}

func (s *contentScanner) readOperator() string {
	start := s.pos
	for s.pos < len(s.data) && !isContentSpace(s.data[s.pos]) && !isDelimiter(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

func (s *contentScanner) pushString(str string) {
	s.operands = append(s.operands, token{str: str, isStr: true})
}

func (s *contentScanner) pushNumber(n float64) {
	s.operands = append(s.operands, token{num: n, isNum: true})
}

// applyOperator consumes accumulated operands for text operators
func (s *contentScanner) applyOperator(op string) {
	switch op {
	case "Tj":
		if t := s.lastString(); t != nil {
			s.cell.WriteString(t.str)
		}
	case "'", "\"":
		s.flushRow()
		if t := s.lastString(); t != nil {
			s.cell.WriteString(t.str)
		}
	case "TJ":
		s.applyTJ()
	case "Td", "TD":
		// Operands are tx ty, a vertical move starts a new row
		if ty, ok := s.numOperand(0); ok && ty != 0 {
			s.flushRow()
		}
	case "Tm":
		s.flushRow()
	case "T*":
		s.flushRow()
	case "BT", "ET":
		s.flushRow()
	}
	s.operands = s.operands[:0]
}

func (s *contentScanner) applyTJ() {
	for i := len(s.operands) - 1; i >= 0; i-- {
		tok := s.operands[i]
		if tok.strs == nil && !tok.kerned {
			continue
		}
		for _, part := range tok.strs {
			if part == "\x00" {
				s.flushCell()
			} else {
				s.cell.WriteString(part)
			}
		}
		return
	}
}

func (s *contentScanner) lastString() *token {
	for i := len(s.operands) - 1; i >= 0; i-- {
		if s.operands[i].isStr {
			return &s.operands[i]
		}
	}
	return nil
}

// numOperand returns the n-th numeric operand counted from the end,
// n=0 being the last
func (s *contentScanner) numOperand(n int) (float64, bool) {
	seen := 0
	for i := len(s.operands) - 1; i >= 0; i-- {
		if s.operands[i].isNum {
			if seen == n {
				return s.operands[i].num, true
			}
			seen++
		}
	}
	return 0, false
}

func (s *contentScanner) flushCell() {
	if text := strings.TrimSpace(s.cell.String()); text != "" {
		s.cells = append(s.cells, text)
	}
	s.cell.Reset()
}

func (s *contentScanner) flushRow() {
	s.flushCell()
	if len(s.cells) > 0 {
		s.rows = append(s.rows, s.cells)
		s.cells = nil
	}
}

func isContentSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
