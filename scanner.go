package logsim

import (
	"strings"
	"unicode"
)

// SymbolType identifies the lexical class of a Symbol.
type SymbolType int

// Symbol types.
const (
	EOF SymbolType = iota
	Comma
	Semicolon
	Greater
	OpenParen
	CloseParen
	Dot
	Colon
	Number
	Keyword
	Name
	InputPin // I<digits>
	Invalid  // unrecognized character, scanning continues
)

var symbolNames = [...]string{
	EOF:        "end of file",
	Comma:      "','",
	Semicolon:  "';'",
	Greater:    "'>'",
	OpenParen:  "'('",
	CloseParen: "')'",
	Dot:        "'.'",
	Colon:      "':'",
	Number:     "number",
	Keyword:    "keyword",
	Name:       "name",
	InputPin:   "input pin",
	Invalid:    "invalid character",
}

func (t SymbolType) String() string {
	if int(t) < len(symbolNames) {
		return symbolNames[t]
	}
	return "unknown symbol"
}

// Kw identifies one of the fixed language keywords. Keywords are a closed
// set so the parser can switch over them exhaustively.
type Kw int

// Keywords.
const (
	KwNone Kw = iota
	KwDevices
	KwConnections
	KwMonitor
	KwClock
	KwSwitch
	KwAnd
	KwNand
	KwOr
	KwNor
	KwDtype
	KwXor
	KwRC
	KwQ
	KwQbar
	KwClk
	KwData
	KwSet
	KwClear
)

var keywords = map[string]Kw{
	"DEVICES":     KwDevices,
	"CONNECTIONS": KwConnections,
	"MONITOR":     KwMonitor,
	"CLOCK":       KwClock,
	"SWITCH":      KwSwitch,
	"AND":         KwAnd,
	"NAND":        KwNand,
	"OR":          KwOr,
	"NOR":         KwNor,
	"DTYPE":       KwDtype,
	"XOR":         KwXor,
	"RC":          KwRC,
	"Q":           KwQ,
	"QBAR":        KwQbar,
	"CLK":         KwClk,
	"DATA":        KwData,
	"SET":         KwSet,
	"CLEAR":       KwClear,
}

// A Symbol is one lexical token of a definition file, with its 1-based
// source position attached.
type Symbol struct {
	Type SymbolType
	Kw   Kw     // keyword symbols only
	ID   NameID // name symbols only
	Num  int    // number value, or input pin index for InputPin
	Text string // raw text; for Invalid, the offending character
	Pos  Pos
}

var punct = map[rune]SymbolType{
	',': Comma,
	';': Semicolon,
	'>': Greater,
	'(': OpenParen,
	')': CloseParen,
	'.': Dot,
	':': Colon,
}

// A Scanner turns definition-file text into a sequence of Symbols, skipping
// whitespace and comments. A '#' discards the remainder of its line; a line
// whose entire content is "###" toggles a block-comment region. The scanner
// is not restartable mid-stream: create a new one to rescan a source.
type Scanner struct {
	names *Names
	lines [][]rune // comment-stripped source
	li    int      // 0-based current line
	ci    int      // 0-based current column
}

// NewScanner returns a Scanner over source. Identifiers are interned in
// names as they are encountered.
func NewScanner(source string, names *Names) *Scanner {
	raw := strings.Split(source, "\n")
	lines := make([][]rune, len(raw))
	block := false
	for i, l := range raw {
		l = strings.TrimRight(l, "\r")
		switch {
		case strings.TrimSpace(l) == "###":
			block = !block
			lines[i] = nil
		case block:
			lines[i] = nil
		default:
			if j := strings.IndexByte(l, '#'); j >= 0 {
				l = l[:j]
			}
			lines[i] = []rune(l)
		}
	}
	return &Scanner{names: names, lines: lines}
}

// Symbol returns the next symbol in the source. Once the source is
// exhausted it returns EOF symbols forever.
func (s *Scanner) Symbol() Symbol {
	s.skipSpace()
	sym := Symbol{Pos: Pos{Line: s.li + 1, Col: s.ci + 1}}
	r, ok := s.peek()
	if !ok {
		sym.Type = EOF
		return sym
	}
	switch {
	case unicode.IsLetter(r):
		text := s.scanWhile(isAlnum)
		sym.Text = text
		if kw, ok := keywords[text]; ok {
			sym.Type, sym.Kw = Keyword, kw
		} else if n, ok := pinIndex(text); ok {
			sym.Type, sym.Num = InputPin, n
		} else {
			sym.Type, sym.ID = Name, s.names.Intern(text)
		}
	case unicode.IsDigit(r):
		text := s.scanWhile(unicode.IsDigit)
		sym.Type = Number
		sym.Text = text
		for _, d := range text {
			sym.Num = sym.Num*10 + int(d-'0')
		}
	default:
		s.advance()
		if t, ok := punct[r]; ok {
			sym.Type = t
			sym.Text = string(r)
		} else {
			sym.Type = Invalid
			sym.Text = string(r)
		}
	}
	return sym
}

// pinIndex reports whether text is an input pin token I<digits> and returns
// its index.
func pinIndex(text string) (int, bool) {
	if len(text) < 2 || text[0] != 'I' {
		return 0, false
	}
	n := 0
	for _, r := range text[1:] {
		if !unicode.IsDigit(r) {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *Scanner) peek() (rune, bool) {
	if s.li >= len(s.lines) {
		return 0, false
	}
	if s.ci >= len(s.lines[s.li]) {
		return 0, false
	}
	return s.lines[s.li][s.ci], true
}

func (s *Scanner) advance() {
	if s.li >= len(s.lines) {
		return
	}
	if s.ci < len(s.lines[s.li]) {
		s.ci++
		return
	}
	s.li++
	s.ci = 0
}

func (s *Scanner) skipSpace() {
	for s.li < len(s.lines) {
		if r, ok := s.peek(); ok && !unicode.IsSpace(r) {
			return
		}
		s.advance()
	}
}

func (s *Scanner) scanWhile(pred func(rune) bool) string {
	var b strings.Builder
	for {
		r, ok := s.peek()
		if !ok || !pred(r) {
			break
		}
		b.WriteRune(r)
		s.advance()
	}
	return b.String()
}
