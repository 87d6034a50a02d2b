package logsim

import "testing"

// collect scans source to EOF and returns every symbol before it.
func collect(source string) []Symbol {
	sc := NewScanner(source, NewNames())
	var syms []Symbol
	for {
		s := sc.Symbol()
		if s.Type == EOF {
			return syms
		}
		syms = append(syms, s)
	}
}

func types(syms []Symbol) []SymbolType {
	ts := make([]SymbolType, len(syms))
	for i, s := range syms {
		ts[i] = s.Type
	}
	return ts
}

func TestScannerSymbolStream(t *testing.T) {
	syms := collect("DEVICES: AND g1(2);\nsw > g1.I1;")
	want := []SymbolType{
		Keyword, Colon, Keyword, Name, OpenParen, Number, CloseParen, Semicolon,
		Name, Greater, Name, Dot, InputPin, Semicolon,
	}
	got := types(syms)
	if len(got) != len(want) {
		t.Fatalf("got %d symbols %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if syms[0].Kw != KwDevices || syms[2].Kw != KwAnd {
		t.Errorf("keyword symbols misclassified: %v, %v", syms[0].Kw, syms[2].Kw)
	}
	if syms[5].Num != 2 {
		t.Errorf("number = %d, want 2", syms[5].Num)
	}
	if syms[12].Num != 1 {
		t.Errorf("input pin index = %d, want 1", syms[12].Num)
	}
}

func TestScannerKeywords(t *testing.T) {
	syms := collect("CLOCK SWITCH AND NAND OR NOR DTYPE XOR RC MONITOR DEVICES CONNECTIONS Q QBAR CLK DATA SET CLEAR")
	want := []Kw{
		KwClock, KwSwitch, KwAnd, KwNand, KwOr, KwNor, KwDtype, KwXor, KwRC,
		KwMonitor, KwDevices, KwConnections, KwQ, KwQbar, KwClk, KwData, KwSet, KwClear,
	}
	if len(syms) != len(want) {
		t.Fatalf("got %d symbols, want %d", len(syms), len(want))
	}
	for i, s := range syms {
		if s.Type != Keyword || s.Kw != want[i] {
			t.Errorf("symbol %d (%s): got type %s kw %d, want keyword %d", i, s.Text, s.Type, s.Kw, want[i])
		}
	}
}

func TestScannerInputPins(t *testing.T) {
	syms := collect("I1 I12 I2a i1 I")
	want := []SymbolType{InputPin, InputPin, Name, Name, Name}
	got := types(syms)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d (%s): got %s, want %s", i, syms[i].Text, got[i], want[i])
		}
	}
	if syms[1].Num != 12 {
		t.Errorf("I12 index = %d, want 12", syms[1].Num)
	}
}

func TestScannerLineComments(t *testing.T) {
	syms := collect("AND g1(2); # the first gate\nSWITCH s1; # and a switch")
	want := []SymbolType{
		Keyword, Name, OpenParen, Number, CloseParen, Semicolon,
		Keyword, Name, Semicolon,
	}
	got := types(syms)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %d symbols", got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScannerBlockComments(t *testing.T) {
	src := "AND g1(2);\n###\nnone of this ; is > scanned\n###\nSWITCH s1;"
	syms := collect(src)
	want := []SymbolType{
		Keyword, Name, OpenParen, Number, CloseParen, Semicolon,
		Keyword, Name, Semicolon,
	}
	got := types(syms)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %d symbols", got, len(want))
	}
	// an unmatched ### discards the rest of the file
	syms = collect("AND g1(2);\n###\nSWITCH s1;")
	if len(syms) != 6 {
		t.Errorf("unterminated block comment: got %d symbols, want 6", len(syms))
	}
}

func TestScannerPositions(t *testing.T) {
	syms := collect("DEVICES:\n  AND g1(2);")
	wantPos := []Pos{
		{1, 1}, {1, 8},
		{2, 3}, {2, 7}, {2, 9}, {2, 10}, {2, 11}, {2, 12},
	}
	for i, p := range wantPos {
		if syms[i].Pos != p {
			t.Errorf("symbol %d (%s): pos %v, want %v", i, syms[i].Text, syms[i].Pos, p)
		}
	}
}

func TestScannerInvalidCharacter(t *testing.T) {
	syms := collect("g1 $ g2 ; @")
	want := []SymbolType{Name, Invalid, Name, Semicolon, Invalid}
	got := types(syms)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %d symbols", got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if syms[1].Text != "$" {
		t.Errorf("invalid symbol text = %q, want %q", syms[1].Text, "$")
	}
}

func TestScannerEOFIsSticky(t *testing.T) {
	sc := NewScanner(";", NewNames())
	sc.Symbol()
	for i := 0; i < 3; i++ {
		if s := sc.Symbol(); s.Type != EOF {
			t.Fatalf("read %d past end: got %s, want EOF", i, s.Type)
		}
	}
}
