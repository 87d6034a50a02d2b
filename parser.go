package logsim

import "strconv"

// An OutputRef names a device output: a device plus an optional Q/QBAR
// selector (Q when unspecified).
type OutputRef struct {
	Device NameID
	Port   Port
	Pos    Pos
}

// A PinRef names a device input pin, either by index (I1..In) or by one of
// the DTYPE pin names.
type PinRef struct {
	Index int // 1-based; 0 when Named is set
	Named Kw  // KwClk, KwData, KwSet or KwClear; KwNone when indexed
	Pos   Pos
}

func (r PinRef) String() string {
	switch r.Named {
	case KwClk:
		return "CLK"
	case KwData:
		return "DATA"
	case KwSet:
		return "SET"
	case KwClear:
		return "CLEAR"
	}
	return "I" + strconv.Itoa(r.Index)
}

// A DeviceRequest is a parsed device instantiation, not yet validated.
type DeviceRequest struct {
	Kind      DeviceKind
	Name      NameID
	Qualifier *int // nil when omitted
	Pos       Pos  // position of the device name
	QualPos   Pos  // position of the qualifier, when present
}

// A ConnectionRequest is a parsed connection statement. The explicit form
// has exactly one source and a pin; the implicit group form has one or more
// sources and no pin, each source claiming the target's next unfilled input
// in declaration order.
type ConnectionRequest struct {
	Sources   []OutputRef
	Target    NameID
	TargetPos Pos
	Pin       PinRef
	Implicit  bool
}

// A NetworkRequest is the parser's output: every well-formed statement of
// the definition file, in source order, before semantic validation.
type NetworkRequest struct {
	Devices     []DeviceRequest
	Connections []ConnectionRequest
	Monitors    []OutputRef
}

// A Parser is a recursive-descent consumer of a Scanner's symbol stream.
// On an unexpected symbol it records a diagnostic and skips forward to the
// next statement terminator or section keyword, so one malformed line never
// hides errors in later lines.
type Parser struct {
	sc    *Scanner
	sym   Symbol
	diags []Diagnostic
	req   NetworkRequest
}

// NewParser returns a parser reading from sc.
func NewParser(sc *Scanner) *Parser {
	return &Parser{sc: sc}
}

// Parse consumes the whole symbol stream and returns the network request
// together with every syntax error found. The request contains all
// well-formed statements even when errors are present.
func (p *Parser) Parse() (*NetworkRequest, []Diagnostic) {
	p.next()
	p.expectKeyword(KwDevices)
	p.expectType(Colon)
	p.parseDevices()
	if p.atKeyword(KwConnections) {
		p.next()
		p.expectType(Colon)
		p.parseConnections()
	}
	if p.sym.Type != EOF {
		p.errorHere(ExpectedEOF, "expected end of file")
	}
	return &p.req, p.diags
}

func (p *Parser) parseDevices() {
	for {
		switch {
		case p.sym.Type == EOF:
			p.errorHere(UnexpectedEOF, "unexpected end of file")
			return
		case p.atKeyword(KwConnections):
			return
		case p.sym.Type == Keyword && deviceKindFor(p.sym.Kw) >= 0:
			p.parseDeviceList(deviceKindFor(p.sym.Kw))
		default:
			p.errorHere(ExpectedDeviceType, "expected a device type or 'CONNECTIONS'")
			p.next()
			p.skipStatement()
		}
	}
}

// parseDeviceList parses `device_type name (q)? {, name (q)?} ;` with the
// type keyword already current.
func (p *Parser) parseDeviceList(kind DeviceKind) {
	p.next()
	for {
		if !p.parseNameInit(kind) {
			p.skipStatement()
			return
		}
		switch p.sym.Type {
		case Comma:
			p.next()
		case Semicolon:
			p.next()
			return
		default:
			p.errorHere(ExpectedSymbol, "expected ',' or ';', found %s", p.found())
			p.skipStatement()
			return
		}
	}
}

func (p *Parser) parseNameInit(kind DeviceKind) bool {
	if p.sym.Type != Name {
		p.errorHere(ExpectedSymbol, "expected a device name, found %s", p.found())
		return false
	}
	req := DeviceRequest{Kind: kind, Name: p.sym.ID, Pos: p.sym.Pos}
	p.next()
	if p.sym.Type == OpenParen {
		p.next()
		if p.sym.Type != Number {
			p.errorHere(ExpectedSymbol, "expected a qualifier number, found %s", p.found())
			return false
		}
		q := p.sym.Num
		req.Qualifier, req.QualPos = &q, p.sym.Pos
		p.next()
		if !p.expectType(CloseParen) {
			return false
		}
	}
	p.req.Devices = append(p.req.Devices, req)
	return true
}

func (p *Parser) parseConnections() {
	for {
		switch {
		case p.atKeyword(KwMonitor):
			p.parseMonitor()
			return
		case p.sym.Type == EOF:
			return
		case p.sym.Type == Name || p.sym.Type == OpenParen:
			p.parseConnection()
		default:
			p.errorHere(ExpectedConnection, "expected a connection or 'MONITOR'")
			p.next()
			p.skipStatement()
		}
	}
}

func (p *Parser) parseConnection() {
	var conn ConnectionRequest
	if p.sym.Type == OpenParen {
		// implicit group form: (src {, src}) > target ;
		conn.Implicit = true
		p.next()
		for {
			src, ok := p.parseOutputRef()
			if !ok {
				p.skipStatement()
				return
			}
			conn.Sources = append(conn.Sources, src)
			if p.sym.Type == Comma {
				p.next()
				continue
			}
			break
		}
		if !p.expectType(CloseParen) {
			p.skipStatement()
			return
		}
		if !p.expectType(Greater) {
			p.skipStatement()
			return
		}
		if p.sym.Type != Name {
			p.errorHere(ExpectedSymbol, "expected a target device name, found %s", p.found())
			p.skipStatement()
			return
		}
		conn.Target, conn.TargetPos = p.sym.ID, p.sym.Pos
		p.next()
	} else {
		src, ok := p.parseOutputRef()
		if !ok {
			p.skipStatement()
			return
		}
		conn.Sources = []OutputRef{src}
		if !p.expectType(Greater) {
			p.skipStatement()
			return
		}
		target, targetPos, pinRef, ok := p.parseInputRef()
		if !ok {
			p.skipStatement()
			return
		}
		conn.Target, conn.TargetPos, conn.Pin = target, targetPos, pinRef
	}
	if !p.expectType(Semicolon) {
		p.skipStatement()
		return
	}
	p.req.Connections = append(p.req.Connections, conn)
}

// parseOutputRef parses `name [. (Q|QBAR)]`.
func (p *Parser) parseOutputRef() (OutputRef, bool) {
	if p.sym.Type != Name {
		p.errorHere(ExpectedSymbol, "expected a device name, found %s", p.found())
		return OutputRef{}, false
	}
	ref := OutputRef{Device: p.sym.ID, Port: PortQ, Pos: p.sym.Pos}
	p.next()
	if p.sym.Type != Dot {
		return ref, true
	}
	p.next()
	switch {
	case p.atKeyword(KwQ):
		ref.Port = PortQ
	case p.atKeyword(KwQbar):
		ref.Port = PortQbar
	default:
		p.errorHere(ExpectedPortName, "expected 'Q' or 'QBAR' after '.', found %s", p.found())
		return OutputRef{}, false
	}
	p.next()
	return ref, true
}

// parseInputRef parses `name . (CLK|DATA|SET|CLEAR|I<digits>)`.
func (p *Parser) parseInputRef() (NameID, Pos, PinRef, bool) {
	if p.sym.Type != Name {
		p.errorHere(ExpectedSymbol, "expected a target device name, found %s", p.found())
		return NoName, Pos{}, PinRef{}, false
	}
	target, targetPos := p.sym.ID, p.sym.Pos
	p.next()
	if !p.expectType(Dot) {
		return NoName, Pos{}, PinRef{}, false
	}
	ref := PinRef{Pos: p.sym.Pos}
	switch {
	case p.sym.Type == InputPin:
		ref.Index = p.sym.Num
	case p.atKeyword(KwClk), p.atKeyword(KwData), p.atKeyword(KwSet), p.atKeyword(KwClear):
		ref.Named = p.sym.Kw
	default:
		p.errorHere(ExpectedPinName, "expected an input pin after '.', found %s", p.found())
		return NoName, Pos{}, PinRef{}, false
	}
	p.next()
	return target, targetPos, ref, true
}

// parseMonitor parses `MONITOR ref {, ref} ;` with MONITOR current.
func (p *Parser) parseMonitor() {
	p.next()
	for {
		ref, ok := p.parseOutputRef()
		if ok {
			p.req.Monitors = append(p.req.Monitors, ref)
		} else {
			p.skipStatement()
			return
		}
		switch p.sym.Type {
		case Comma:
			p.next()
		case Semicolon:
			p.next()
			return
		default:
			p.errorHere(ExpectedSymbol, "expected ',' or ';', found %s", p.found())
			p.skipStatement()
			return
		}
	}
}

// next advances to the next symbol, reporting and skipping invalid
// characters so the grammar rules never see them.
func (p *Parser) next() {
	for {
		p.sym = p.sc.Symbol()
		if p.sym.Type != Invalid {
			return
		}
		p.diags = errAt(p.diags, SyntaxError, BadCharacter, p.sym.Pos,
			"unrecognized character %q", p.sym.Text)
	}
}

func (p *Parser) atKeyword(kw Kw) bool {
	return p.sym.Type == Keyword && p.sym.Kw == kw
}

func (p *Parser) expectType(t SymbolType) bool {
	if p.sym.Type == t {
		p.next()
		return true
	}
	p.errorHere(ExpectedSymbol, "expected %s, found %s", t, p.found())
	return false
}

func (p *Parser) expectKeyword(kw Kw) bool {
	if p.atKeyword(kw) {
		p.next()
		return true
	}
	p.errorHere(ExpectedSymbol, "expected '%s', found %s", keywordText(kw), p.found())
	return false
}

func (p *Parser) errorHere(code Code, format string, args ...interface{}) {
	p.diags = errAt(p.diags, SyntaxError, code, p.sym.Pos, format, args...)
}

// found describes the current symbol for an expected-vs-found message.
func (p *Parser) found() string {
	switch p.sym.Type {
	case Keyword, Name, Number, InputPin:
		return "'" + p.sym.Text + "'"
	}
	return p.sym.Type.String()
}

// skipStatement recovers from a syntax error: it advances past the next
// ';', or stops before a symbol that can only start a new statement (a
// section keyword or a device type). Port and pin keywords occur
// mid-statement and are skipped over.
func (p *Parser) skipStatement() {
	for {
		switch {
		case p.sym.Type == EOF:
			return
		case p.sym.Type == Semicolon:
			p.next()
			return
		case p.atKeyword(KwDevices), p.atKeyword(KwConnections), p.atKeyword(KwMonitor):
			return
		case p.sym.Type == Keyword && deviceKindFor(p.sym.Kw) >= 0:
			return
		}
		p.next()
	}
}

func deviceKindFor(kw Kw) DeviceKind {
	switch kw {
	case KwClock:
		return Clock
	case KwSwitch:
		return Switch
	case KwAnd:
		return And
	case KwNand:
		return Nand
	case KwOr:
		return Or
	case KwNor:
		return Nor
	case KwXor:
		return Xor
	case KwDtype:
		return Dtype
	case KwRC:
		return RC
	}
	return -1
}

func keywordText(kw Kw) string {
	for s, k := range keywords {
		if k == kw {
			return s
		}
	}
	return "?"
}
