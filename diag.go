package logsim

import (
	"fmt"
	"strings"
)

// A Pos is a 1-based source position. The zero Pos means "no position".
type Pos struct {
	Line int
	Col  int
}

func (p Pos) valid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.valid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// DiagKind classifies a diagnostic.
type DiagKind int

// Diagnostic kinds.
const (
	SyntaxError DiagKind = iota
	SemanticError
)

func (k DiagKind) String() string {
	if k == SyntaxError {
		return "syntax error"
	}
	return "semantic error"
}

// A Code identifies the precise rule a diagnostic reports a violation of.
type Code int

// Diagnostic codes.
const (
	// syntax
	BadCharacter Code = iota
	ExpectedSymbol
	ExpectedDeviceType
	ExpectedConnection
	ExpectedPinName
	ExpectedPortName
	UnexpectedEOF
	ExpectedEOF
	// semantic
	DuplicateName
	MissingQualifier
	InvalidQualifier
	UnexpectedQualifier
	DeviceAbsent
	InvalidPin
	InvalidPort
	PinDriven
	NoFreePin
	PinUnconnected
	MonitorPresent
)

// A Diagnostic is a structured syntax or semantic error. Diagnostics are
// collected and returned together so a front-end can display every known
// problem in one pass.
type Diagnostic struct {
	Kind DiagKind
	Code Code
	Msg  string
	Pos  Pos // zero when no position is available
}

func (d Diagnostic) Error() string {
	if d.Pos.valid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Msg)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Msg)
}

// FormatDiagnostic renders d against its source text, quoting the offending
// line with a caret under the reported column:
//
//	SWITCH sw1(2);
//	          ^
//	(Line 2) semantic error: SWITCH qualifier must be 0 or 1
//
// The source must be the exact text the diagnostic was produced from.
func FormatDiagnostic(source string, d Diagnostic) string {
	if !d.Pos.valid() {
		return d.Error()
	}
	lines := strings.Split(source, "\n")
	var b strings.Builder
	if d.Pos.Line <= len(lines) {
		line := strings.TrimRight(lines[d.Pos.Line-1], "\r")
		b.WriteString(line)
		b.WriteByte('\n')
		col := d.Pos.Col
		if col > len(line)+1 {
			col = len(line) + 1
		}
		for i := 1; i < col; i++ {
			if line[i-1] == '\t' {
				b.WriteByte('\t')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("^\n")
	}
	fmt.Fprintf(&b, "(Line %d) %s: %s", d.Pos.Line, d.Kind, d.Msg)
	return b.String()
}

// errAt appends a diagnostic to diags and returns the new slice.
func errAt(diags []Diagnostic, kind DiagKind, code Code, pos Pos, format string, args ...interface{}) []Diagnostic {
	return append(diags, Diagnostic{
		Kind: kind,
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
		Pos:  pos,
	})
}
