package logsim

import "strconv"

// DeviceKind is the closed set of device types. The evaluator dispatches
// over it with exhaustive switches, so a kind with no update rule is a
// compile-time visible omission.
type DeviceKind int

// Device kinds.
const (
	Clock DeviceKind = iota
	Switch
	And
	Nand
	Or
	Nor
	Xor
	Dtype
	RC
)

var kindNames = [...]string{
	Clock:  "CLOCK",
	Switch: "SWITCH",
	And:    "AND",
	Nand:   "NAND",
	Or:     "OR",
	Nor:    "NOR",
	Xor:    "XOR",
	Dtype:  "DTYPE",
	RC:     "RC",
}

func (k DeviceKind) String() string { return kindNames[k] }

// Port selects one of a device's outputs. All devices expose Q; only DTYPE
// also exposes QBAR.
type Port int

// Output ports. PortQ is the zero value and the default when a connection
// or monitor omits the selector.
const (
	PortQ Port = iota
	PortQbar
)

func (p Port) String() string {
	if p == PortQbar {
		return "QBAR"
	}
	return "Q"
}

// A DeviceHandle indexes a device in its network's arena. Handles are only
// meaningful within the network that issued them.
type DeviceHandle int

const noDevice DeviceHandle = -1

// A pin is one input slot of a device. It is driven by at most one source.
type pin struct {
	name    string // display name: "I1".."In", or "CLK"/"DATA"/"SET"/"CLEAR"
	src     DeviceHandle
	srcPort Port
	srcPos  Pos // position of the connection that drove it, for diagnostics
}

// DTYPE pin slot order. Implicit group connections fill pins in this
// declaration order.
const (
	dtypeClk = iota
	dtypeData
	dtypeSet
	dtypeClear
	dtypePins
)

var dtypePinNames = [dtypePins]string{"CLK", "DATA", "SET", "CLEAR"}

// A Device is one instance of a logic component: its kind, configuration
// qualifier, input pins, current output levels and kind-specific internal
// state. Topology is immutable once the network is built; only output
// levels and internal state change, and only inside Run.
type Device struct {
	name      NameID
	kind      DeviceKind
	qualifier int
	inputs    []pin

	out  Signal // Q
	qbar Signal // DTYPE only, always the negation of out

	counter int    // CLOCK: cycles since last toggle; RC: cycles left HIGH
	prevClk Signal // DTYPE: CLK level at the previous advance
	pos     Pos    // declaration position
}

// Kind returns the device's kind.
func (d *Device) Kind() DeviceKind { return d.kind }

// Name returns the device's interned name.
func (d *Device) Name() NameID { return d.name }

// newDevice constructs a device of the given kind with its fixed input pin
// list and initial state. nin is the input count for the n-input gates and
// is ignored for other kinds.
func newDevice(name NameID, kind DeviceKind, qualifier, nin int, pos Pos) Device {
	d := Device{name: name, kind: kind, qualifier: qualifier, pos: pos}
	switch kind {
	case Clock:
		d.out = Low
	case Switch:
		d.out = Signal(qualifier != 0)
	case RC:
		d.out = High
		d.counter = qualifier
	case Xor:
		nin = 2
		fallthrough
	case And, Nand, Or, Nor:
		d.inputs = make([]pin, nin)
		for i := range d.inputs {
			d.inputs[i] = pin{name: "I" + strconv.Itoa(i+1), src: noDevice}
		}
	case Dtype:
		d.inputs = make([]pin, dtypePins)
		for i := range d.inputs {
			d.inputs[i] = pin{name: dtypePinNames[i], src: noDevice}
		}
		d.qbar = High
	}
	return d
}

// combinational reports whether the device is re-settled within a cycle
// rather than advanced once at the cycle boundary.
func (k DeviceKind) combinational() bool {
	switch k {
	case And, Nand, Or, Nor, Xor:
		return true
	case Clock, Switch, Dtype, RC:
		return false
	}
	return false
}

// combine is the pure update rule of the combinational kinds: current input
// levels in, next output level out.
func combine(kind DeviceKind, in []Signal) Signal {
	switch kind {
	case And, Nand:
		v := High
		for _, s := range in {
			if s == Low {
				v = Low
				break
			}
		}
		if kind == Nand {
			v = !v
		}
		return v
	case Or, Nor:
		v := Low
		for _, s := range in {
			if s == High {
				v = High
				break
			}
		}
		if kind == Nor {
			v = !v
		}
		return v
	case Xor:
		return in[0] != in[1]
	}
	panic("combine called on non-combinational device")
}

// dffInputs is the snapshot of a DTYPE's input levels taken from the
// previous cycle's stable frame, before any device advances.
type dffInputs struct {
	clk, data, set, clear Signal
}

// advance applies one cycle-boundary step to a sequential, periodic or
// monostable device. Combinational kinds are untouched here; they settle
// afterwards.
func (d *Device) advance(in dffInputs) {
	switch d.kind {
	case Clock:
		d.counter++
		if d.counter >= d.qualifier {
			d.counter = 0
			d.out = !d.out
		}
	case RC:
		if d.counter > 0 {
			d.counter--
			if d.counter == 0 {
				// no retrigger: LOW is permanent
				d.out = Low
			}
		}
	case Dtype:
		if d.prevClk == Low && in.clk == High {
			d.out = in.data
		}
		if in.set == High {
			d.out = High
		}
		// CLEAR dominates SET when both are asserted
		if in.clear == High {
			d.out = Low
		}
		d.prevClk = in.clk
		d.qbar = !d.out
	case Switch:
		// switches only change via ToggleSwitch
	case And, Nand, Or, Nor, Xor:
	}
}
