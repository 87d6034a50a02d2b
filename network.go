package logsim

import (
	"github.com/pkg/errors"
)

// netState tracks where a network is in its lifecycle.
type netState int

const (
	stateBuilt netState = iota
	stateSettling
	stateQuiescent
	stateNonconvergent
)

// API misuse errors. They are returned, possibly wrapped, by the mutating
// Network methods; they never concern the definition file itself.
var (
	ErrNotQuiescent  = errors.New("network is not quiescent")
	ErrNonconvergent = errors.New("network did not converge; a fresh build is required")
	ErrNotASwitch    = errors.New("device is not a switch")
	ErrUnknownDevice = errors.New("unknown device")
	ErrBadHandle     = errors.New("unknown monitor handle")
	ErrBadCycleCount = errors.New("cycle count must be positive")
)

// A Network owns an immutable arena of devices, the resolved connections
// between their pins, the cycle counter and the monitor set. Networks are
// built by Build or ParseNetwork and are never shared between sessions.
type Network struct {
	names    *Names
	devices  []Device
	index    map[NameID]DeviceHandle
	monitors map[MonitorHandle]*Monitor
	order    []MonitorHandle // registration order of live monitors
	next     MonitorHandle
	byTarget map[target]MonitorHandle
	cycle    int
	state    netState
}

type target struct {
	dev  DeviceHandle
	port Port
}

// ParseNetwork scans, parses and builds source into a runnable network.
// On failure it returns nil and every syntax and semantic diagnostic
// found, in source order.
func ParseNetwork(source string, names *Names) (*Network, []Diagnostic) {
	p := NewParser(NewScanner(source, names))
	req, diags := p.Parse()
	if len(diags) > 0 {
		return nil, diags
	}
	return Build(req, names)
}

// Build validates req and materializes the network. Checks run in a fixed
// order (duplicate names, qualifiers, connection resolution and fan-in,
// unconnected pins, monitors) and every violation is collected, so the
// diagnostics for a given file are deterministic. No network is returned
// unless the diagnostic list is empty.
func Build(req *NetworkRequest, names *Names) (*Network, []Diagnostic) {
	n := &Network{
		names:    names,
		index:    make(map[NameID]DeviceHandle),
		monitors: make(map[MonitorHandle]*Monitor),
		byTarget: make(map[target]MonitorHandle),
	}
	var diags []Diagnostic

	// duplicate names
	for _, d := range req.Devices {
		if _, ok := n.index[d.Name]; ok {
			diags = errAt(diags, SemanticError, DuplicateName, d.Pos,
				"device %q already instantiated", names.String(d.Name))
			continue
		}
		n.index[d.Name] = DeviceHandle(len(n.devices))
		n.devices = append(n.devices, Device{name: d.Name, kind: d.Kind, pos: d.Pos})
	}

	// qualifier ranges, then construction of the real devices
	for _, d := range req.Devices {
		h := n.index[d.Name]
		if n.devices[h].pos != d.Pos {
			continue // duplicate, already reported
		}
		q, ok := checkQualifier(d, names, &diags)
		if !ok {
			q = defaultQualifier(d.Kind)
		}
		n.devices[h] = newDevice(d.Name, d.Kind, q, q, d.Pos)
	}

	// connections: resolution, pin validity and fan-in, in source order
	for _, c := range req.Connections {
		n.connect(c, &diags)
	}

	// every pin of every device must be driven before simulation can start
	for h := range n.devices {
		d := &n.devices[h]
		for i := range d.inputs {
			if d.inputs[i].src == noDevice {
				diags = errAt(diags, SemanticError, PinUnconnected, d.pos,
					"input %s.%s is not connected", names.String(d.name), d.inputs[i].name)
			}
		}
	}

	// monitor declarations
	for _, m := range req.Monitors {
		if t, ok := n.resolveOutput(m, &diags); ok {
			if _, dup := n.byTarget[t]; dup {
				diags = errAt(diags, SemanticError, MonitorPresent, m.Pos,
					"output %s is already monitored", n.outputName(t))
				continue
			}
			n.register(t)
		}
	}

	if len(diags) > 0 {
		return nil, diags
	}
	return n, nil
}

// checkQualifier validates a device's qualifier against its kind and
// returns the effective value.
func checkQualifier(d DeviceRequest, names *Names, diags *[]Diagnostic) (int, bool) {
	name := names.String(d.Name)
	switch d.Kind {
	case And, Nand, Or, Nor:
		if d.Qualifier == nil {
			*diags = errAt(*diags, SemanticError, MissingQualifier, d.Pos,
				"%s %q needs an input count qualifier", d.Kind, name)
			return 0, false
		}
		if *d.Qualifier < 1 || *d.Qualifier > 16 {
			*diags = errAt(*diags, SemanticError, InvalidQualifier, d.QualPos,
				"%s input count must be 1..16, got %d", d.Kind, *d.Qualifier)
			return 0, false
		}
	case Clock, RC:
		if d.Qualifier == nil {
			*diags = errAt(*diags, SemanticError, MissingQualifier, d.Pos,
				"%s %q needs a cycle count qualifier", d.Kind, name)
			return 0, false
		}
		if *d.Qualifier < 1 {
			*diags = errAt(*diags, SemanticError, InvalidQualifier, d.QualPos,
				"%s cycle count must be at least 1, got %d", d.Kind, *d.Qualifier)
			return 0, false
		}
	case Switch:
		if d.Qualifier == nil {
			return 0, true // switches default to LOW
		}
		if *d.Qualifier != 0 && *d.Qualifier != 1 {
			*diags = errAt(*diags, SemanticError, InvalidQualifier, d.QualPos,
				"SWITCH initial value must be 0 or 1, got %d", *d.Qualifier)
			return 0, false
		}
	case Xor, Dtype:
		if d.Qualifier != nil {
			*diags = errAt(*diags, SemanticError, UnexpectedQualifier, d.QualPos,
				"%s takes no qualifier", d.Kind)
			return 0, false
		}
	}
	if d.Qualifier == nil {
		return 0, true
	}
	return *d.Qualifier, true
}

// defaultQualifier keeps an invalid device resolvable by later checks.
func defaultQualifier(k DeviceKind) int {
	switch k {
	case And, Nand, Or, Nor:
		return 2
	case Clock, RC:
		return 1
	}
	return 0
}

// connect resolves one connection request, wiring each source to its
// target pin and enforcing fan-in <= 1.
func (n *Network) connect(c ConnectionRequest, diags *[]Diagnostic) {
	th, ok := n.index[c.Target]
	if !ok {
		*diags = errAt(*diags, SemanticError, DeviceAbsent, c.TargetPos,
			"device %q has not been instantiated", n.names.String(c.Target))
		return
	}
	td := &n.devices[th]

	for _, src := range c.Sources {
		st, ok := n.resolveOutput(src, diags)
		if !ok {
			continue
		}
		var slot int
		if c.Implicit {
			slot = freePin(td)
			if slot < 0 {
				*diags = errAt(*diags, SemanticError, NoFreePin, src.Pos,
					"device %q has no free input left", n.names.String(c.Target))
				continue
			}
		} else {
			slot = resolvePin(td, c.Pin)
			if slot < 0 {
				*diags = errAt(*diags, SemanticError, InvalidPin, c.Pin.Pos,
					"%q is not an input of %s %q",
					c.Pin, td.kind, n.names.String(c.Target))
				continue
			}
			if td.inputs[slot].src != noDevice {
				*diags = errAt(*diags, SemanticError, PinDriven, c.Pin.Pos,
					"input %s.%s is already driven from %s",
					n.names.String(c.Target), td.inputs[slot].name,
					n.outputName(target{td.inputs[slot].src, td.inputs[slot].srcPort}))
				continue
			}
		}
		td.inputs[slot] = pin{
			name:    td.inputs[slot].name,
			src:     st.dev,
			srcPort: st.port,
			srcPos:  src.Pos,
		}
	}
}

// resolveOutput checks that an output reference names an existing device
// and a port that device exposes.
func (n *Network) resolveOutput(ref OutputRef, diags *[]Diagnostic) (target, bool) {
	h, ok := n.index[ref.Device]
	if !ok {
		*diags = errAt(*diags, SemanticError, DeviceAbsent, ref.Pos,
			"device %q has not been instantiated", n.names.String(ref.Device))
		return target{}, false
	}
	if ref.Port == PortQbar && n.devices[h].kind != Dtype {
		*diags = errAt(*diags, SemanticError, InvalidPort, ref.Pos,
			"%s %q has no QBAR output", n.devices[h].kind, n.names.String(ref.Device))
		return target{}, false
	}
	return target{h, ref.Port}, true
}

// resolvePin maps a pin reference onto a slot index of d, or -1 if d has
// no such pin. Named pins belong to DTYPE only; I<k> pins to the gates.
func resolvePin(d *Device, ref PinRef) int {
	if ref.Named != KwNone {
		if d.kind != Dtype {
			return -1
		}
		switch ref.Named {
		case KwClk:
			return dtypeClk
		case KwData:
			return dtypeData
		case KwSet:
			return dtypeSet
		case KwClear:
			return dtypeClear
		}
		return -1
	}
	if d.kind == Dtype {
		return -1
	}
	if ref.Index < 1 || ref.Index > len(d.inputs) {
		return -1
	}
	return ref.Index - 1
}

// freePin returns the first unfilled input slot of d in declaration order,
// or -1 when all are driven.
func freePin(d *Device) int {
	for i := range d.inputs {
		if d.inputs[i].src == noDevice {
			return i
		}
	}
	return -1
}

func (n *Network) outputName(t target) string {
	s := n.names.String(n.devices[t.dev].name)
	if t.port == PortQbar {
		s += ".QBAR"
	}
	return s
}

// Device returns the handle for the named device.
func (n *Network) Device(name NameID) (DeviceHandle, error) {
	h, ok := n.index[name]
	if !ok {
		return noDevice, errors.Wrap(ErrUnknownDevice, n.names.String(name))
	}
	return h, nil
}

// Cycle returns the number of completed simulation cycles.
func (n *Network) Cycle() int { return n.cycle }

// quiescent reports whether external mutation is currently well-defined.
func (n *Network) quiescent() bool {
	return n.state == stateBuilt || n.state == stateQuiescent
}

// ToggleSwitch sets the output level of a SWITCH device. It is only valid
// between runs and only for switches.
func (n *Network) ToggleSwitch(name NameID, v Signal) error {
	if !n.quiescent() {
		return errors.Wrap(ErrNotQuiescent, "toggle switch")
	}
	h, err := n.Device(name)
	if err != nil {
		return err
	}
	d := &n.devices[h]
	if d.kind != Switch {
		return errors.Wrapf(ErrNotASwitch, "%s %q", d.kind, n.names.String(name))
	}
	d.out = v
	return nil
}

// level returns the current signal on an output.
func (n *Network) level(t target) Signal {
	d := &n.devices[t.dev]
	if t.port == PortQbar {
		return d.qbar
	}
	return d.out
}
