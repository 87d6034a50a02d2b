package logsim

import (
	"strings"

	"github.com/pkg/errors"
)

// A MonitorHandle identifies a registered monitor for History and
// RemoveMonitor calls. Handles are never reused within a network.
type MonitorHandle int

// A Monitor records the value of one output once per completed cycle.
// Its history starts at registration and only ever grows.
type Monitor struct {
	target  target
	history []Signal
}

// register creates a monitor on t and returns its handle.
func (n *Network) register(t target) MonitorHandle {
	h := n.next
	n.next++
	n.monitors[h] = &Monitor{target: t}
	n.byTarget[t] = h
	n.order = append(n.order, h)
	return h
}

// AddMonitor registers a monitor on the referenced output. The history
// records only cycles simulated after registration. Monitoring the same
// output twice is an error.
func (n *Network) AddMonitor(ref OutputRef) (MonitorHandle, error) {
	if !n.quiescent() {
		return 0, errors.Wrap(ErrNotQuiescent, "add monitor")
	}
	var diags []Diagnostic
	t, ok := n.resolveOutput(ref, &diags)
	if !ok {
		return 0, diags[0]
	}
	if _, dup := n.byTarget[t]; dup {
		return 0, Diagnostic{
			Kind: SemanticError,
			Code: MonitorPresent,
			Msg:  "output " + n.outputName(t) + " is already monitored",
			Pos:  ref.Pos,
		}
	}
	return n.register(t), nil
}

// RemoveMonitor deletes a monitor. Its recorded history is discarded.
func (n *Network) RemoveMonitor(h MonitorHandle) error {
	if !n.quiescent() {
		return errors.Wrap(ErrNotQuiescent, "remove monitor")
	}
	if _, ok := n.monitors[h]; !ok {
		return ErrBadHandle
	}
	delete(n.byTarget, n.monitors[h].target)
	delete(n.monitors, h)
	for i, o := range n.order {
		if o == h {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	return nil
}

// Monitors returns the handles of all live monitors in registration order.
func (n *Network) Monitors() []MonitorHandle {
	out := make([]MonitorHandle, len(n.order))
	copy(out, n.order)
	return out
}

// MonitorName returns the display name of a monitored output, e.g. "d1" or
// "ff.QBAR".
func (n *Network) MonitorName(h MonitorHandle) string {
	m, ok := n.monitors[h]
	if !ok {
		return ""
	}
	return n.outputName(m.target)
}

// History returns a copy of the signals recorded for h, one per cycle
// completed since registration.
func (n *Network) History(h MonitorHandle) ([]Signal, error) {
	m, ok := n.monitors[h]
	if !ok {
		return nil, ErrBadHandle
	}
	out := make([]Signal, len(m.history))
	copy(out, m.history)
	return out, nil
}

// TraceString renders a monitor's history as a string of '0' and '1'
// characters, oldest cycle first.
func (n *Network) TraceString(h MonitorHandle) string {
	m, ok := n.monitors[h]
	if !ok {
		return ""
	}
	var b strings.Builder
	b.Grow(len(m.history))
	for _, s := range m.history {
		b.WriteString(s.String())
	}
	return b.String()
}

// record appends the current level of every monitored output. Called once
// per completed cycle.
func (n *Network) record() {
	for _, h := range n.order {
		m := n.monitors[h]
		m.history = append(m.history, n.level(m.target))
	}
}
