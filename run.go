package logsim

import (
	"fmt"

	"github.com/pkg/errors"
)

// A RunOutcome reports how far a Run call got.
type RunOutcome struct {
	Cycles    int  // cycles completed by this call
	Converged bool // false when settling hit the iteration bound
}

// A NonconvergenceError is returned by Run when the combinational
// sub-network oscillates instead of settling. Cycle is the 1-based overall
// cycle index at which settling failed. History recorded for earlier
// cycles is retained, but the network cannot run again: device state is
// left mid-settle and a fresh build is required.
type NonconvergenceError struct {
	Cycle int
}

func (e *NonconvergenceError) Error() string {
	return fmt.Sprintf("combinational logic did not settle at cycle %d", e.Cycle)
}

// Run advances the simulation by cycles cycles. Each cycle first advances
// the sequential, periodic and monostable devices from the previous
// cycle's stable values, then relaxes the combinational devices to a fixed
// point, then records every monitor. Cycles are strictly sequential;
// partial progress before a nonconvergence is kept.
func (n *Network) Run(cycles int) (RunOutcome, error) {
	if cycles <= 0 {
		return RunOutcome{}, errors.Wrapf(ErrBadCycleCount, "got %d", cycles)
	}
	if n.state == stateNonconvergent {
		return RunOutcome{}, errors.Wrap(ErrNonconvergent, "run")
	}
	if !n.quiescent() {
		return RunOutcome{}, errors.Wrap(ErrNotQuiescent, "run")
	}
	for i := 0; i < cycles; i++ {
		n.state = stateSettling
		n.advanceSequential()
		if !n.settle() {
			n.state = stateNonconvergent
			return RunOutcome{Cycles: i, Converged: false},
				&NonconvergenceError{Cycle: n.cycle + 1}
		}
		n.cycle++
		n.record()
		n.state = stateQuiescent
	}
	return RunOutcome{Cycles: cycles, Converged: true}, nil
}

// advanceSequential performs step (a) of a cycle. DTYPE inputs are
// snapshotted first so every device sees the previous cycle's stable
// levels, whatever order the arena is walked in.
func (n *Network) advanceSequential() {
	snaps := make(map[DeviceHandle]dffInputs)
	for h := range n.devices {
		d := &n.devices[h]
		if d.kind != Dtype {
			continue
		}
		snaps[DeviceHandle(h)] = dffInputs{
			clk:   n.pinLevel(d, dtypeClk),
			data:  n.pinLevel(d, dtypeData),
			set:   n.pinLevel(d, dtypeSet),
			clear: n.pinLevel(d, dtypeClear),
		}
	}
	for h := range n.devices {
		d := &n.devices[h]
		d.advance(snaps[DeviceHandle(h)])
	}
}

// settle performs step (b): repeated re-evaluation of the combinational
// devices until no output changes between passes. Outputs are relaxed in
// place starting from the previous stable state, so feedback loops such as
// cross-wired NAND latches converge to the state consistent with their
// memory instead of being recomputed from scratch. The pass count is
// bounded to tell true oscillation apart from slow convergence; settle
// reports whether a fixed point was reached.
func (n *Network) settle() bool {
	limit := 4*len(n.devices) + 4
	in := make([]Signal, 0, 16)
	for pass := 0; pass < limit; pass++ {
		changed := false
		for h := range n.devices {
			d := &n.devices[h]
			if !d.kind.combinational() {
				continue
			}
			in = in[:0]
			for i := range d.inputs {
				in = append(in, n.pinLevel(d, i))
			}
			if v := combine(d.kind, in); v != d.out {
				d.out = v
				changed = true
			}
		}
		if !changed {
			return true
		}
	}
	return false
}

// pinLevel returns the current signal driving input slot i of d.
func (n *Network) pinLevel(d *Device, i int) Signal {
	p := &d.inputs[i]
	return n.level(target{p.src, p.srcPort})
}
