/*
Package logsim compiles a small textual hardware-description language into
an executable network of logic devices and simulates it cycle by cycle.

A definition file declares devices (CLOCK, SWITCH, AND, NAND, OR, NOR, XOR,
DTYPE, RC), wires their outputs to input pins, and optionally lists outputs
to monitor:

	DEVICES:
	SWITCH sw1(0), sw2(0);
	NAND g1(2), g2(2);
	CONNECTIONS:
	sw1 > g1.I1;
	g2 > g1.I2;
	sw2 > g2.I2;
	g1 > g2.I1;
	MONITOR g1, g2;

ParseNetwork turns such text into a Network, collecting every syntax and
semantic diagnostic rather than stopping at the first. Run then advances
the network through discrete cycles, settling combinational logic to a
fixed point each cycle so feedback loops (latches) behave like their
physical counterparts, and records monitored outputs once per cycle.
*/
package logsim
