// Package simtest provides utility functions for testing logic networks.
package simtest

import (
	"testing"

	logsim "github.com/EntropyF/jf731-GF2-Team3-2024"
)

// Build parses and builds source, failing the test on any diagnostic.
func Build(t *testing.T, source string) (*logsim.Network, *logsim.Names) {
	t.Helper()
	names := logsim.NewNames()
	net, diags := logsim.ParseNetwork(source, names)
	if net == nil {
		for _, d := range diags {
			t.Error(logsim.FormatDiagnostic(source, d))
		}
		t.FailNow()
	}
	return net, names
}

// Diagnostics parses and builds source expecting it to fail, and returns
// the collected diagnostics.
func Diagnostics(t *testing.T, source string) []logsim.Diagnostic {
	t.Helper()
	net, diags := logsim.ParseNetwork(source, logsim.NewNames())
	if net != nil {
		t.Fatal("expected diagnostics, got a valid network")
	}
	if len(diags) == 0 {
		t.Fatal("build failed but produced no diagnostics")
	}
	return diags
}

// Run advances the network, failing the test on any error.
func Run(t *testing.T, net *logsim.Network, cycles int) {
	t.Helper()
	out, err := net.Run(cycles)
	if err != nil {
		t.Fatalf("run %d: %v", cycles, err)
	}
	if out.Cycles != cycles || !out.Converged {
		t.Fatalf("run %d: outcome %+v", cycles, out)
	}
}

// SetSwitch toggles the named switch, failing the test on error.
func SetSwitch(t *testing.T, net *logsim.Network, names *logsim.Names, name string, v logsim.Signal) {
	t.Helper()
	id, ok := names.Query(name)
	if !ok {
		t.Fatalf("switch %q was never declared", name)
	}
	if err := net.ToggleSwitch(id, v); err != nil {
		t.Fatalf("toggle %s: %v", name, err)
	}
}

// Traces returns every monitor's history as a map from display name to a
// "0101..." string, oldest cycle first.
func Traces(net *logsim.Network) map[string]string {
	out := make(map[string]string)
	for _, h := range net.Monitors() {
		out[net.MonitorName(h)] = net.TraceString(h)
	}
	return out
}
