package logsim_test

import (
	"testing"

	logsim "github.com/EntropyF/jf731-GF2-Team3-2024"
	"github.com/EntropyF/jf731-GF2-Team3-2024/simtest"
)

const clockOnlySrc = `DEVICES:
CLOCK ck(1);
CONNECTIONS:
`

func TestAddMonitorRecordsFromRegistration(t *testing.T) {
	net, names := simtest.Build(t, clockOnlySrc)
	simtest.Run(t, net, 2)

	id, _ := names.Query("ck")
	h, err := net.AddMonitor(logsim.OutputRef{Device: id})
	if err != nil {
		t.Fatal(err)
	}
	simtest.Run(t, net, 3)

	hist, err := net.History(h)
	if err != nil {
		t.Fatal(err)
	}
	// cycles 1 and 2 ran before registration
	if got := net.TraceString(h); len(hist) != 3 || got != "101" {
		t.Fatalf("history = %q, want 101", got)
	}
}

func TestAddMonitorErrors(t *testing.T) {
	net, names := simtest.Build(t, clockOnlySrc)
	id, _ := names.Query("ck")

	if _, err := net.AddMonitor(logsim.OutputRef{Device: id, Port: logsim.PortQbar}); err == nil {
		t.Error("monitoring QBAR of a clock should fail")
	}
	if _, err := net.AddMonitor(logsim.OutputRef{Device: names.Intern("ghost")}); err == nil {
		t.Error("monitoring an unknown device should fail")
	}
	if _, err := net.AddMonitor(logsim.OutputRef{Device: id}); err != nil {
		t.Fatal(err)
	}
	if _, err := net.AddMonitor(logsim.OutputRef{Device: id}); err == nil {
		t.Error("monitoring the same output twice should fail")
	}
}

func TestRemoveMonitor(t *testing.T) {
	net, names := simtest.Build(t, clockOnlySrc)
	id, _ := names.Query("ck")
	h, err := net.AddMonitor(logsim.OutputRef{Device: id})
	if err != nil {
		t.Fatal(err)
	}
	if err := net.RemoveMonitor(h); err != nil {
		t.Fatal(err)
	}
	if _, err := net.History(h); err != logsim.ErrBadHandle {
		t.Errorf("History after removal: %v, want ErrBadHandle", err)
	}
	if err := net.RemoveMonitor(h); err != logsim.ErrBadHandle {
		t.Errorf("double removal: %v, want ErrBadHandle", err)
	}
	if got := len(net.Monitors()); got != 0 {
		t.Errorf("%d live monitors, want 0", got)
	}
	// the target is free to be monitored again
	if _, err := net.AddMonitor(logsim.OutputRef{Device: id}); err != nil {
		t.Errorf("re-adding after removal: %v", err)
	}
}

func TestMonitorOrderAndNames(t *testing.T) {
	src := `DEVICES:
CLOCK ck(1);
SWITCH idle;
DTYPE ff;
CONNECTIONS:
ck > ff.CLK;
idle > ff.DATA;
idle > ff.SET;
idle > ff.CLEAR;
MONITOR ff.QBAR, ck, ff;
`
	net, _ := simtest.Build(t, src)
	hs := net.Monitors()
	if len(hs) != 3 {
		t.Fatalf("%d monitors, want 3", len(hs))
	}
	want := []string{"ff.QBAR", "ck", "ff"}
	for i, h := range hs {
		if got := net.MonitorName(h); got != want[i] {
			t.Errorf("monitor %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestHistoryIsACopy(t *testing.T) {
	net, names := simtest.Build(t, clockOnlySrc)
	id, _ := names.Query("ck")
	h, _ := net.AddMonitor(logsim.OutputRef{Device: id})
	simtest.Run(t, net, 2)
	hist, _ := net.History(h)
	hist[0] = !hist[0]
	again, _ := net.History(h)
	if again[0] == hist[0] {
		t.Error("History returned a live reference to the recording")
	}
}
