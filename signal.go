package logsim

// A Signal is a two-valued logic level. There is no unknown or tri-state
// level in this simulator.
type Signal bool

// Logic levels.
const (
	Low  Signal = false
	High Signal = true
)

func (s Signal) String() string {
	if s == High {
		return "1"
	}
	return "0"
}
