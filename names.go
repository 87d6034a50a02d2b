package logsim

// A NameID is an interned handle for an identifier. IDs are dense, start at
// zero and are never reused within a session.
type NameID int

// NoName is the zero ID of an absent identifier.
const NoName NameID = -1

// Names maps identifier strings to integer handles and back. One instance is
// created per parse/simulation session and passed by reference into the
// scanner, parser and network builder. It deliberately is not a process-wide
// singleton so that independent networks can coexist.
type Names struct {
	ids     map[string]NameID
	strings []string
}

// NewNames returns an empty interning table.
func NewNames() *Names {
	return &Names{ids: make(map[string]NameID)}
}

// Intern returns the ID for name, creating one if name has not been seen
// before.
func (n *Names) Intern(name string) NameID {
	if id, ok := n.ids[name]; ok {
		return id
	}
	id := NameID(len(n.strings))
	n.ids[name] = id
	n.strings = append(n.strings, name)
	return id
}

// Lookup interns every name in names and returns their IDs in the same order.
func (n *Names) Lookup(names []string) []NameID {
	ids := make([]NameID, len(names))
	for i, s := range names {
		ids[i] = n.Intern(s)
	}
	return ids
}

// Query returns the ID for name without interning it. The second return
// value is false if name has never been interned.
func (n *Names) Query(name string) (NameID, bool) {
	id, ok := n.ids[name]
	return id, ok
}

// String returns the identifier for id, or the empty string if id was not
// issued by this table.
func (n *Names) String(id NameID) string {
	if id < 0 || int(id) >= len(n.strings) {
		return ""
	}
	return n.strings[id]
}
