package types

import "vega/internal/strref"

// nameTable is a string-keyed multi-map of binding stacks, supporting
// shadowing: binding the same name again pushes a new entry rather than
// overwriting the old one.
type nameTable struct {
	strings  *strref.Pool
	bindings map[strref.ID][]TypeID
}

func newNameTable(pool *strref.Pool) *nameTable {
	return &nameTable{strings: pool, bindings: make(map[strref.ID][]TypeID, 32)}
}

// set pushes a binding of name to id. If id has no
// stored display name yet, this call's name becomes that display name
// permanently — see the doc comment on Table.SetName for the asymmetry
// this preserves.
func (n *nameTable) set(t *Table, name string, id TypeID) {
	sid := n.strings.Retain(name)

	if t.store.names[id] == strref.NoID {
		t.store.names[id] = n.strings.RetainID(sid)
	}

	n.bindings[sid] = append(n.bindings[sid], id)
}

// lookup returns the top of the binding stack for name, or NoTypeID.
func (n *nameTable) lookup(name string) TypeID {
	sid, ok := n.strings.LookupID(name)
	if !ok {
		return NoTypeID
	}
	stack := n.bindings[sid]
	if len(stack) == 0 {
		return NoTypeID
	}
	return stack[len(stack)-1]
}

// remove pops the most recent binding for name, revealing any shadowed
// binding beneath it, and releases the reference that binding held.
func (n *nameTable) remove(name string) bool {
	sid, ok := n.strings.LookupID(name)
	if !ok {
		return false
	}
	stack := n.bindings[sid]
	if len(stack) == 0 {
		return false
	}
	n.bindings[sid] = stack[:len(stack)-1]
	if len(n.bindings[sid]) == 0 {
		delete(n.bindings, sid)
	}
	n.strings.Release(sid)
	return true
}

// releaseAll drops every binding's reference, used by Table.Close.
func (n *nameTable) releaseAll() {
	for sid, stack := range n.bindings {
		for range stack {
			n.strings.Release(sid)
		}
	}
	n.bindings = make(map[strref.ID][]TypeID)
}

// markRoots marks every id currently reachable from a symbol-table binding.
func (n *nameTable) markRoots(mark func(TypeID)) {
	for _, stack := range n.bindings {
		for _, id := range stack {
			mark(id)
		}
	}
}
