package types

// Mark-and-sweep collection over the table. Every symbol-table entry is
// a root; tuple/function children are reached by an explicit work-stack
// rather than recursion, so deeply nested descriptors can't overflow
// the call stack.

// Mark pins id against the next GC call, even if nothing in the symbol
// table names it yet. The pin is consumed by that collection: a caller
// holding a root across more than one GC (e.g. a type under active
// construction) must call Mark again before each one.
func (t *Table) Mark(id TypeID) {
	t.ensureLive(id, "Mark")
	t.pinned = append(t.pinned, id)
}

func (t *Table) markTransitive(root TypeID) {
	stack := []TypeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !t.store.live(id) || t.marked[id] {
			continue
		}
		t.marked[id] = true
		switch t.store.kinds[id] {
		case KindTuple:
			stack = append(stack, t.store.tuples[t.store.payload[id]].elems...)
		case KindFunction:
			info := t.store.funcs[t.store.payload[id]]
			stack = append(stack, info.domain...)
			stack = append(stack, info.result)
		}
	}
}

// GC runs one mark-and-sweep cycle and returns the number of types
// reclaimed. Phase 1 marks every root: the three primitives, everything
// still bound in the symbol table, and anything pinned by an explicit
// Mark call since the last collection. Phase 2 sweeps every unmarked
// live slot, releasing its name reference, dropping its hash-cons
// entry, and returning its slot to the free list. Phase 3 purges the
// join/meet caches of any entry that mentions a reclaimed id.
func (t *Table) GC() int {
	t.growMarks()
	for i := range t.marked {
		t.marked[i] = false
	}

	t.markTransitive(t.builtins.Bool)
	t.markTransitive(t.builtins.Int)
	t.markTransitive(t.builtins.Real)
	t.names.markRoots(t.markTransitive)
	for _, id := range t.pinned {
		t.markTransitive(id)
	}
	t.pinned = t.pinned[:0]

	reclaimed := 0
	for id := TypeID(1); int(id) < len(t.store.kinds); id++ {
		if !t.store.live(id) || t.marked[id] {
			continue
		}
		t.sweepOne(id)
		reclaimed++
	}

	live := t.store.live
	t.joinCache.purge(live)
	t.meetCache.purge(live)
	return reclaimed
}

func (t *Table) sweepOne(id TypeID) {
	switch t.store.kinds[id] {
	case KindBitvector:
		t.hc.remove(hashBitvector(t.store.payload[id]), id)
	case KindTuple:
		info := t.store.tuples[t.store.payload[id]]
		t.hc.remove(hashTuple(info.elems), id)
		t.store.tuples[t.store.payload[id]] = tupleInfo{}
	case KindFunction:
		info := t.store.funcs[t.store.payload[id]]
		t.hc.remove(hashFunction(info.domain, info.result), id)
		t.store.funcs[t.store.payload[id]] = funcInfo{}
	}
	if name := t.store.names[id]; name != 0 {
		t.strings.Release(name)
	}
	t.store.free(id)
}
