package types

// pairKey is an ordered pair of TypeIDs, always stored with the smaller id
// first, so join(a, b) and join(b, a) share one cache entry.
type pairKey struct{ lo, hi TypeID }

// pairCache memoizes join/meet results, including negative results: a
// cached NoTypeID means "known incompatible," not "not yet computed."
type pairCache struct {
	m map[pairKey]TypeID
}

func newPairCache() *pairCache {
	return &pairCache{m: make(map[pairKey]TypeID, 64)}
}

func (c *pairCache) get(lo, hi TypeID) (TypeID, bool) {
	v, ok := c.m[pairKey{lo, hi}]
	return v, ok
}

func (c *pairCache) put(lo, hi, result TypeID) {
	c.m[pairKey{lo, hi}] = result
}

func (c *pairCache) len() int { return len(c.m) }

// purge drops every entry that mentions a no-longer-live id, whether as a
// key component or as the memoized result.
func (c *pairCache) purge(live func(TypeID) bool) {
	for k, v := range c.m {
		if !live(k.lo) || !live(k.hi) || (v != NoTypeID && !live(v)) {
			delete(c.m, k)
		}
	}
}

// Join returns the least common supertype of a and b, or NoTypeID if they
// are incompatible.
func (t *Table) Join(a, b TypeID) TypeID { return t.latticeOp(a, b, true) }

// Meet returns the greatest common subtype of a and b, or NoTypeID if they
// are incompatible.
func (t *Table) Meet(a, b TypeID) TypeID { return t.latticeOp(a, b, false) }

// IsSubtype reports whether a is a subtype of b: join(a, b) == b.
func (t *Table) IsSubtype(a, b TypeID) bool { return t.Join(a, b) == b }

// Compatible reports whether a and b have a common supertype.
func (t *Table) Compatible(a, b TypeID) bool { return t.Join(a, b) != NoTypeID }

// latticeOp is the shared five-step algorithm behind Join and Meet:
// cheap-path check, argument normalization, cache lookup, kind-directed
// recursion, then cache insertion.
func (t *Table) latticeOp(a, b TypeID, isJoin bool) TypeID {
	t.ensureLive(a, "join/meet")
	t.ensureLive(b, "join/meet")

	// Step 1: cheap path.
	if a == b {
		return a
	}
	intID, realID := t.builtins.Int, t.builtins.Real
	if (a == intID && b == realID) || (a == realID && b == intID) {
		if isJoin {
			return realID
		}
		return intID
	}
	ka, kb := t.store.kinds[a], t.store.kinds[b]
	if ka != kb {
		return NoTypeID
	}
	if ka != KindTuple && ka != KindFunction {
		return NoTypeID
	}
	if t.arityOf(a, ka) != t.arityOf(b, ka) {
		return NoTypeID
	}

	// Step 2: normalize argument order.
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}

	// Step 3: cache lookup.
	cache := t.meetCache
	if isJoin {
		cache = t.joinCache
	}
	if v, ok := cache.get(lo, hi); ok {
		return v
	}

	// Step 4: recurse on kind.
	var result TypeID
	switch ka {
	case KindTuple:
		result = t.joinMeetTuple(a, b, isJoin)
	case KindFunction:
		result = t.joinMeetFunction(a, b, isJoin)
	}

	// Step 5: insert and return.
	cache.put(lo, hi, result)
	return result
}

func (t *Table) arityOf(id TypeID, k Kind) int {
	switch k {
	case KindTuple:
		return len(t.store.tuples[t.store.payload[id]].elems)
	case KindFunction:
		return len(t.store.funcs[t.store.payload[id]].domain)
	default:
		return 0
	}
}

// joinMeetTuple: tuples are covariant componentwise.
func (t *Table) joinMeetTuple(a, b TypeID, isJoin bool) TypeID {
	ea := t.store.tuples[t.store.payload[a]].elems
	eb := t.store.tuples[t.store.payload[b]].elems

	elems := make([]TypeID, len(ea))
	for i := range ea {
		r := t.latticeOp(ea[i], eb[i], isJoin)
		if r == NoTypeID {
			return NoTypeID
		}
		elems[i] = r
	}
	return t.Tuple(elems)
}

// joinMeetFunction: functions are invariant in the domain, covariant in
// the range.
func (t *Table) joinMeetFunction(a, b TypeID, isJoin bool) TypeID {
	fa := t.store.funcs[t.store.payload[a]]
	fb := t.store.funcs[t.store.payload[b]]

	if !idsEqual(fa.domain, fb.domain) {
		return NoTypeID
	}
	r := t.latticeOp(fa.result, fb.result, isJoin)
	if r == NoTypeID {
		return NoTypeID
	}
	return t.Function(fa.domain, r)
}
