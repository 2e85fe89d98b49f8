package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Bitvector returns the (hash-consed) bitvector type of the given width.
// Two calls with the same width, with no intervening GC that reclaims
// the type, always return the same TypeID.
func (t *Table) Bitvector(width uint32) TypeID {
	if width < 1 || width > t.limits.MaxBVWidth {
		panic(fmt.Errorf("types: bitvector width %d out of range [1,%d]", width, t.limits.MaxBVWidth))
	}

	hash := hashBitvector(width)
	if id, ok := t.hc.find(hash, func(id TypeID) bool {
		return t.store.kinds[id] == KindBitvector && t.store.payload[id] == width
	}); ok {
		return id
	}

	id := t.store.alloc()
	t.store.kinds[id] = KindBitvector
	t.store.payload[id] = width
	t.store.cards[id], t.store.flags[id] = deriveBitvector(width)
	t.hc.insert(hash, id)
	t.growMarks()
	return id
}

// Tuple returns the (hash-consed) tuple type over elems.
func (t *Table) Tuple(elems []TypeID) TypeID {
	arity, err := safecast.Conv[uint32](len(elems))
	if err != nil {
		panic(fmt.Errorf("types: tuple arity: %w", err))
	}
	if arity < 1 || arity > t.limits.MaxArity {
		panic(fmt.Errorf("types: tuple arity %d out of range [1,%d]", arity, t.limits.MaxArity))
	}
	for _, e := range elems {
		t.ensureLive(e, "Tuple")
	}

	hash := hashTuple(elems)
	if id, ok := t.hc.find(hash, func(id TypeID) bool {
		if t.store.kinds[id] != KindTuple {
			return false
		}
		info := t.store.tuples[t.store.payload[id]]
		return idsEqual(info.elems, elems)
	}); ok {
		return id
	}

	childCards := make([]uint32, len(elems))
	childFlags := make([]Flag, len(elems))
	for i, e := range elems {
		childCards[i] = t.store.cards[e]
		childFlags[i] = t.store.flags[e]
	}

	id := t.store.alloc()
	t.store.kinds[id] = KindTuple
	t.store.payload[id] = t.store.appendTuple(tupleInfo{elems: elems})
	t.store.cards[id], t.store.flags[id] = deriveTuple(childCards, childFlags)
	t.hc.insert(hash, id)
	t.growMarks()
	return id
}

// Function returns the (hash-consed) function type domain* -> result.
func (t *Table) Function(domain []TypeID, result TypeID) TypeID {
	arity, err := safecast.Conv[uint32](len(domain))
	if err != nil {
		panic(fmt.Errorf("types: function arity: %w", err))
	}
	if arity < 1 || arity > t.limits.MaxArity {
		panic(fmt.Errorf("types: function arity %d out of range [1,%d]", arity, t.limits.MaxArity))
	}
	for _, d := range domain {
		t.ensureLive(d, "Function")
	}
	t.ensureLive(result, "Function")

	hash := hashFunction(domain, result)
	if id, ok := t.hc.find(hash, func(id TypeID) bool {
		if t.store.kinds[id] != KindFunction {
			return false
		}
		info := t.store.funcs[t.store.payload[id]]
		return info.result == result && idsEqual(info.domain, domain)
	}); ok {
		return id
	}

	domainCards := make([]uint32, len(domain))
	domainFlags := make([]Flag, len(domain))
	for i, d := range domain {
		domainCards[i] = t.store.cards[d]
		domainFlags[i] = t.store.flags[d]
	}

	id := t.store.alloc()
	t.store.kinds[id] = KindFunction
	t.store.payload[id] = t.store.appendFunc(funcInfo{domain: domain, result: result})
	t.store.cards[id], t.store.flags[id] = deriveFunction(domainCards, domainFlags, t.store.cards[result], t.store.flags[result])
	t.hc.insert(hash, id)
	t.growMarks()
	return id
}

// NewScalar allocates a fresh, nominal scalar sort of the given size.
// Every call yields a new TypeID, even with an equal size: scalar sorts
// are nominal, not structural.
func (t *Table) NewScalar(size uint32) TypeID {
	if size < 1 {
		panic(fmt.Errorf("types: scalar size %d must be >= 1", size))
	}
	id := t.store.alloc()
	t.store.kinds[id] = KindScalar
	t.store.payload[id] = size
	t.store.cards[id], t.store.flags[id] = deriveScalar(size)
	t.growMarks()
	return id
}

// NewUninterpreted allocates a fresh, nominal uninterpreted (opaque
// infinite) sort. Every call yields a new TypeID.
func (t *Table) NewUninterpreted() TypeID {
	id := t.store.alloc()
	t.store.kinds[id] = KindUninterpreted
	t.store.cards[id], t.store.flags[id] = deriveUninterpreted()
	t.growMarks()
	return id
}

func (t *Table) growMarks() {
	for len(t.marked) < len(t.store.kinds) {
		t.marked = append(t.marked, false)
	}
}

func idsEqual(a, b []TypeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
