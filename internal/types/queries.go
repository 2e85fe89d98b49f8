package types

import "fmt"

// This file is the read-only query surface over a Table: accessors that
// dispatch on and inspect types without reaching into the store
// directly.

func errNotKind(id TypeID, want, got Kind) error {
	return fmt.Errorf("types: %d is a %s, not a %s", id, got, want)
}

// KindOf returns the tag of id, dispatching on BOOL/INT/REAL/BITVECTOR/....
func (t *Table) KindOf(id TypeID) Kind { return t.store.kindOf(id) }

// IsFinite reports whether id has a known-finite cardinality.
func (t *Table) IsFinite(id TypeID) bool {
	t.ensureLive(id, "IsFinite")
	return t.store.flags[id]&FlagFinite != 0
}

// CardOf returns id's cardinality (CardInfinite for infinite or
// large-finite-but-inexact types).
func (t *Table) CardOf(id TypeID) uint32 {
	t.ensureLive(id, "CardOf")
	return t.store.cards[id]
}

// FlagsOf returns id's raw flag byte.
func (t *Table) FlagsOf(id TypeID) Flag {
	t.ensureLive(id, "FlagsOf")
	return t.store.flags[id]
}

// BVWidthOf returns the width of a bitvector type.
func (t *Table) BVWidthOf(id TypeID) uint32 {
	t.ensureLive(id, "BVWidthOf")
	if t.store.kinds[id] != KindBitvector {
		panic(errNotKind(id, KindBitvector, t.store.kinds[id]))
	}
	return t.store.payload[id]
}

// ScalarSizeOf returns the size of a scalar sort.
func (t *Table) ScalarSizeOf(id TypeID) uint32 {
	t.ensureLive(id, "ScalarSizeOf")
	if t.store.kinds[id] != KindScalar {
		panic(errNotKind(id, KindScalar, t.store.kinds[id]))
	}
	return t.store.payload[id]
}

// TupleArityOf returns the arity of a tuple type.
func (t *Table) TupleArityOf(id TypeID) int {
	t.ensureLive(id, "TupleArityOf")
	if t.store.kinds[id] != KindTuple {
		panic(errNotKind(id, KindTuple, t.store.kinds[id]))
	}
	return len(t.store.tuples[t.store.payload[id]].elems)
}

// TupleElem returns the i-th element type of a tuple.
func (t *Table) TupleElem(id TypeID, i int) TypeID {
	t.ensureLive(id, "TupleElem")
	if t.store.kinds[id] != KindTuple {
		panic(errNotKind(id, KindTuple, t.store.kinds[id]))
	}
	return t.store.tuples[t.store.payload[id]].elems[i]
}

// TupleElems returns a copy of a tuple's element types.
func (t *Table) TupleElems(id TypeID) []TypeID {
	t.ensureLive(id, "TupleElems")
	if t.store.kinds[id] != KindTuple {
		panic(errNotKind(id, KindTuple, t.store.kinds[id]))
	}
	return cloneIDs(t.store.tuples[t.store.payload[id]].elems)
}

// FunctionArityOf returns the domain arity of a function type.
func (t *Table) FunctionArityOf(id TypeID) int {
	t.ensureLive(id, "FunctionArityOf")
	if t.store.kinds[id] != KindFunction {
		panic(errNotKind(id, KindFunction, t.store.kinds[id]))
	}
	return len(t.store.funcs[t.store.payload[id]].domain)
}

// FunctionRangeOf returns the range type of a function type.
func (t *Table) FunctionRangeOf(id TypeID) TypeID {
	t.ensureLive(id, "FunctionRangeOf")
	if t.store.kinds[id] != KindFunction {
		panic(errNotKind(id, KindFunction, t.store.kinds[id]))
	}
	return t.store.funcs[t.store.payload[id]].result
}

// FunctionDomain returns the i-th domain type of a function type.
func (t *Table) FunctionDomain(id TypeID, i int) TypeID {
	t.ensureLive(id, "FunctionDomain")
	if t.store.kinds[id] != KindFunction {
		panic(errNotKind(id, KindFunction, t.store.kinds[id]))
	}
	return t.store.funcs[t.store.payload[id]].domain[i]
}

// CardOfProduct returns the saturating product of elems' cardinalities,
// without constructing a tuple.
func (t *Table) CardOfProduct(elems []TypeID) uint32 {
	card := uint32(1)
	for _, e := range elems {
		t.ensureLive(e, "CardOfProduct")
		card = saturatingMul(card, t.store.cards[e])
	}
	return card
}

// CardOfDomain returns the saturating product of a function's domain
// cardinalities.
func (t *Table) CardOfDomain(fn TypeID) uint32 {
	t.ensureLive(fn, "CardOfDomain")
	if t.store.kinds[fn] != KindFunction {
		panic(errNotKind(fn, KindFunction, t.store.kinds[fn]))
	}
	return t.CardOfProduct(t.store.funcs[t.store.payload[fn]].domain)
}

// CardOfRange returns the cardinality of a function's range.
func (t *Table) CardOfRange(fn TypeID) uint32 {
	return t.CardOf(t.FunctionRangeOf(fn))
}

// HasFiniteDomain reports whether every domain type of a function is
// finite.
func (t *Table) HasFiniteDomain(fn TypeID) bool {
	t.ensureLive(fn, "HasFiniteDomain")
	if t.store.kinds[fn] != KindFunction {
		panic(errNotKind(fn, KindFunction, t.store.kinds[fn]))
	}
	for _, d := range t.store.funcs[t.store.payload[fn]].domain {
		if t.store.flags[d]&FlagFinite == 0 {
			return false
		}
	}
	return true
}

// HasFiniteRange reports whether a function's range is finite.
func (t *Table) HasFiniteRange(fn TypeID) bool {
	return t.IsFinite(t.FunctionRangeOf(fn))
}
