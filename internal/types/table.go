package types

import (
	"fmt"

	"vega/internal/strref"
)

// Builtins holds the TypeIDs of the three always-present primitive
// types, fixed for the lifetime of a Table.
type Builtins struct {
	Bool TypeID
	Int  TypeID
	Real TypeID
}

// Limits bounds the table: a growth ceiling, and per-constructor
// arity/width bounds. Zero means "use the package default".
type Limits struct {
	MaxTypes         uint32
	MaxBVWidth       uint32
	MaxArity         uint32
	InitialCapacity  uint32
}

// DefaultLimits returns the limits a Table uses when none are supplied.
func DefaultLimits() Limits {
	return Limits{
		MaxTypes:        1 << 20,
		MaxBVWidth:      1 << 16,
		MaxArity:        256,
		InitialCapacity: 64,
	}
}

func (l Limits) normalize() Limits {
	d := DefaultLimits()
	if l.MaxTypes == 0 {
		l.MaxTypes = d.MaxTypes
	}
	if l.MaxBVWidth == 0 {
		l.MaxBVWidth = d.MaxBVWidth
	}
	if l.MaxArity == 0 {
		l.MaxArity = d.MaxArity
	}
	if l.InitialCapacity == 0 {
		l.InitialCapacity = d.InitialCapacity
	}
	return l
}

// Table is the type table handle: hash-consed descriptor store, symbol
// table, and the join/meet lattice caches, aggregated behind one value.
type Table struct {
	store   *store
	hc      *hashcons
	strings *strref.Pool
	names   *nameTable

	joinCache *pairCache
	meetCache *pairCache

	marked []bool
	pinned []TypeID

	limits   Limits
	builtins Builtins
}

// Init creates a table and installs the three primitive types.
func Init(limits Limits) *Table {
	limits = limits.normalize()
	t := &Table{
		store:     newStore(limits.MaxTypes, limits.InitialCapacity),
		hc:        newHashcons(),
		strings:   strref.New(),
		joinCache: newPairCache(),
		meetCache: newPairCache(),
		limits:    limits,
	}
	t.names = newNameTable(t.strings)

	t.builtins.Bool = t.store.alloc()
	t.store.kinds[t.builtins.Bool] = KindBool
	t.store.cards[t.builtins.Bool] = 2
	t.store.flags[t.builtins.Bool] = SmallFlags

	t.builtins.Int = t.store.alloc()
	t.store.kinds[t.builtins.Int] = KindInt
	t.store.cards[t.builtins.Int] = CardInfinite
	// int loses MAXIMAL: real is its proper supertype.
	t.store.flags[t.builtins.Int] = InfiniteFlags &^ FlagMaximal

	t.builtins.Real = t.store.alloc()
	t.store.kinds[t.builtins.Real] = KindReal
	t.store.cards[t.builtins.Real] = CardInfinite
	// real loses MINIMAL: int is its proper subtype.
	t.store.flags[t.builtins.Real] = InfiniteFlags &^ FlagMinimal

	t.marked = make([]bool, len(t.store.kinds))
	return t
}

// Builtins returns the TypeIDs of the primitive types.
func (t *Table) Builtins() Builtins { return t.builtins }

// Close releases every reference the table itself holds on names: the
// descriptor-owned reference for every live named type, and every binding
// still on the symbol-table stack. After Close the table must not be
// used again.
func (t *Table) Close() {
	t.names.releaseAll()
	for id := TypeID(1); int(id) < len(t.store.kinds); id++ {
		if !t.store.live(id) {
			continue
		}
		if name := t.store.names[id]; name != strref.NoID {
			t.strings.Release(name)
			t.store.names[id] = strref.NoID
		}
	}
}

func (t *Table) ensureLive(id TypeID, who string) {
	if !t.store.live(id) {
		panic(fmt.Errorf("types: %s: %d is not a live type id", who, id))
	}
}

// SetName binds name to id, shadowing any previous binding of the same
// name. The first caller ever to name a given id fixes that id's
// display name permanently: later SetName calls under a different name
// still push a lookup binding, but do not change what the id renders
// as.
func (t *Table) SetName(name string, id TypeID) {
	t.ensureLive(id, "SetName")
	t.names.set(t, name, id)
}

// LookupName returns the id currently bound to name, or NoTypeID if name
// is unbound.
func (t *Table) LookupName(name string) TypeID {
	return t.names.lookup(name)
}

// RemoveName pops the most recent binding of name, revealing whatever
// binding it shadowed. It reports whether a binding was removed.
func (t *Table) RemoveName(name string) bool {
	return t.names.remove(name)
}

// DisplayName returns the display name stored on id's descriptor, if
// any.
func (t *Table) DisplayName(id TypeID) (string, bool) {
	t.ensureLive(id, "DisplayName")
	return t.strings.Lookup(t.store.names[id])
}

// Stats is a point-in-time snapshot of table occupancy.
type Stats struct {
	Capacity       int
	Live           int
	Free           int
	HashConsBuckets int
	HashConsEntries int
	JoinCacheSize   int
	MeetCacheSize   int
}

// Stat returns a snapshot of the table's current occupancy.
func (t *Table) Stat() Stats {
	s := Stats{Capacity: len(t.store.kinds) - 1}
	for id := TypeID(1); int(id) < len(t.store.kinds); id++ {
		if t.store.live(id) {
			s.Live++
		} else {
			s.Free++
		}
	}
	entries := 0
	for _, bucket := range t.hc.buckets {
		entries += len(bucket)
	}
	s.HashConsBuckets = len(t.hc.buckets)
	s.HashConsEntries = entries
	s.JoinCacheSize = t.joinCache.len()
	s.MeetCacheSize = t.meetCache.len()
	return s
}
