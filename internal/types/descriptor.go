package types

import (
	"fmt"

	"fortio.org/safecast"

	"vega/internal/strref"
)

// tupleInfo holds the element types of a tuple descriptor. Bitvector and
// scalar descriptors fit in the fixed-width payload column directly;
// tuples and functions need a variable-length child vector, so they get
// a side table instead and payload holds the index into it.
type tupleInfo struct {
	elems []TypeID
}

// funcInfo holds the domain and range of a function descriptor.
type funcInfo struct {
	domain []TypeID
	result TypeID
}

// store is the descriptor table plus its intrusive free-list allocator,
// combined into one slot-indexed structure: every TypeID is an index
// shared across kinds/cards/flags/names/payload.
type store struct {
	kinds   []Kind
	cards   []uint32
	flags   []Flag
	names   []strref.ID
	payload []uint32 // bitvector width / scalar cardinality / side-table index

	tuples []tupleInfo
	funcs  []funcInfo

	freeHead TypeID
	limit    uint32 // 0 means unbounded
}

func newStore(limit, capacityHint uint32) *store {
	cap := int(capacityHint) + 1
	if cap < 1 {
		cap = 1
	}
	kinds := make([]Kind, 1, cap)
	cards := make([]uint32, 1, cap)
	flags := make([]Flag, 1, cap)
	names := make([]strref.ID, 1, cap)
	payload := make([]uint32, 1, cap)
	return &store{
		kinds:    kinds,
		cards:    cards,
		flags:    flags,
		names:    names,
		payload:  payload,
		tuples:   []tupleInfo{{}},
		funcs:    []funcInfo{{}},
		freeHead: NoTypeID,
		limit:    limit,
	}
}

// alloc pops the free-list head if any, otherwise grows the store. Growth
// is delegated to Go's own slice growth (amortized O(1)) and capped at
// limit when nonzero.
func (s *store) alloc() TypeID {
	if s.freeHead != NoTypeID {
		id := s.freeHead
		s.freeHead = TypeID(s.payload[id])
		return id
	}

	n, err := safecast.Conv[uint32](len(s.kinds))
	if err != nil {
		panic(fmt.Errorf("types: slot table overflow: %w", err))
	}
	if s.limit != 0 && n >= s.limit {
		panic(fmt.Errorf("types: exceeded type table ceiling of %d slots", s.limit))
	}

	id := TypeID(n)
	s.kinds = append(s.kinds, KindInvalid)
	s.cards = append(s.cards, 0)
	s.flags = append(s.flags, 0)
	s.names = append(s.names, strref.NoID)
	s.payload = append(s.payload, 0)
	return id
}

// free splices id onto the free-list head. Callers must already have
// released any owned resources (name refcount, side-table entries).
func (s *store) free(id TypeID) {
	s.kinds[id] = KindInvalid
	s.cards[id] = 0
	s.flags[id] = 0
	s.names[id] = strref.NoID
	s.payload[id] = uint32(s.freeHead)
	s.freeHead = id
}

// live reports whether id currently refers to an allocated, non-freed slot.
func (s *store) live(id TypeID) bool {
	return id != NoTypeID && id != typeIDUnknown && int(id) < len(s.kinds) && s.kinds[id] != KindInvalid
}

func (s *store) kindOf(id TypeID) Kind {
	if !s.live(id) {
		return KindInvalid
	}
	return s.kinds[id]
}

func (s *store) appendTuple(info tupleInfo) uint32 {
	s.tuples = append(s.tuples, tupleInfo{elems: cloneIDs(info.elems)})
	slot, err := safecast.Conv[uint32](len(s.tuples) - 1)
	if err != nil {
		panic(fmt.Errorf("types: tuple side table overflow: %w", err))
	}
	return slot
}

func (s *store) appendFunc(info funcInfo) uint32 {
	s.funcs = append(s.funcs, funcInfo{domain: cloneIDs(info.domain), result: info.result})
	slot, err := safecast.Conv[uint32](len(s.funcs) - 1)
	if err != nil {
		panic(fmt.Errorf("types: function side table overflow: %w", err))
	}
	return slot
}

func cloneIDs(ids []TypeID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TypeID, len(ids))
	copy(out, ids)
	return out
}
