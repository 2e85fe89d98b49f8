// Package strref provides a reference-counted string pool.
//
// Every interned string carries a refcount; callers must pair each Retain
// with exactly one Release. When a string's refcount drops to zero its slot
// is reclaimed and folded onto an internal free list, the same way the type
// table's own slots are reclaimed by garbage collection.
package strref

import (
	"fmt"

	"fortio.org/safecast"
)

// ID identifies an interned string. The zero value, NoID, never refers to a
// live entry.
type ID uint32

// NoID marks the absence of a string reference.
const NoID ID = 0

// Pool is a reference-counted string interner.
type Pool struct {
	texts    []string
	refcount []uint32
	index    map[string]ID
	free     []ID
}

// New creates an empty pool.
func New() *Pool {
	return &Pool{
		texts:    []string{""},
		refcount: []uint32{0},
		index:    make(map[string]ID, 64),
	}
}

// Retain interns s if needed and increments its refcount, returning its ID.
func (p *Pool) Retain(s string) ID {
	if id, ok := p.index[s]; ok {
		p.refcount[id]++
		return id
	}

	if n := len(p.free); n > 0 {
		id := p.free[n-1]
		p.free = p.free[:n-1]
		p.texts[id] = s
		p.refcount[id] = 1
		p.index[s] = id
		return id
	}

	idx, err := safecast.Conv[uint32](len(p.texts))
	if err != nil {
		panic(fmt.Errorf("strref: pool overflow: %w", err))
	}
	id := ID(idx)
	p.texts = append(p.texts, s)
	p.refcount = append(p.refcount, 1)
	p.index[s] = id
	return id
}

// RetainID increments the refcount of an already-interned ID. It is a
// programming error to call this with an ID whose refcount is already zero.
func (p *Pool) RetainID(id ID) ID {
	if id == NoID {
		return NoID
	}
	if int(id) >= len(p.refcount) || p.refcount[id] == 0 {
		panic(fmt.Errorf("strref: retain of dead id %d", id))
	}
	p.refcount[id]++
	return id
}

// Release drops one reference. Releasing an ID whose refcount is already
// zero is a programming error: every Retain must be paired with exactly one
// Release.
func (p *Pool) Release(id ID) {
	if id == NoID {
		return
	}
	if int(id) >= len(p.refcount) || p.refcount[id] == 0 {
		panic(fmt.Errorf("strref: unbalanced release of id %d", id))
	}
	p.refcount[id]--
	if p.refcount[id] == 0 {
		delete(p.index, p.texts[id])
		p.texts[id] = ""
		p.free = append(p.free, id)
	}
}

// Lookup returns the text for id, or ("", false) if id is not live.
func (p *Pool) Lookup(id ID) (string, bool) {
	if id == NoID || int(id) >= len(p.texts) || p.refcount[id] == 0 {
		return "", false
	}
	return p.texts[id], true
}

// LookupID returns the ID currently interned for s without touching its
// refcount, or (NoID, false) if s has no live entry.
func (p *Pool) LookupID(s string) (ID, bool) {
	id, ok := p.index[s]
	return id, ok
}

// RefCount reports the current refcount of id, for tests and diagnostics.
func (p *Pool) RefCount(id ID) uint32 {
	if id == NoID || int(id) >= len(p.refcount) {
		return 0
	}
	return p.refcount[id]
}
