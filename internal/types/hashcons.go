package types

// hashcons is the structural-uniqueness index for bitvector/tuple/function
// types: a hash set of ids keyed by the structural hash and equality of
// their descriptor. Hash collisions are resolved by bucket scan plus an
// explicit equality check, so a hash collision across unrelated shapes
// (e.g. bv(w) vs. a singleton tuple of id w) never causes a false hit.
type hashcons struct {
	buckets map[uint32][]TypeID
}

func newHashcons() *hashcons {
	return &hashcons{buckets: make(map[uint32][]TypeID, 64)}
}

// find scans the bucket for hash, returning the first id for which eq
// reports true.
func (h *hashcons) find(hash uint32, eq func(TypeID) bool) (TypeID, bool) {
	for _, id := range h.buckets[hash] {
		if eq(id) {
			return id, true
		}
	}
	return NoTypeID, false
}

func (h *hashcons) insert(hash uint32, id TypeID) {
	h.buckets[hash] = append(h.buckets[hash], id)
}

func (h *hashcons) remove(hash uint32, id TypeID) {
	bucket := h.buckets[hash]
	for i, v := range bucket {
		if v == id {
			bucket = append(bucket[:i], bucket[i+1:]...)
			if len(bucket) == 0 {
				delete(h.buckets, hash)
			} else {
				h.buckets[hash] = bucket
			}
			return
		}
	}
}

// Per-shape salts so that, e.g., a bitvector of width w and a singleton
// tuple containing id w hash differently even if their payload integers
// coincide.
const (
	saltBitvector uint32 = 0x9e3779b1
	saltTuple     uint32 = 0x85ebca6b
	saltFunction  uint32 = 0xc2b2ae35
)

// jenkinsMix folds vs into seed using Bob Jenkins' one-at-a-time mixing.
func jenkinsMix(seed uint32, vs ...uint32) uint32 {
	h := seed
	for _, v := range vs {
		h += v
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

func hashBitvector(width uint32) uint32 {
	return jenkinsMix(saltBitvector, width)
}

func hashTuple(elems []TypeID) uint32 {
	h := jenkinsMix(saltTuple, uint32(len(elems)))
	for _, e := range elems {
		h = jenkinsMix(h, uint32(e))
	}
	return h
}

func hashFunction(domain []TypeID, result TypeID) uint32 {
	h := jenkinsMix(saltFunction, uint32(len(domain)))
	for _, d := range domain {
		h = jenkinsMix(h, uint32(d))
	}
	return jenkinsMix(h, uint32(result))
}
