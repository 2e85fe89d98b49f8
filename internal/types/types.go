// Package types implements the hash-consed, garbage-collected table of
// first-order SMT types: Booleans, integers, reals, fixed-width bitvectors,
// finite scalar sorts, uninterpreted atoms, tuples, and total functions.
package types

import "fmt"

// TypeID identifies a type inside a Table. Ids are never renumbered, so
// they remain stable across table growth and garbage collection of other
// types.
type TypeID uint32

// NoTypeID means "no type". Slot 0 is permanently reserved and never
// allocated to a real descriptor.
const NoTypeID TypeID = 0

// typeIDUnknown is a reserved, unexported id that is never live. The
// join/meet caches do not use it: a cache miss is reported by the cache
// lookup's boolean result.
const typeIDUnknown TypeID = TypeID(^uint32(0))

// Kind tags the variant a descriptor holds.
type Kind uint8

const (
	// KindInvalid marks a free or never-allocated slot.
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindReal
	KindBitvector
	KindScalar
	KindUninterpreted
	KindTuple
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindBitvector:
		return "bitvector"
	case KindScalar:
		return "scalar"
	case KindUninterpreted:
		return "uninterpreted"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Flag is a bitset of cardinality/lattice-position properties attached
// to every descriptor.
type Flag uint8

const (
	// FlagFinite: cardinality is exact and < infinity.
	FlagFinite Flag = 1 << iota
	// FlagUnit: cardinality is exactly 1.
	FlagUnit
	// FlagSmall: cardinality fits in 32 bits and is exact (includes unit).
	FlagSmall
	// FlagMaximal: this type is a top element at its lattice position.
	FlagMaximal
	// FlagMinimal: this type is a bottom element at its lattice position.
	FlagMinimal
)

// Canonical flag combinations.
const (
	UnitFlags     = FlagFinite | FlagUnit | FlagSmall | FlagMaximal | FlagMinimal
	SmallFlags    = FlagFinite | FlagSmall | FlagMaximal | FlagMinimal
	LargeFlags    = FlagFinite | FlagMaximal | FlagMinimal
	InfiniteFlags = FlagMaximal | FlagMinimal
)

func (f Flag) String() string {
	if f == 0 {
		return "-"
	}
	s := ""
	if f&FlagFinite != 0 {
		s += "F"
	}
	if f&FlagUnit != 0 {
		s += "U"
	}
	if f&FlagSmall != 0 {
		s += "S"
	}
	if f&FlagMaximal != 0 {
		s += "^"
	}
	if f&FlagMinimal != 0 {
		s += "v"
	}
	return s
}

// CardInfinite is the saturated cardinality value for infinite and
// large-finite-but-inexact types.
const CardInfinite uint32 = ^uint32(0)

// saturatingMul multiplies two cardinalities, saturating at CardInfinite.
func saturatingMul(a, b uint32) uint32 {
	if a == 0 || b == 0 {
		return 0
	}
	product := uint64(a) * uint64(b)
	if product > uint64(CardInfinite) {
		return CardInfinite
	}
	return uint32(product)
}
