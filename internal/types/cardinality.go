package types

// Each function here is a pure computation over child cardinalities and
// flags: recomputing from the same children always yields the same
// answer, with no hidden dependence on allocation order or table state.

func deriveBitvector(width uint32) (card uint32, flags Flag) {
	if width < 32 {
		return uint32(1) << width, SmallFlags
	}
	return CardInfinite, LargeFlags
}

func deriveScalar(size uint32) (card uint32, flags Flag) {
	if size == 1 {
		return 1, UnitFlags
	}
	return size, SmallFlags
}

func deriveUninterpreted() (card uint32, flags Flag) {
	return CardInfinite, InfiniteFlags
}

// deriveTuple computes the componentwise-conjunction flags and the
// saturating product cardinality of a tuple's elements.
func deriveTuple(childCards []uint32, childFlags []Flag) (card uint32, flags Flag) {
	flags = FlagFinite | FlagUnit | FlagSmall | FlagMaximal | FlagMinimal
	product := uint64(1)
	overflowed := false
	for i, cf := range childFlags {
		flags &= cf
		product *= uint64(childCards[i])
		if product > uint64(CardInfinite) {
			overflowed = true
			product = uint64(CardInfinite)
		}
	}
	if overflowed {
		flags &^= FlagSmall
	}
	return uint32(product), flags
}

// deriveFunction computes the flags and cardinality of a function type
// from its domain and range descriptors.
func deriveFunction(domainCards []uint32, domainFlags []Flag, rangeCard uint32, rangeFlags Flag) (card uint32, flags Flag) {
	flags = rangeFlags & (FlagUnit | FlagMaximal | FlagMinimal)

	rangeUnit := rangeFlags&FlagUnit != 0
	domainsFinite := true
	domainsSmallOrUnit := true
	for _, df := range domainFlags {
		if df&FlagFinite == 0 {
			domainsFinite = false
		}
		if df&FlagSmall == 0 {
			domainsSmallOrUnit = false
		}
	}

	if rangeUnit || (rangeFlags&FlagFinite != 0 && domainsFinite) {
		flags |= FlagFinite
	}

	if rangeUnit {
		return 1, flags | FlagSmall
	}

	rangeSmall := rangeFlags&FlagSmall != 0
	if !rangeSmall || !domainsSmallOrUnit {
		return CardInfinite, flags &^ FlagSmall
	}

	// range >= 2 here (small-finite, not unit): a domain product >= 32
	// already implies 2^domainProduct > UINT32_MAX, so saturate without
	// risking 64-bit overflow in the exponentiation loop below.
	domainProduct := uint64(1)
	for _, dc := range domainCards {
		domainProduct *= uint64(dc)
		if domainProduct >= 32 {
			return CardInfinite, flags &^ FlagSmall
		}
	}

	acc := uint64(1)
	base := uint64(rangeCard)
	for i := uint64(0); i < domainProduct; i++ {
		acc *= base
		if acc > uint64(CardInfinite) {
			return CardInfinite, flags &^ FlagSmall
		}
	}
	return uint32(acc), flags | FlagSmall
}
