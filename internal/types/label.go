package types

import (
	"fmt"
	"strings"
)

// String renders id as a readable type expression: primitives by
// keyword, compounds by recursing into their children with a depth
// guard against pathologically deep structurally-shared descriptors.
func (t *Table) String(id TypeID) string {
	return t.label(id, 0)
}

const labelDepthLimit = 64

func (t *Table) label(id TypeID, depth int) string {
	if depth > labelDepthLimit {
		return "..."
	}
	if !t.store.live(id) {
		if id == NoTypeID {
			return "<null>"
		}
		return fmt.Sprintf("<dead:%d>", id)
	}

	if name, ok := t.DisplayName(id); ok && name != "" {
		return name
	}

	switch t.store.kinds[id] {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindReal:
		return "Real"
	case KindBitvector:
		return fmt.Sprintf("BitVec[%d]", t.store.payload[id])
	case KindScalar:
		return fmt.Sprintf("Scalar#%d[%d]", id, t.store.payload[id])
	case KindUninterpreted:
		return fmt.Sprintf("Atom#%d", id)
	case KindTuple:
		info := t.store.tuples[t.store.payload[id]]
		parts := make([]string, len(info.elems))
		for i, e := range info.elems {
			parts[i] = t.label(e, depth+1)
		}
		return "(" + strings.Join(parts, " * ") + ")"
	case KindFunction:
		info := t.store.funcs[t.store.payload[id]]
		parts := make([]string, len(info.domain))
		for i, d := range info.domain {
			parts[i] = t.label(d, depth+1)
		}
		return "(" + strings.Join(parts, ", ") + ") -> " + t.label(info.result, depth+1)
	default:
		return "<invalid>"
	}
}
