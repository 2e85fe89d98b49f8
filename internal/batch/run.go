package batch

import (
	"fmt"

	"vega/internal/types"
)

// Result records one entry per command, in command order, for a
// script's Run: the type id the command produced, or NoTypeID.
type Result struct {
	Path string
	IDs  []types.TypeID // 0 (NoTypeID) for commands with no id result
}

// Run executes every command in script against tbl in order, returning
// the id (or NoTypeID) each command produced. A registry maps the
// script's own local numbering (1-based position among prior
// id-producing commands) to the TypeID actually allocated, so a script
// can refer back to "the 2nd type created" via a plain integer.
func Run(tbl *types.Table, script *Script) (Result, error) {
	res := Result{Path: script.Path}
	registry := []types.TypeID{types.NoTypeID} // 1-based; index 0 unused

	resolve := func(c Command, i int) (types.TypeID, error) {
		n, err := argUint32(c, i)
		if err != nil {
			return types.NoTypeID, err
		}
		if int(n) >= len(registry) {
			return types.NoTypeID, fmt.Errorf("line %d: %s: reference %d has no earlier type", c.Line, c.Op, n)
		}
		return registry[n], nil
	}

	for _, c := range script.Commands {
		var id types.TypeID
		var err error

		switch c.Op {
		case OpBitvector:
			var width uint32
			if width, err = argUint32(c, 0); err == nil {
				id = tbl.Bitvector(width)
			}
		case OpScalar:
			var size uint32
			if size, err = argUint32(c, 0); err == nil {
				id = tbl.NewScalar(size)
			}
		case OpUninterpreted:
			id = tbl.NewUninterpreted()
		case OpTuple:
			var elems []types.TypeID
			elems, err = resolveAll(c, resolve)
			if err == nil {
				id = tbl.Tuple(elems)
			}
		case OpFunction:
			if len(c.Args) < 2 {
				err = fmt.Errorf("line %d: %s: need at least a result and one domain type", c.Line, c.Op)
				break
			}
			var result types.TypeID
			result, err = resolve(c, 0)
			if err != nil {
				break
			}
			var domain []types.TypeID
			for i := 1; i < len(c.Args); i++ {
				var d types.TypeID
				d, err = resolve(c, i)
				if err != nil {
					break
				}
				domain = append(domain, d)
			}
			if err == nil {
				id = tbl.Function(domain, result)
			}
		case OpName:
			if len(c.Args) < 2 {
				err = fmt.Errorf("line %d: %s: need a name and a type reference", c.Line, c.Op)
				break
			}
			var target types.TypeID
			target, err = resolve(c, 1)
			if err == nil {
				tbl.SetName(c.Args[0], target)
			}
		case OpJoin, OpMeet:
			if len(c.Args) != 2 {
				err = fmt.Errorf("line %d: %s: need exactly two type references", c.Line, c.Op)
				break
			}
			var a, b types.TypeID
			if a, err = resolve(c, 0); err != nil {
				break
			}
			if b, err = resolve(c, 1); err != nil {
				break
			}
			if c.Op == OpJoin {
				id = tbl.Join(a, b)
			} else {
				id = tbl.Meet(a, b)
			}
		case OpGC:
			tbl.GC()
		}

		if err != nil {
			return res, err
		}

		switch c.Op {
		case OpBitvector, OpScalar, OpUninterpreted, OpTuple, OpFunction, OpJoin, OpMeet:
			registry = append(registry, id)
		}
		res.IDs = append(res.IDs, id)
	}

	return res, nil
}

func resolveAll(c Command, resolve func(Command, int) (types.TypeID, error)) ([]types.TypeID, error) {
	out := make([]types.TypeID, len(c.Args))
	for i := range c.Args {
		id, err := resolve(c, i)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
