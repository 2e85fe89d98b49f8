// Package batch loads and parses ".vgs" scripts: whitespace-separated
// command lines that drive a types.Table (create a type, name it, join
// two types, run the garbage collector). Loading many scripts in
// parallel is safe since parsing is independent per file, but running
// the parsed commands against a table is strictly sequential: a batch
// run owns the table for its whole duration.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Op names a single command in a script.
type Op string

const (
	OpBitvector     Op = "bitvector"
	OpScalar        Op = "scalar"
	OpUninterpreted Op = "uninterpreted"
	OpTuple         Op = "tuple"
	OpFunction      Op = "function"
	OpName          Op = "name"
	OpJoin          Op = "join"
	OpMeet          Op = "meet"
	OpGC            Op = "gc"
)

// Command is one parsed script line.
type Command struct {
	Op   Op
	Args []string
	Line int
}

// Script is the ordered command list parsed from one file.
type Script struct {
	Path     string
	Commands []Command
}

// Parse reads a script from r, skipping blank lines and lines starting
// with "#".
func Parse(path string, r io.Reader) (*Script, error) {
	sc := bufio.NewScanner(r)
	script := &Script{Path: path}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		op := Op(fields[0])
		if !validOp(op) {
			return nil, fmt.Errorf("%s:%d: unknown command %q", path, lineNo, fields[0])
		}
		script.Commands = append(script.Commands, Command{
			Op:   op,
			Args: fields[1:],
			Line: lineNo,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

func validOp(op Op) bool {
	switch op {
	case OpBitvector, OpScalar, OpUninterpreted, OpTuple, OpFunction, OpName, OpJoin, OpMeet, OpGC:
		return true
	default:
		return false
	}
}

// argUint32 parses Args[i] as a base-10 uint32, for commands like
// "bitvector 8" or "tuple 3 5 7" whose arguments are all script-local
// type references or widths.
func argUint32(c Command, i int) (uint32, error) {
	if i >= len(c.Args) {
		return 0, fmt.Errorf("line %d: %s: missing argument %d", c.Line, c.Op, i)
	}
	v, err := strconv.ParseUint(c.Args[i], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: argument %d: %w", c.Line, c.Op, i, err)
	}
	return uint32(v), nil
}
