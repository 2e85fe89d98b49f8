package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"vega/internal/types"
)

func TestNewListsLiveTypesOnly(t *testing.T) {
	tbl := types.Init(types.DefaultLimits())
	defer tbl.Close()

	bv := tbl.Bitvector(8)
	tbl.SetName("W", bv)
	tbl.Mark(bv)
	tbl.GC()

	m := New(tbl)
	if len(m.rows) != 4 {
		t.Fatalf("got %d rows, want 4 (Bool, Int, Real, W)", len(m.rows))
	}
}

func TestCursorMovementClamps(t *testing.T) {
	tbl := types.Init(types.DefaultLimits())
	defer tbl.Close()
	m := New(tbl)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	mm := updated.(*Model)
	if mm.cursor != 0 {
		t.Fatalf("cursor must clamp at 0, got %d", mm.cursor)
	}

	for i := 0; i < len(mm.rows)+5; i++ {
		updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyDown})
		mm = updated.(*Model)
	}
	if mm.cursor != len(mm.rows)-1 {
		t.Fatalf("cursor must clamp at last row, got %d want %d", mm.cursor, len(mm.rows)-1)
	}
}

func TestDrillIntoTupleChildAndBack(t *testing.T) {
	tbl := types.Init(types.DefaultLimits())
	defer tbl.Close()

	builtins := tbl.Builtins()
	tup := tbl.Tuple([]types.TypeID{builtins.Bool, builtins.Int})
	tbl.SetName("Pair", tup)
	tbl.Mark(tup)
	tbl.GC()

	m := New(tbl)
	tupleRow := m.rowOf[tup]
	m.cursor = tupleRow

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := updated.(*Model)
	if mm.rows[mm.cursor].id != builtins.Bool {
		t.Fatalf("enter on a tuple must jump to its first element, got row id %d", mm.rows[mm.cursor].id)
	}

	updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	mm = updated.(*Model)
	if mm.cursor != tupleRow {
		t.Fatalf("backspace must return to the tuple row, got %d want %d", mm.cursor, tupleRow)
	}
}

func TestQuitKeySetsQuitting(t *testing.T) {
	tbl := types.Init(types.DefaultLimits())
	defer tbl.Close()
	m := New(tbl)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	mm := updated.(*Model)
	if !mm.quitting {
		t.Fatalf("esc must set quitting")
	}
	if cmd == nil {
		t.Fatalf("esc must return tea.Quit")
	}
}
