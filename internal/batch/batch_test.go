package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vega/internal/types"
)

func TestParseSkipsBlankAndComments(t *testing.T) {
	src := "# a comment\n\nbitvector 8\n  \nname T 1\n"
	script, err := Parse("t.vgs", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(script.Commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(script.Commands))
	}
	if script.Commands[0].Op != OpBitvector || script.Commands[0].Args[0] != "8" {
		t.Fatalf("unexpected first command: %+v", script.Commands[0])
	}
}

func TestParseRejectsUnknownOp(t *testing.T) {
	_, err := Parse("t.vgs", strings.NewReader("frobnicate 1\n"))
	if err == nil {
		t.Fatalf("expected an error for an unknown command")
	}
}

func TestRunBuildsTupleAndJoinsAgainstRegistry(t *testing.T) {
	tbl := types.Init(types.DefaultLimits())
	defer tbl.Close()

	src := "bitvector 8\nbitvector 8\ntuple 1 2\nname W 1\njoin 1 1\ngc\n"
	script, err := Parse("t.vgs", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Run(tbl, script)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.IDs) != 6 {
		t.Fatalf("got %d results, want 6", len(res.IDs))
	}
	if res.IDs[0] != res.IDs[1] {
		t.Fatalf("two bitvector(8) commands must hash-cons to the same id")
	}
	if res.IDs[4] != res.IDs[0] {
		t.Fatalf("join(1,1) must equal the type itself")
	}
	if got := tbl.LookupName("W"); got != res.IDs[0] {
		t.Fatalf("name W = %d, want %d", got, res.IDs[0])
	}
}

func TestRunRefNumbersSkipName(t *testing.T) {
	tbl := types.Init(types.DefaultLimits())
	defer tbl.Close()

	src := "bitvector 8\nname W 1\nbitvector 16\njoin 1 2\n"
	script, err := Parse("t.vgs", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Run(tbl, script)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	bv8 := tbl.Bitvector(8)
	bv16 := tbl.Bitvector(16)
	if res.IDs[2] != bv16 {
		t.Fatalf("ref 2 must be the second bitvector, unaffected by the intervening name command, got %d want %d", res.IDs[2], bv16)
	}
	if got := tbl.Join(bv8, bv16); res.IDs[3] != got {
		t.Fatalf("join 1 2 must join the two bitvectors, got %d want %d", res.IDs[3], got)
	}
}

func TestRunRejectsDanglingReference(t *testing.T) {
	tbl := types.Init(types.DefaultLimits())
	defer tbl.Close()

	script, err := Parse("t.vgs", strings.NewReader("tuple 1 2\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := Run(tbl, script); err == nil {
		t.Fatalf("expected an error referencing a type that doesn't exist yet")
	}
}

func TestListAndLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.vgs"), []byte("bitvector 4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.vgs"), []byte("bitvector 8\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("not a script"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	files, err := ListScripts(dir)
	if err != nil {
		t.Fatalf("ListScripts: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d scripts, want 2", len(files))
	}

	scripts, err := LoadDir(context.Background(), dir, 0)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(scripts) != 2 {
		t.Fatalf("got %d loaded scripts, want 2", len(scripts))
	}
	for _, s := range scripts {
		if len(s.Commands) != 1 {
			t.Fatalf("script %s: got %d commands, want 1", s.Path, len(s.Commands))
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	cache, err := OpenCache("vega-test")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}

	src := []byte("bitvector 8\nname W 1\n")
	script, err := Parse("t.vgs", strings.NewReader(string(src)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	key := KeyOf(src)

	if err := cache.Put(key, script); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if len(got.Commands) != len(script.Commands) {
		t.Fatalf("round-tripped %d commands, want %d", len(got.Commands), len(script.Commands))
	}
	if got.Commands[1].Op != OpName || got.Commands[1].Args[0] != "W" {
		t.Fatalf("round-tripped command mismatch: %+v", got.Commands[1])
	}
}

func TestLoadFilesPopulatesAndHitsCache(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)
	cache, err := OpenCache("vega-test")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}

	scriptDir := t.TempDir()
	path := filepath.Join(scriptDir, "a.vgs")
	contents := []byte("bitvector 4\nname W 1\n")
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	first, err := LoadFiles(context.Background(), []string{path}, 0, cache)
	if err != nil {
		t.Fatalf("LoadFiles (cold): %v", err)
	}
	if len(first) != 1 || len(first[0].Commands) != 2 {
		t.Fatalf("unexpected cold load result: %+v", first)
	}

	if _, ok, err := cache.Get(KeyOf(contents)); err != nil || !ok {
		t.Fatalf("expected Put during the cold load to have populated the cache, ok=%v err=%v", ok, err)
	}

	second, err := LoadFiles(context.Background(), []string{path}, 0, cache)
	if err != nil {
		t.Fatalf("LoadFiles (warm): %v", err)
	}
	if len(second) != 1 || len(second[0].Commands) != len(first[0].Commands) {
		t.Fatalf("warm load mismatch: %+v vs %+v", second, first)
	}
	if second[0].Path != path {
		t.Fatalf("cached script Path not restamped: got %q, want %q", second[0].Path, path)
	}
}

func TestCacheMiss(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	cache, err := OpenCache("vega-test")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	_, ok, err := cache.Get(KeyOf([]byte("nothing")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected a cache miss")
	}
}
