package batch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ListScripts returns a sorted list of every ".vgs" file under dir.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".vgs") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LoadDir parses every script under dir in parallel, up to jobs at a
// time (GOMAXPROCS if jobs <= 0). Parsing is independent per file, so
// this is safe; running the resulting Scripts against a shared Table
// is the caller's job, and must be done one script at a time.
func LoadDir(ctx context.Context, dir string, jobs int) ([]*Script, error) {
	files, err := ListScripts(dir)
	if err != nil {
		return nil, err
	}
	return LoadFiles(ctx, files, jobs, nil)
}

// LoadFiles parses each of files in parallel, up to jobs at a time
// (GOMAXPROCS if jobs <= 0). If cache is non-nil, each file's content
// hash is checked against it first, and a freshly parsed script is
// stored back into it, so repeated runs over unchanged scripts skip
// re-parsing.
func LoadFiles(ctx context.Context, files []string, jobs int, cache *Cache) ([]*Script, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	scripts := make([]*Script, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				contents, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				key := KeyOf(contents)
				if cache != nil {
					if cached, ok, err := cache.Get(key); err == nil && ok {
						cached.Path = path
						scripts[i] = cached
						return nil
					}
				}
				script, err := Parse(path, strings.NewReader(string(contents)))
				if err != nil {
					return err
				}
				scripts[i] = script
				if cache != nil {
					_ = cache.Put(key, script)
				}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scripts, nil
}
