package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheSchemaVersion is bumped whenever cachedScript's shape changes.
const cacheSchemaVersion uint16 = 1

// Cache stores parsed command lists keyed by script content hash, so a
// second run over an unchanged script skips re-parsing. It never
// caches anything about a live Table: types.Table has no persistent
// or serialized form, only the parsed-but-not-yet-run command list is
// disk-cached.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachedScript struct {
	Schema   uint16
	Path     string
	Commands []cachedCommand
}

type cachedCommand struct {
	Op   string
	Args []string
	Line int
}

// OpenCache initializes a Cache rooted under the user's XDG cache
// directory.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "scripts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// KeyOf hashes a script's raw contents to a cache key.
func KeyOf(contents []byte) [sha256.Size]byte {
	return sha256.Sum256(contents)
}

func (c *Cache) pathFor(key [sha256.Size]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put stores script under key, replacing any existing entry.
func (c *Cache) Put(key [sha256.Size]byte, script *Script) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := toCached(script)
	p := c.pathFor(key)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get retrieves the script cached under key, if any.
func (c *Cache) Get(key [sha256.Size]byte) (*Script, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachedScript
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return fromCached(payload), true, nil
}

func toCached(s *Script) *cachedScript {
	out := &cachedScript{
		Schema:   cacheSchemaVersion,
		Path:     s.Path,
		Commands: make([]cachedCommand, len(s.Commands)),
	}
	for i, c := range s.Commands {
		out.Commands[i] = cachedCommand{Op: string(c.Op), Args: c.Args, Line: c.Line}
	}
	return out
}

func fromCached(p cachedScript) *Script {
	s := &Script{Path: p.Path, Commands: make([]Command, len(p.Commands))}
	for i, c := range p.Commands {
		s.Commands[i] = Command{Op: Op(c.Op), Args: c.Args, Line: c.Line}
	}
	return s
}
