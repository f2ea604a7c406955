// Package driver holds the tooling around the IR core: the snapshot disk
// cache used for incremental recompilation and the concurrent
// build-and-merge pipeline.
package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"flare/internal/ir"
	"flare/internal/native"
)

// Digest is a SHA-256 content hash.
type Digest [sha256.Size]byte

// Current schema version - increment when Payload format changes
const snapshotSchemaVersion uint16 = 1

// ErrSchemaMismatch indicates a snapshot written by an incompatible
// version of the cache format.
var ErrSchemaMismatch = errors.New("snapshot schema mismatch")

// TypeEntry records one type definition's symbol surface.
type TypeEntry struct {
	Name         string
	Constructors []string
}

// FuncEntry records one function binding's symbol surface. Extern
// functions keep the native symbol they resolve through.
type FuncEntry struct {
	Name   string
	Extern string
}

// Payload is the on-disk snapshot of a module's symbol surface: names in
// handle insertion order, the export designation, and the rendered dump.
// Expression bodies are not serialized.
type Payload struct {
	Schema uint16

	// Module name from the project manifest.
	Module string

	Funcs []FuncEntry
	Types []TypeEntry

	// Export is the designated entry name, empty if unset.
	Export string

	// Text is the deterministic textual dump of the module.
	Text string
}

// Snapshot captures a module's symbol surface into a payload.
func Snapshot(module string, m *ir.Module) *Payload {
	p := &Payload{
		Schema: snapshotSchemaVersion,
		Module: module,
		Text:   m.AsText(),
	}
	for _, id := range m.GetGlobalVars() {
		name, _ := m.GlobalVarName(id)
		entry := FuncEntry{Name: name}
		if node, err := m.LookupVar(id); err == nil {
			if ext, ok := node.(*ir.ExternFunc); ok {
				entry.Extern = ext.Symbol
			}
		}
		p.Funcs = append(p.Funcs, entry)
	}
	for _, id := range m.GetGlobalTypeVars() {
		name, _ := m.GlobalTypeVarName(id)
		entry := TypeEntry{Name: name}
		if _, ctors, err := m.GetType(name); err == nil {
			for _, c := range ctors {
				entry.Constructors = append(entry.Constructors, c.Name)
			}
		}
		p.Types = append(p.Types, entry)
	}
	if export, ok := m.ExportFunc(); ok {
		p.Export, _ = m.GlobalVarName(export)
	}
	return p
}

// Key returns the cache key for the payload: a digest of the module name
// and its rendered text.
func (p *Payload) Key() Digest {
	h := sha256.New()
	h.Write([]byte(p.Module))
	h.Write([]byte{0})
	h.Write([]byte(p.Text))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Restore rebuilds a module's symbol surface from the payload: handles
// are re-minted in recorded order, extern functions are re-resolved
// through reg, and plain functions come back as bodyless declarations.
func (p *Payload) Restore(reg *native.Registry) (*ir.Module, error) {
	if p.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("schema %d, want %d: %w", p.Schema, snapshotSchemaVersion, ErrSchemaMismatch)
	}
	m := ir.NewWithHints(ir.Hints{
		Funcs: uint32(len(p.Funcs)),
		Types: uint32(len(p.Types)),
	})
	for _, entry := range p.Types {
		ctors := make([]ir.Constructor, len(entry.Constructors))
		for i, name := range entry.Constructors {
			ctors[i] = ir.Constructor{Name: name, Tag: int32(i)}
		}
		if err := m.Add(ir.ByName(entry.Name), &ir.ClassType{Ctors: ctors}, false); err != nil {
			return nil, err
		}
	}
	for _, entry := range p.Funcs {
		var node ir.Node
		if entry.Extern != "" {
			call, ok := reg.Lookup(entry.Extern)
			if !ok {
				return nil, fmt.Errorf("native symbol %q not registered", entry.Extern)
			}
			node = &ir.ExternFunc{Symbol: entry.Extern, Call: call}
		} else {
			node = &ir.Func{}
		}
		if err := m.Add(ir.ByName(entry.Name), node, false); err != nil {
			return nil, err
		}
	}
	if p.Export != "" {
		if err := m.AddExportFunc(ir.ByName(p.Export)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DiskCache stores payloads by digest on disk. Thread-safe for
// concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location: $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a disk cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "mods", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache. The write is
// atomic: encode to a temp file, then rename into place.
func (c *DiskCache) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. The boolean
// reports whether the key was present.
func (c *DiskCache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != snapshotSchemaVersion {
		return false, fmt.Errorf("schema %d, want %d: %w", out.Schema, snapshotSchemaVersion, ErrSchemaMismatch)
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// ReadPayload decodes a payload directly from a snapshot file.
func ReadPayload(path string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	var p Payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: failed to decode snapshot: %w", path, err)
	}
	if p.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("%s: schema %d, want %d: %w", path, p.Schema, snapshotSchemaVersion, ErrSchemaMismatch)
	}
	return &p, nil
}
