// Package filecache provides a per-build cache of file metadata and
// content digests keyed by path. It exists so that many actions
// stat'ing or hashing the same input during one build invocation hit
// the filesystem only once. The cache is valid for a single build; it
// performs no staleness checks of its own.
package filecache

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/masonbuild/mason/pkg/errors"
	"github.com/masonbuild/mason/pkg/filesystem"
)

// DefaultCapacity bounds the number of cached entries when the caller
// does not choose one.
const DefaultCapacity = 4096

// Metadata is the cached stat result for a path.
type Metadata struct {
	Size       int64
	Mode       fs.FileMode
	ModTime    time.Time
	IsRegular  bool
	Executable bool
}

type entry struct {
	meta   Metadata
	digest string
}

// Cache caches file metadata and digests for one build invocation.
// Safe for concurrent use by independently executing actions.
type Cache struct {
	mu       sync.Mutex
	fs       filesystem.FS
	execRoot string
	entries  *lru.Cache[string, *entry]
}

// New creates a cache over the given filesystem. Relative paths are
// resolved against execRoot. A capacity <= 0 selects DefaultCapacity.
func New(fsys filesystem.FS, execRoot string, capacity int) (*Cache, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	entries, err := lru.New[string, *entry](capacity)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "create file cache")
	}
	return &Cache{fs: fsys, execRoot: execRoot, entries: entries}, nil
}

func (c *Cache) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.execRoot, path)
}

// Metadata returns the cached stat result for path, populating the
// cache on first access.
func (c *Cache) Metadata(path string) (Metadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.lookup(path)
	if err != nil {
		return Metadata{}, err
	}
	return e.meta, nil
}

// Digest returns the sha256 content digest for path, computing and
// caching it on first access. Only regular files have digests.
func (c *Cache) Digest(path string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.lookup(path)
	if err != nil {
		return "", err
	}
	if !e.meta.IsRegular {
		return "", errors.Newf(errors.ErrInvalidInput, "cannot digest non-regular file %s", path)
	}
	if e.digest == "" {
		content, err := c.fs.ReadFile(c.resolve(path))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "read %s", path)
		}
		sum := sha256.Sum256(content)
		e.digest = "sha256:" + hex.EncodeToString(sum[:])
	}
	return e.digest, nil
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func (c *Cache) lookup(path string) (*entry, error) {
	abs := c.resolve(path)
	if e, ok := c.entries.Get(abs); ok {
		return e, nil
	}
	info, err := c.fs.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "stat %s", path)
	}
	e := &entry{meta: Metadata{
		Size:       info.Size(),
		Mode:       info.Mode(),
		ModTime:    info.ModTime(),
		IsRegular:  info.Mode().IsRegular(),
		Executable: filesystem.IsExecutable(info.Mode()),
	}}
	c.entries.Add(abs, e)
	return e, nil
}
