package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements filesystem.FS with in-memory storage. Unlike
// afero's MemMapFs it supports real symlink semantics (Lstat vs Stat,
// Readlink) and per-path error injection, which the symlink action
// tests need.
type MemoryFS struct {
	mu       sync.RWMutex
	nodes    map[string]*memNode
	failures map[string]error
}

type memNode struct {
	name       string
	mode       fs.FileMode
	modTime    time.Time
	content    []byte
	linkTarget string
}

// NewMemoryFS creates an in-memory filesystem with a root directory.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		nodes: map[string]*memNode{
			"/": {name: "/", mode: 0o755 | fs.ModeDir, modTime: time.Now()},
		},
		failures: map[string]error{},
	}
}

// FailWith makes every operation on path return err.
func (m *MemoryFS) FailWith(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[m.norm(path)] = err
}

func (m *MemoryFS) norm(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

func (m *MemoryFS) check(path string) error {
	if err, ok := m.failures[path]; ok {
		return err
	}
	return nil
}

func (m *MemoryFS) get(path string) (*memNode, error) {
	if err := m.check(path); err != nil {
		return nil, err
	}
	node, ok := m.nodes[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return node, nil
}

// resolve follows symlink chains to the terminal node.
func (m *MemoryFS) resolve(path string) (*memNode, string, error) {
	for i := 0; i < 16; i++ {
		node, err := m.get(path)
		if err != nil {
			return nil, "", err
		}
		if node.mode&fs.ModeSymlink == 0 {
			return node, path, nil
		}
		path = m.norm(node.linkTarget)
	}
	return nil, "", &fs.PathError{Op: "stat", Path: path, Err: fs.ErrInvalid}
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, _, err := m.resolve(m.norm(name))
	if err != nil {
		return nil, err
	}
	return node.info(), nil
}

func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, err := m.get(m.norm(name))
	if err != nil {
		return nil, err
	}
	return node.info(), nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, path, err := m.resolve(m.norm(name))
	if err != nil {
		return nil, err
	}
	if node.mode.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid}
	}
	out := make([]byte, len(node.content))
	copy(out, node.content)
	return out, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.norm(name)
	if err := m.check(path); err != nil {
		return err
	}
	parent, ok := m.nodes[filepath.Dir(path)]
	if !ok || !parent.mode.IsDir() {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if existing, ok := m.nodes[path]; ok {
		if existing.mode.IsDir() {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrInvalid}
		}
		existing.content = append([]byte(nil), data...)
		existing.modTime = time.Now()
		return nil
	}
	m.nodes[path] = &memNode{
		name:    filepath.Base(path),
		mode:    perm,
		modTime: time.Now(),
		content: append([]byte(nil), data...),
	}
	return nil
}

func (m *MemoryFS) Chmod(name string, mode fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	node, _, err := m.resolve(m.norm(name))
	if err != nil {
		return err
	}
	node.mode = (node.mode &^ fs.ModePerm) | mode.Perm()
	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := m.norm(path)
	if err := m.check(clean); err != nil {
		return err
	}
	var build func(p string) error
	build = func(p string) error {
		if node, ok := m.nodes[p]; ok {
			if !node.mode.IsDir() {
				return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
			}
			return nil
		}
		if p != "/" {
			if err := build(filepath.Dir(p)); err != nil {
				return err
			}
		}
		m.nodes[p] = &memNode{
			name:    filepath.Base(p),
			mode:    perm.Perm() | fs.ModeDir,
			modTime: time.Now(),
		}
		return nil
	}
	return build(clean)
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dir := m.norm(name)
	node, err := m.get(dir)
	if err != nil {
		return nil, err
	}
	if !node.mode.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrInvalid}
	}
	prefix := dir
	if prefix != "/" {
		prefix += "/"
	}
	var entries []fs.DirEntry
	for path, child := range m.nodes {
		if path == dir || !strings.HasPrefix(path, prefix) {
			continue
		}
		if strings.Contains(path[len(prefix):], "/") {
			continue
		}
		entries = append(entries, fs.FileInfoToDirEntry(child.info()))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MemoryFS) Symlink(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.norm(newname)
	if err := m.check(path); err != nil {
		return err
	}
	if _, ok := m.nodes[path]; ok {
		return &fs.PathError{Op: "symlink", Path: path, Err: fs.ErrExist}
	}
	parent, ok := m.nodes[filepath.Dir(path)]
	if !ok || !parent.mode.IsDir() {
		return &fs.PathError{Op: "symlink", Path: path, Err: fs.ErrNotExist}
	}
	m.nodes[path] = &memNode{
		name:       filepath.Base(path),
		mode:       0o777 | fs.ModeSymlink,
		modTime:    time.Now(),
		linkTarget: oldname,
	}
	return nil
}

func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, err := m.get(m.norm(name))
	if err != nil {
		return "", err
	}
	if node.mode&fs.ModeSymlink == 0 {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
	}
	return node.linkTarget, nil
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.norm(name)
	if err := m.check(path); err != nil {
		return err
	}
	node, ok := m.nodes[path]
	if !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	if node.mode.IsDir() {
		prefix := path + "/"
		for other := range m.nodes {
			if strings.HasPrefix(other, prefix) {
				return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrInvalid}
			}
		}
	}
	delete(m.nodes, path)
	return nil
}

func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := m.norm(path)
	if err := m.check(clean); err != nil {
		return err
	}
	prefix := clean + "/"
	for other := range m.nodes {
		if other == clean || strings.HasPrefix(other, prefix) {
			delete(m.nodes, other)
		}
	}
	return nil
}

func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	from := m.norm(oldpath)
	to := m.norm(newpath)
	if err := m.check(from); err != nil {
		return err
	}
	if err := m.check(to); err != nil {
		return err
	}
	node, ok := m.nodes[from]
	if !ok {
		return &fs.PathError{Op: "rename", Path: from, Err: fs.ErrNotExist}
	}
	moved := map[string]*memNode{to: node}
	node.name = filepath.Base(to)
	prefix := from + "/"
	for other, child := range m.nodes {
		if strings.HasPrefix(other, prefix) {
			moved[to+"/"+other[len(prefix):]] = child
			delete(m.nodes, other)
		}
	}
	delete(m.nodes, from)
	for path, child := range moved {
		m.nodes[path] = child
	}
	return nil
}

func (n *memNode) info() fs.FileInfo {
	return &memFileInfo{
		name:    n.name,
		size:    int64(len(n.content)),
		mode:    n.mode,
		modTime: n.modTime,
	}
}

type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (i *memFileInfo) Name() string       { return i.name }
func (i *memFileInfo) Size() int64        { return i.size }
func (i *memFileInfo) Mode() fs.FileMode  { return i.mode }
func (i *memFileInfo) ModTime() time.Time { return i.modTime }
func (i *memFileInfo) IsDir() bool        { return i.mode.IsDir() }
func (i *memFileInfo) Sys() interface{}   { return nil }
