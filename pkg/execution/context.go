// Package execution provides the immutable context bundle an action
// receives to perform its work: the executor, the per-build file cache,
// an input prefetcher, the action key context, output streams, and the
// environment and execution-property maps.
package execution

import (
	"github.com/masonbuild/mason/pkg/filecache"
	"github.com/masonbuild/mason/pkg/filesystem"
	"github.com/masonbuild/mason/pkg/keys"
)

// Executor supplies the exec root and the filesystem actions resolve
// their paths against.
type Executor interface {
	ExecRoot() string
	FS() filesystem.FS
}

// Params collects the collaborators for a Context. Executor is
// required; every other field has a working default.
type Params struct {
	Executor       Executor
	FileCache      *filecache.Cache
	Prefetcher     Prefetcher
	Keys           *keys.Context
	OutErr         OutErr
	Env            map[string]string
	ExecProperties map[string]string
}

// Context is the environment bundle for one execution attempt. It is
// constructed fresh per attempt and never mutated afterwards; actions
// only read from it.
type Context struct {
	executor       Executor
	fileCache      *filecache.Cache
	prefetcher     Prefetcher
	keys           *keys.Context
	outErr         OutErr
	env            map[string]string
	execProperties map[string]string
}

// New builds a Context from params, filling defaults for the optional
// collaborators. The env and exec-property maps are copied so later
// caller mutation cannot leak into a running action.
func New(p Params) *Context {
	if p.Prefetcher == nil {
		p.Prefetcher = None
	}
	if p.Keys == nil {
		p.Keys = keys.New()
	}
	if p.OutErr.Out == nil || p.OutErr.Err == nil {
		p.OutErr = Stdio()
	}
	return &Context{
		executor:       p.Executor,
		fileCache:      p.FileCache,
		prefetcher:     p.Prefetcher,
		keys:           p.Keys,
		outErr:         p.OutErr,
		env:            copyMap(p.Env),
		execProperties: copyMap(p.ExecProperties),
	}
}

// Executor returns the executor collaborator.
func (c *Context) Executor() Executor { return c.executor }

// FileCache returns the per-build file cache, or nil when the caller
// did not supply one.
func (c *Context) FileCache() *filecache.Cache { return c.fileCache }

// Prefetcher returns the input prefetcher.
func (c *Context) Prefetcher() Prefetcher { return c.prefetcher }

// Keys returns the action key context.
func (c *Context) Keys() *keys.Context { return c.keys }

// OutErr returns the output stream sinks.
func (c *Context) OutErr() OutErr { return c.outErr }

// Env returns the environment variable for name.
func (c *Context) Env(name string) (string, bool) {
	v, ok := c.env[name]
	return v, ok
}

// ExecProperty returns the execution property for name.
func (c *Context) ExecProperty(name string) (string, bool) {
	v, ok := c.execProperties[name]
	return v, ok
}

func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
