package application

import "sync"

// PathLocks serializes operations on the same file so a fix never rewrites a
// suite another goroutine is mid-way through validating. Locks are created
// on demand and held for the lifetime of the process.
type PathLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPathLocks() *PathLocks {
	return &PathLocks{locks: make(map[string]*sync.Mutex)}
}

func (p *PathLocks) Lock(path string) {
	p.forPath(path).Lock()
}

func (p *PathLocks) Unlock(path string) {
	p.forPath(path).Unlock()
}

func (p *PathLocks) forPath(path string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.locks[path]
	if !ok {
		m = &sync.Mutex{}
		p.locks[path] = m
	}
	return m
}
