package local

import (
	"sync"
	"time"

	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/cache/remote"
)

// New returns an in-process store implementing the same interface as the
// remote backends. Used by tests and by deployments running without a cache
// backend.
func New() remote.Client {
	return &local{
		store: make(map[string]entry),
		mut:   &sync.RWMutex{},
	}
}

type entry struct {
	data     []byte
	deadline time.Time
}

type local struct {
	store map[string]entry
	mut   *sync.RWMutex
}

func (l *local) Get(key string) ([]byte, error) {
	l.mut.RLock()
	defer l.mut.RUnlock()

	e, ok := l.store[key]
	if !ok || time.Now().After(e.deadline) {
		return nil, remote.ErrNotFound
	}

	return e.data, nil
}

func (l *local) Set(key string, data []byte, ttl time.Duration) error {
	l.mut.Lock()
	defer l.mut.Unlock()

	l.store[key] = entry{data: data, deadline: time.Now().Add(ttl)}
	return nil
}

func (l *local) Delete(key string) (bool, error) {
	l.mut.Lock()
	defer l.mut.Unlock()

	_, ok := l.store[key]
	delete(l.store, key)
	return ok, nil
}

func (l *local) Ready() bool {
	return true
}
