package models

import (
	"fmt"
	"sync"
)

// Selector owns the process-wide active model identifier. The value is read
// by every request's fingerprinting and gateway call, and occasionally
// written by a model-switch request. Selection is global rather than
// task-scoped, and resets to the configured default on restart.
type Selector struct {
	mut       sync.RWMutex
	available map[string]string // name -> backend model tag
	current   string
}

func New(available map[string]string, defaultName string) (*Selector, error) {
	tag, ok := available[defaultName]
	if !ok {
		return nil, fmt.Errorf("default model %s is not in the configured model set", defaultName)
	}

	copied := make(map[string]string, len(available))
	for k, v := range available {
		copied[k] = v
	}

	return &Selector{available: copied, current: tag}, nil
}

// Select switches the active model for every task. Names outside the
// allow-list are rejected and leave the state unchanged.
func (s *Selector) Select(name string) bool {
	s.mut.Lock()
	defer s.mut.Unlock()

	tag, ok := s.available[name]
	if !ok {
		return false
	}
	s.current = tag
	return true
}

// Current returns a snapshot of the active model tag. Callers take one
// snapshot per request and reuse it for both the cache key and the gateway
// call, so a concurrent switch can never split a single request across two
// models.
func (s *Selector) Current() string {
	s.mut.RLock()
	defer s.mut.RUnlock()
	return s.current
}

// Available returns a copy of the model allow-list.
func (s *Selector) Available() map[string]string {
	s.mut.RLock()
	defer s.mut.RUnlock()

	out := make(map[string]string, len(s.available))
	for k, v := range s.available {
		out[k] = v
	}
	return out
}
