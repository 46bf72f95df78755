package mock

import (
	"context"
	"sync"
)

// Provider is a mock counter
type Provider struct {
	Value       int64
	Unavailable bool

	mutex sync.Mutex
	keys  []string
}

// Count returns Value, or nothing if Unavailable is set
func (p *Provider) Count(ctx context.Context, key string) (int64, bool) {
	p.mutex.Lock()
	p.keys = append(p.keys, key)
	p.mutex.Unlock()

	if p.Unavailable {
		return 0, false
	}

	return p.Value, true
}

// Keys returns the keys that have been counted
func (p *Provider) Keys() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return append([]string(nil), p.keys...)
}
