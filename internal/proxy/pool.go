package proxy

import (
	"strings"
	"sync"
	"time"
)

// failureCooldown is how long a proxy stays benched after a launch failure.
const failureCooldown = 5 * time.Minute

// Pool rotates upstream proxies across browser sessions. Proxies that failed
// recently are skipped until their cooldown expires.
type Pool struct {
	proxies []string
	index   int
	mu      sync.Mutex
	failed  map[string]time.Time
}

// NewPool creates a Pool from a list of "host:port" proxy addresses.
// An empty list yields a pool that always returns "".
func NewPool(proxies []string) *Pool {
	return &Pool{
		proxies: proxies,
		failed:  make(map[string]time.Time),
	}
}

// FromEnv builds a Pool from a comma-separated proxy list, as passed in the
// PROXY environment variable. A single address behaves as a pool of one.
func FromEnv(value string) *Pool {
	var proxies []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return NewPool(proxies)
}

// Next returns the next healthy proxy, or "" when the pool is empty.
// When every proxy is benched the current one is returned anyway; a stale
// proxy beats no proxy.
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	start := p.index
	for {
		proxy := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		if failTime, ok := p.failed[proxy]; ok {
			if time.Since(failTime) < failureCooldown {
				if p.index == start {
					return proxy
				}
				continue
			}
			delete(p.failed, proxy)
		}

		return proxy
	}
}

// MarkFailed benches a proxy for the cooldown period.
func (p *Pool) MarkFailed(proxy string) {
	if proxy == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy] = time.Now()
}

// MarkHealthy clears the failure status of a proxy.
func (p *Pool) MarkHealthy(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy)
}

// Size returns the number of configured proxies.
func (p *Pool) Size() int {
	return len(p.proxies)
}
