package sports

import (
	"fmt"
	"sort"
	"sync"

	domrepo "OddsPull/internal/domain/repository"
	domservice "OddsPull/internal/domain/service"
)

// Registry holds the configured sport analyzers. It is built explicitly
// at startup rather than via package-init side effects so tests and
// callers control exactly which sports exist.
type Registry struct {
	mu        sync.RWMutex
	analyzers map[domrepo.Sport]domservice.Analyzer
}

func NewRegistry(analyzers ...domservice.Analyzer) *Registry {
	r := &Registry{analyzers: make(map[domrepo.Sport]domservice.Analyzer, len(analyzers))}
	for _, a := range analyzers {
		r.analyzers[a.Sport()] = a
	}
	return r
}

// NewDefaultRegistry wires an analyzer for every supported sport using
// the same collaborators.
func NewDefaultRegistry(deps Deps) *Registry {
	return NewRegistry(
		NewMLBAnalyzer(deps),
		NewNFLAnalyzer(deps),
		NewNBAAnalyzer(deps),
	)
}

func (r *Registry) Register(a domservice.Analyzer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyzers[a.Sport()] = a
}

// Get returns the analyzer for a sport, or an error naming the sport
// so handlers can surface it directly.
func (r *Registry) Get(sport domrepo.Sport) (domservice.Analyzer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.analyzers[sport]
	if !ok {
		return nil, fmt.Errorf("unsupported sport: %s", sport)
	}
	return a, nil
}

// Sports lists the registered sport keys in stable order.
func (r *Registry) Sports() []domrepo.Sport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domrepo.Sport, 0, len(r.analyzers))
	for s := range r.analyzers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
