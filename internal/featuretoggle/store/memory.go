package store

import (
	"context"
	"sort"
	"sync"

	"github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
)

type Memory struct {
	mu       sync.RWMutex
	features map[string]bool
}

func NewMemory() *Memory {
	return &Memory{features: map[string]bool{}}
}

func (m *Memory) IsEnabled(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.features[domain.NormalizeName(name)], nil
}

func (m *Memory) Set(_ context.Context, name string, enabled bool) error {
	name = domain.NormalizeName(name)
	if name == "" {
		return domain.ErrInvalidName
	}
	m.mu.Lock()
	m.features[name] = enabled
	m.mu.Unlock()
	return nil
}

func (m *Memory) List(_ context.Context) ([]domain.Feature, error) {
	m.mu.RLock()
	items := make([]domain.Feature, 0, len(m.features))
	for name, enabled := range m.features {
		items = append(items, domain.Feature{Name: name, Enabled: enabled})
	}
	m.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

var _ domain.Store = (*Memory)(nil)
