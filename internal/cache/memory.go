package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	entry   Entry
	expires time.Time
}

// DefaultMaxItems 内存缓存默认条数上限
const DefaultMaxItems = 1 << 16

// Memory 进程内缓存，没配 Redis 时用
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
	max   int
	now   func() time.Time
}

// ttl <= 0 表示永不过期；maxItems <= 0 表示不限条数
func NewMemory(ttl time.Duration, maxItems int) *Memory {
	return &Memory{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		max:   maxItems,
		now:   time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return Entry{}, false, nil
	}
	if !it.expires.IsZero() && m.now().After(it.expires) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return Entry{}, false, nil
	}
	return it.entry, true, nil
}

func (m *Memory) Set(_ context.Context, key string, e Entry) error {
	it := memoryItem{entry: e}
	if m.ttl > 0 {
		it.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[key]; !ok && m.max > 0 && len(m.items) >= m.max {
		m.evictLocked()
	}
	m.items[key] = it
	return nil
}

// 先扔掉过期的；还是满就整个清空，和置换表一个策略
func (m *Memory) evictLocked() {
	now := m.now()
	for k, it := range m.items {
		if !it.expires.IsZero() && now.After(it.expires) {
			delete(m.items, k)
		}
	}
	if len(m.items) >= m.max {
		clear(m.items)
	}
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
