package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a process-local store with the same surface as Redis. The
// server uses it for OTP and reset tokens when redis is not reachable.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Memory{items: map[string]memoryEntry{}, ttl: ttl, now: time.Now}
}

func (m *Memory) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	b, ok := m.load(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store(key, b, ttl)
	return nil
}

func (m *Memory) GetString(ctx context.Context, key string) (string, bool, error) {
	b, ok := m.load(key)
	if !ok {
		return "", false, nil
	}
	return string(b), true, nil
}

func (m *Memory) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	m.store(key, []byte(value), ttl)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.items[key]; ok && m.now().Before(e.expiresAt) {
		return false, nil
	}
	m.items[key] = memoryEntry{value: []byte(value), expiresAt: m.now().Add(ttl)}
	return true, nil
}

func (m *Memory) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		ttl = m.ttl
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok || !m.now().Before(e.expiresAt) {
		e = memoryEntry{value: []byte("0")}
	}
	n, err := strconv.ParseInt(string(e.value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("incr %s: value is not an integer", key)
	}
	n++
	e.value = strconv.AppendInt(nil, n, 10)
	e.expiresAt = m.now().Add(ttl)
	m.items[key] = e
	return n, nil
}

func (m *Memory) load(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.items, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) store(key string, b []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.ttl
	}
	m.mu.Lock()
	m.items[key] = memoryEntry{value: b, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}
