// Package ratelimit — лимитер с фиксированным окном для публичного трекера
// статуса: не больше limit запросов за window на один ключ (IP вызывающего).
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter решает, пропускать ли очередной запрос по ключу.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type entry struct {
	count int
	reset time.Time
}

// Memory — счётчик в памяти процесса. Состояние теряется при рестарте;
// для одного инстанса этого достаточно, для нескольких нужен Redis-вариант.
type Memory struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*entry
	now     func() time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:   limit,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || now.After(e.reset) {
		m.entries[key] = &entry{count: 1, reset: now.Add(m.window)}
		return true, nil
	}
	if e.count >= m.limit {
		return false, nil
	}
	e.count++
	return true, nil
}
