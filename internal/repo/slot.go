package repo

import (
	"context"
	"errors"
	"sync"
)

// ErrSlotEmpty: под ключом ещё ничего не сохранено.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot: постоянное key/value хранилище. Коллекция записей занимает ровно один ключ.
// Put должен заменять значение целиком: читатель не видит частично записанный blob.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// MemorySlot: Slot в памяти процесса (тесты, STORE_BACKEND=memory).
type MemorySlot struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ Slot = (*MemorySlot)(nil)

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: map[string][]byte{}}
}

func (m *MemorySlot) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemorySlot) Put(_ context.Context, key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	m.mu.Lock()
	m.data[key] = buf
	m.mu.Unlock()
	return nil
}

func (m *MemorySlot) Close() error { return nil }
