package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/zeroco/company-console/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.TokenStore = (*MemoryTokenStore)(nil)

// MemoryTokenStore is an in-memory token store for unit tests.
// Fail* fields inject errors into the matching operation.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	has   bool

	FailSave  error
	FailRead  error
	FailClear error

	saves  int
	clears int
}

// NewMemoryTokenStore creates an empty store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// NewMemoryTokenStoreWith creates a store already holding token.
func NewMemoryTokenStoreWith(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token, has: token != ""}
}

func (m *MemoryTokenStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	if token == "" {
		return errors.New("token cannot be empty")
	}
	m.token, m.has = token, true
	m.saves++
	return nil
}

func (m *MemoryTokenStore) Read(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRead != nil {
		return "", false, m.FailRead
	}
	return m.token, m.has, nil
}

func (m *MemoryTokenStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailClear != nil {
		return m.FailClear
	}
	m.token, m.has = "", false
	m.clears++
	return nil
}

// Saves returns how many successful Save calls were made.
func (m *MemoryTokenStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Clears returns how many successful Clear calls were made.
func (m *MemoryTokenStore) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}
