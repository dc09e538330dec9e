package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"courier/internal/domain"
	"courier/internal/repository"
	"courier/internal/service"
)

// ──────────────────────────────────────────────
// MOCK ORDER REPOSITORY
// ──────────────────────────────────────────────

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32
	CloseCallCount  int32
	ReopenCallCount int32

	// Error injection
	CreateError error
	UpdateError error
	CloseError  error
	ReopenError error
}

// NewMockOrderRepository creates a new mock order repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

// AddOrder adds an order to the mock repository.
func (m *MockOrderRepository) AddOrder(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *order
	m.orders[order.ID] = &copy
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *order
	return &copy, nil
}

func (m *MockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[order.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *order
	m.orders[order.ID] = &copy
	return nil
}

func (m *MockOrderRepository) List(ctx context.Context, includeClosed bool) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if o.Closed && !includeClosed {
			continue
		}
		copy := *o
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Dates.Created.After(result[j].Dates.Created)
	})
	return result, nil
}

func (m *MockOrderRepository) ListClosureCandidates(ctx context.Context) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Order
	for _, o := range m.orders {
		if o.Closed {
			continue
		}
		if o.Dates.Delivery.IsZero() && o.Dates.Cancellation.IsZero() {
			continue
		}
		copy := *o
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Dates.Created.After(result[j].Dates.Created)
	})
	return result, nil
}

func (m *MockOrderRepository) CloseOrders(ctx context.Context, ids []string, closedAt time.Time) error {
	atomic.AddInt32(&m.CloseCallCount, 1)
	if m.CloseError != nil {
		return m.CloseError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// All-or-nothing: verify every ID first.
	for _, id := range ids {
		if _, ok := m.orders[id]; !ok {
			return repository.ErrNotFound
		}
	}
	for _, id := range ids {
		o := m.orders[id]
		o.Closed = true
		o.ClosedAt = closedAt
		o.Version++
	}
	return nil
}

func (m *MockOrderRepository) ReopenOrders(ctx context.Context, ids []string) error {
	atomic.AddInt32(&m.ReopenCallCount, 1)
	if m.ReopenError != nil {
		return m.ReopenError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if _, ok := m.orders[id]; !ok {
			return repository.ErrNotFound
		}
	}
	for _, id := range ids {
		o := m.orders[id]
		o.Closed = false
		o.ClosedAt = time.Time{}
		o.Version++
	}
	return nil
}

// GetOrder returns an order for test assertions.
func (m *MockOrderRepository) GetOrder(id string) *domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id]
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.UID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	copy := *user
	m.users[user.UID] = &copy
	return nil
}

func (m *MockUserRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.User
	for _, u := range m.users {
		if u.Role == role {
			copy := *u
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK GEOCODER
// ──────────────────────────────────────────────

// MockGeocoder resolves every address to a fixed coordinate pair.
type MockGeocoder struct {
	Coords    domain.Coordinates
	CallCount int32
}

// NewMockGeocoder creates a geocoder that always returns the default
// coordinates.
func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{Coords: service.DefaultCoordinates}
}

func (m *MockGeocoder) Resolve(ctx context.Context, input string) domain.Coordinates {
	atomic.AddInt32(&m.CallCount, 1)
	return m.Coords
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory closure lock.
type MockLockStore struct {
	mu     sync.Mutex
	locked bool

	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{}
}

func (m *MockLockStore) AcquireClosureLock(ctx context.Context, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked {
		return false, nil
	}
	m.locked = true
	return true, nil
}

func (m *MockLockStore) ReleaseClosureLock(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = false
	return nil
}

// Locked reports the lock state for test assertions.
func (m *MockLockStore) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked
}
