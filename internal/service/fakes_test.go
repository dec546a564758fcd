package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"sweetshop/api/internal/ids"
	"sweetshop/api/internal/models"
	"sweetshop/api/internal/repository"
)

// memStore and memSweetStore are in-memory stand-ins for the pgx
// repositories, matching their error contracts.
type memStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]models.User)}
}

func (m *memStore) Create(ctx context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return user, nil
}

func (m *memStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *memStore) GetByID(ctx context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

type memSweetStore struct {
	mu        sync.Mutex
	sweets    map[string]models.Sweet
	purchases []models.Purchase
}

func newMemSweetStore() *memSweetStore {
	return &memSweetStore{sweets: make(map[string]models.Sweet)}
}

func (m *memSweetStore) put(sweet models.Sweet) models.Sweet {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweets[sweet.ID] = sweet
	return sweet
}

func (m *memSweetStore) Create(ctx context.Context, sweet models.Sweet) (models.Sweet, error) {
	sweet.CreatedAt = time.Now()
	sweet.UpdatedAt = sweet.CreatedAt
	return m.put(sweet), nil
}

func (m *memSweetStore) GetByID(ctx context.Context, id string) (models.Sweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sweet, ok := m.sweets[id]
	if !ok {
		return models.Sweet{}, repository.ErrSweetNotFound
	}
	return sweet, nil
}

func (m *memSweetStore) List(ctx context.Context) ([]models.Sweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Sweet, 0, len(m.sweets))
	for _, sweet := range m.sweets {
		out = append(out, sweet)
	}
	return out, nil
}

func (m *memSweetStore) Search(ctx context.Context, filter models.SweetFilter) ([]models.Sweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Sweet
	for _, sweet := range m.sweets {
		if filter.Name != "" && !strings.Contains(strings.ToLower(sweet.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && sweet.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && sweet.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && sweet.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, sweet)
	}
	return out, nil
}

func (m *memSweetStore) Update(ctx context.Context, id string, patch models.SweetPatch) (models.Sweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sweet, ok := m.sweets[id]
	if !ok {
		return models.Sweet{}, repository.ErrSweetNotFound
	}
	if patch.Name != nil {
		sweet.Name = *patch.Name
	}
	if patch.Description != nil {
		sweet.Description = patch.Description
	}
	if patch.Category != nil {
		sweet.Category = *patch.Category
	}
	if patch.Price != nil {
		sweet.Price = *patch.Price
	}
	if patch.Quantity != nil {
		sweet.Quantity = *patch.Quantity
	}
	if patch.ImageURL != nil {
		sweet.ImageURL = patch.ImageURL
	}
	sweet.UpdatedAt = time.Now()
	m.sweets[id] = sweet
	return sweet, nil
}

func (m *memSweetStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sweets, id)
	return nil
}

func (m *memSweetStore) SetImageURL(ctx context.Context, id string, url string) (models.Sweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sweet, ok := m.sweets[id]
	if !ok {
		return models.Sweet{}, repository.ErrSweetNotFound
	}
	sweet.ImageURL = &url
	m.sweets[id] = sweet
	return sweet, nil
}

func (m *memSweetStore) AddStock(ctx context.Context, id string, quantity int) (models.Sweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sweet, ok := m.sweets[id]
	if !ok {
		return models.Sweet{}, repository.ErrSweetNotFound
	}
	sweet.Quantity += quantity
	m.sweets[id] = sweet
	return sweet, nil
}

func (m *memSweetStore) Purchase(ctx context.Context, userID string, sweetID string, quantity int) (models.Purchase, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sweet, ok := m.sweets[sweetID]
	if !ok {
		return models.Purchase{}, 0, repository.ErrSweetNotFound
	}
	if sweet.Quantity < quantity {
		return models.Purchase{}, 0, &repository.InsufficientStockError{Available: sweet.Quantity}
	}
	sweet.Quantity -= quantity
	m.sweets[sweetID] = sweet

	purchase := models.Purchase{
		ID:              ids.New(),
		UserID:          userID,
		SweetID:         &sweetID,
		SweetName:       sweet.Name,
		Quantity:        quantity,
		PriceAtPurchase: sweet.Price,
		TotalAmount:     sweet.Price * float64(quantity),
		PurchasedAt:     time.Now(),
	}
	m.purchases = append(m.purchases, purchase)
	return purchase, sweet.Quantity, nil
}

func (m *memSweetStore) ListByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Purchase
	for i := len(m.purchases) - 1; i >= 0; i-- {
		if m.purchases[i].UserID == userID {
			out = append(out, m.purchases[i])
		}
	}
	return out, nil
}
