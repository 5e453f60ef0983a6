package server

import (
	"sort"
	"sync"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"
)

// In-memory repository implementations backing the API tests.

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]models.User)}
}

func (r *memUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) CreateWithID(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return repository.ErrConflict
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrConflict
		}
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) setRole(t *testing.T, id int64, role string) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		t.Fatalf("no user with id %d", id)
	}
	u.Role = role
	r.users[id] = u
}

func (r *memUserRepo) GetByID(id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) UpdatePassword(id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	r.users[id] = u
	return nil
}

func (r *memUserRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type memStoreRepo struct {
	mu     sync.Mutex
	nextID int64
	stores map[string]models.Store
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{stores: make(map[string]models.Store)}
}

func (r *memStoreRepo) Create(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[store.Name]; ok {
		return repository.ErrConflict
	}
	r.nextID++
	store.ID = r.nextID
	r.stores[store.Name] = *store
	return nil
}

func (r *memStoreRepo) GetByName(name string) (*models.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *memStoreRepo) Update(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[store.Name] = *store
	return nil
}

func (r *memStoreRepo) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[name]; !ok {
		return repository.ErrNotFound
	}
	delete(r.stores, name)
	return nil
}

func (r *memStoreRepo) List() ([]models.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stores := make([]models.Store, 0, len(r.stores))
	for _, s := range r.stores {
		stores = append(stores, s)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })
	return stores, nil
}

type memItemRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[string]models.Item
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[string]models.Item)}
}

func (r *memItemRepo) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.Name]; ok {
		return repository.ErrConflict
	}
	r.nextID++
	item.ID = r.nextID
	r.items[item.Name] = *item
	return nil
}

func (r *memItemRepo) GetByName(name string) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &it, nil
}

func (r *memItemRepo) Update(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.Name] = *item
	return nil
}

func (r *memItemRepo) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[name]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, name)
	return nil
}

func (r *memItemRepo) List() ([]models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]models.Item, 0, len(r.items))
	for _, it := range r.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *memItemRepo) ListByStore(storeID int64) ([]models.Item, error) {
	all, _ := r.List()
	items := make([]models.Item, 0, len(all))
	for _, it := range all {
		if it.StoreID == storeID {
			items = append(items, it)
		}
	}
	return items, nil
}
