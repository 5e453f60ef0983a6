package service

import (
	"errors"

	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

type StoreService interface {
	Get(name string) (*models.Store, error)
	Create(name string) (*models.Store, error)
	Put(name string) (*models.Store, bool, error)
	Delete(name string) error
	List() ([]models.Store, error)
}

type storeService struct {
	repo     repository.StoreRepository
	items    repository.ItemRepository
	upserter *Upserter[string, models.Store]
	log      *zap.Logger
}

func NewStoreService(repo repository.StoreRepository, items repository.ItemRepository, log *zap.Logger) StoreService {
	return &storeService{
		repo:     repo,
		items:    items,
		upserter: NewUpserter[string, models.Store](storeStore{repo: repo}),
		log:      log,
	}
}

// Get returns the store with its items embedded.
func (s *storeService) Get(name string) (*models.Store, error) {
	store, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) Create(name string) (*models.Store, error) {
	if _, err := s.repo.GetByName(name); err == nil {
		return nil, repository.ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	store := &models.Store{Name: name, Items: []models.Item{}}
	if err := s.repo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// Put is a no-op on the update path: a store's name is its key and its only
// field, so upserting an existing store just returns it.
func (s *storeService) Put(name string) (*models.Store, bool, error) {
	store, created, err := s.upserter.Put(name,
		func() *models.Store {
			return &models.Store{Name: name}
		},
		func(*models.Store) {})
	if err != nil {
		return nil, false, err
	}
	if err := s.loadItems(store); err != nil {
		return nil, false, err
	}
	return store, created, nil
}

func (s *storeService) Delete(name string) error {
	return s.repo.Delete(name)
}

func (s *storeService) List() ([]models.Store, error) {
	stores, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	for i := range stores {
		if err := s.loadItems(&stores[i]); err != nil {
			return nil, err
		}
	}
	return stores, nil
}

func (s *storeService) loadItems(store *models.Store) error {
	items, err := s.items.ListByStore(store.ID)
	if err != nil {
		return err
	}
	store.Items = items
	return nil
}

// storeStore adapts the store repository to the upsert coordinator, keyed
// by store name.
type storeStore struct {
	repo repository.StoreRepository
}

func (s storeStore) Get(name string) (*models.Store, error) { return s.repo.GetByName(name) }
func (s storeStore) Insert(st *models.Store) error          { return s.repo.Create(st) }
func (s storeStore) Update(st *models.Store) error          { return s.repo.Update(st) }
