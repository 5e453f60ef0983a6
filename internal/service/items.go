package service

import (
	"errors"

	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

type ItemService interface {
	Get(name string) (*models.Item, error)
	Create(name string, price float64, storeID int64) (*models.Item, error)
	Put(name string, price float64, storeID int64) (*models.Item, bool, error)
	Delete(name string) error
	List() ([]models.Item, error)
}

type itemService struct {
	repo     repository.ItemRepository
	upserter *Upserter[string, models.Item]
	log      *zap.Logger
}

func NewItemService(repo repository.ItemRepository, log *zap.Logger) ItemService {
	return &itemService{
		repo:     repo,
		upserter: NewUpserter[string, models.Item](itemStore{repo: repo}),
		log:      log,
	}
}

func (s *itemService) Get(name string) (*models.Item, error) {
	return s.repo.GetByName(name)
}

// Create fails with repository.ErrConflict when the name is taken. The
// prior lookup reports the common case; the unique constraint catches the
// races the lookup cannot see.
func (s *itemService) Create(name string, price float64, storeID int64) (*models.Item, error) {
	if _, err := s.repo.GetByName(name); err == nil {
		return nil, repository.ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	item := &models.Item{Name: name, Price: price, StoreID: storeID}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Put(name string, price float64, storeID int64) (*models.Item, bool, error) {
	return s.upserter.Put(name,
		func() *models.Item {
			return &models.Item{Name: name, Price: price, StoreID: storeID}
		},
		func(it *models.Item) {
			it.Price = price
			it.StoreID = storeID
		})
}

func (s *itemService) Delete(name string) error {
	return s.repo.Delete(name)
}

func (s *itemService) List() ([]models.Item, error) {
	return s.repo.List()
}

// itemStore adapts the item repository to the upsert coordinator, keyed by
// item name.
type itemStore struct {
	repo repository.ItemRepository
}

func (s itemStore) Get(name string) (*models.Item, error) { return s.repo.GetByName(name) }
func (s itemStore) Insert(it *models.Item) error          { return s.repo.Create(it) }
func (s itemStore) Update(it *models.Item) error          { return s.repo.Update(it) }
