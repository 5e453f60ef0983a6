package repository

import (
	"storefront/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ItemRepository interface {
	Create(item *models.Item) error
	GetByName(name string) (*models.Item, error)
	Update(item *models.Item) error
	Delete(name string) error
	List() ([]models.Item, error)
	ListByStore(storeID int64) ([]models.Item, error)
}

type itemRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewItemRepository(db *sqlx.DB, log *zap.Logger) ItemRepository {
	return &itemRepository{db: db, log: log}
}

func (r *itemRepository) Create(item *models.Item) error {
	query := `INSERT INTO items (name, price, store_id) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowx(query, item.Name, item.Price, item.StoreID).Scan(&item.ID)
	return translate(err)
}

func (r *itemRepository) GetByName(name string) (*models.Item, error) {
	var item models.Item
	query := `SELECT id, name, price, store_id FROM items WHERE name = $1`
	if err := r.db.Get(&item, query, name); err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *itemRepository) Update(item *models.Item) error {
	query := `UPDATE items SET price = $1, store_id = $2 WHERE name = $3`
	_, err := r.db.Exec(query, item.Price, item.StoreID, item.Name)
	return translate(err)
}

func (r *itemRepository) Delete(name string) error {
	query := `DELETE FROM items WHERE name = $1`
	res, err := r.db.Exec(query, name)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepository) List() ([]models.Item, error) {
	items := []models.Item{}
	query := `SELECT id, name, price, store_id FROM items ORDER BY id`
	if err := r.db.Select(&items, query); err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *itemRepository) ListByStore(storeID int64) ([]models.Item, error) {
	items := []models.Item{}
	query := `SELECT id, name, price, store_id FROM items WHERE store_id = $1 ORDER BY id`
	if err := r.db.Select(&items, query, storeID); err != nil {
		return nil, translate(err)
	}
	return items, nil
}
