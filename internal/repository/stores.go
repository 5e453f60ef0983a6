package repository

import (
	"storefront/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type StoreRepository interface {
	Create(store *models.Store) error
	GetByName(name string) (*models.Store, error)
	Update(store *models.Store) error
	Delete(name string) error
	List() ([]models.Store, error)
}

type storeRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewStoreRepository(db *sqlx.DB, log *zap.Logger) StoreRepository {
	return &storeRepository{db: db, log: log}
}

func (r *storeRepository) Create(store *models.Store) error {
	query := `INSERT INTO stores (name) VALUES ($1) RETURNING id`
	err := r.db.QueryRowx(query, store.Name).Scan(&store.ID)
	return translate(err)
}

func (r *storeRepository) GetByName(name string) (*models.Store, error) {
	var store models.Store
	query := `SELECT id, name FROM stores WHERE name = $1`
	if err := r.db.Get(&store, query, name); err != nil {
		return nil, translate(err)
	}
	return &store, nil
}

func (r *storeRepository) Update(store *models.Store) error {
	query := `UPDATE stores SET name = $1 WHERE id = $2`
	_, err := r.db.Exec(query, store.Name, store.ID)
	return translate(err)
}

func (r *storeRepository) Delete(name string) error {
	query := `DELETE FROM stores WHERE name = $1`
	res, err := r.db.Exec(query, name)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *storeRepository) List() ([]models.Store, error) {
	stores := []models.Store{}
	query := `SELECT id, name FROM stores ORDER BY id`
	if err := r.db.Select(&stores, query); err != nil {
		return nil, translate(err)
	}
	return stores, nil
}
