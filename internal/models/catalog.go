package models

type Store struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Items []Item `db:"-" json:"items"`
}

type Item struct {
	ID      int64   `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Price   float64 `db:"price" json:"price"`
	StoreID int64   `db:"store_id" json:"store_id"`
}
