package entity

import "github.com/uptrace/bun"

// Product is a purchasable item. Orders reference it through Order.ProductID.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID          int64   `bun:",pk,autoincrement"`
	Name        string  `bun:"name"`
	Description string  `bun:"description"`
	Price       float64 `bun:"price"`
}
