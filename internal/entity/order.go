package entity

import "github.com/uptrace/bun"

// Order links a user to a product. The references are plain foreign keys; related rows are
// loaded with explicit lookups.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID        int64  `bun:",pk,autoincrement"`
	UserID    int64  `bun:"user_id,notnull"`
	ProductID int64  `bun:"product_id,notnull"`
	OrderDate Date   `bun:"order_date,type:date"`
	Status    string `bun:"status"`
}
