// internal/store/products.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "transparency-service/internal/common/errors"
	"transparency-service/internal/models"
)

// ProductStore reads product records. The report pipeline only needs the
// owned-read contract; product writes belong to the CRUD layer.
type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// GetOwned loads a product only when it belongs to userID. A missing product
// and a product owned by someone else are indistinguishable to the caller.
func (s *ProductStore) GetOwned(ctx context.Context, productID, userID string) (*models.Product, error) {
	var p models.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_name, brand_name, category, description, status, created_at, updated_at
		FROM products
		WHERE id = $1 AND user_id = $2`,
		productID, userID,
	).Scan(&p.ID, &p.UserID, &p.ProductName, &p.BrandName, &p.Category, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Product", fmt.Sprintf("productId: %s", productID))
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("load product", err)
	}

	return &p, nil
}
