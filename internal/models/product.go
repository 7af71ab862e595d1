// internal/models/product.go
package models

import "time"

// Category is the fixed product category enum.
type Category string

const (
	CategoryFoodBeverage   Category = "food-beverage"
	CategoryFashionApparel Category = "fashion-apparel"
	CategoryHomeLiving     Category = "home-living"
	CategoryHealthWellness Category = "health-wellness"
	CategoryElectronics    Category = "electronics"
	CategoryOther          Category = "other"
)

// Categories lists every known category in declaration order.
var Categories = []Category{
	CategoryFoodBeverage,
	CategoryFashionApparel,
	CategoryHomeLiving,
	CategoryHealthWellness,
	CategoryElectronics,
	CategoryOther,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ProductStatus tracks a product through the submission flow.
type ProductStatus string

const (
	ProductStatusDraft      ProductStatus = "draft"
	ProductStatusSubmitted  ProductStatus = "submitted"
	ProductStatusProcessing ProductStatus = "processing"
	ProductStatusCompleted  ProductStatus = "completed"
)

// Product is the persisted product record.
type Product struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	ProductName string        `json:"productName"`
	BrandName   string        `json:"brandName"`
	Category    Category      `json:"category"`
	Description string        `json:"description"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProductInfo is the immutable snapshot handed to question generation.
type ProductInfo struct {
	ProductName string   `json:"productName"`
	BrandName   string   `json:"brandName"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
}

// Info returns the generation snapshot of a product.
func (p *Product) Info() ProductInfo {
	return ProductInfo{
		ProductName: p.ProductName,
		BrandName:   p.BrandName,
		Category:    p.Category,
		Description: p.Description,
	}
}
