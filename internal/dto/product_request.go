package dto

import "github.com/tradewell/storefront/internal/domain"

type ProductRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       float64               `json:"price"`
	CuttedPrice float64               `json:"cuttedPrice"`
	Category    string                `json:"category"`
	SubCategory string                `json:"subCategory"`
	Stock       int64                 `json:"stock"`
	Units       []ProductUnitRequest  `json:"units"`
	Images      []domain.ProductImage `json:"images"`
}

type ProductUnitRequest struct {
	Unit      string  `json:"unit"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	IsDefault bool    `json:"isDefault"`
}

// ProductFilter mirrors the storefront listing query string. The bracketed
// range params keep the shape the web client already sends.
type ProductFilter struct {
	Keyword    string `query:"keyword"`
	Category   string `query:"category"`
	PriceGte   string `query:"price[gte]"`
	PriceLte   string `query:"price[lte]"`
	RatingsGte string `query:"ratings[gte]"`
	Page       int    `query:"page"`
}

type ReviewRequest struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}
