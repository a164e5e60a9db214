package dto

import "github.com/tradewell/storefront/internal/domain"

type ProductListResponse struct {
	Products              []domain.Product `json:"products"`
	ProductsCount         int64            `json:"productsCount"`
	FilteredProductsCount int64            `json:"filteredProductsCount"`
	ResultPerPage         int              `json:"resultPerPage"`
}
