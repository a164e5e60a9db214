package dto

import "github.com/tradewell/storefront/internal/domain"

type OrderResponse struct {
	Order domain.Order `json:"order"`
}

type OrderListResponse struct {
	Orders     []domain.Order `json:"orders"`
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}
