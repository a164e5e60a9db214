package dto

type QuoteRequest struct {
	Items   []QuoteItemRequest `json:"items"`
	FileURL string             `json:"fileUrl"`
	Comment string             `json:"comment"`
}

type QuoteItemRequest struct {
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status"`
}

type QuoteFilter struct {
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}
