package dto

type Filter struct {
	Limit int `query:"limit"`
	Page  int `query:"page"`
}

type Metadata struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

type PaginationResponse struct {
	Records  interface{} `json:"records"`
	Metadata Metadata    `json:"metadata"`
}
