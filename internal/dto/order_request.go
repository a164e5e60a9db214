package dto

type OrderRequest struct {
	ShippingInfo  ShippingInfoRequest `json:"shippingInfo"`
	OrderItems    []OrderItemRequest  `json:"orderItems"`
	PaymentInfo   PaymentInfoRequest  `json:"paymentInfo"`
	ItemsPrice    float64             `json:"itemsPrice"`
	ShippingPrice float64             `json:"shippingPrice"`
	Discount      float64             `json:"discount"`
	TotalPrice    float64             `json:"totalPrice"`
	IsSampleOrder bool                `json:"isSampleOrder"`
}

type ShippingInfoRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
	Phone   string `json:"phone"`
}

type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
	Unit      string `json:"unit"`
}

type PaymentInfoRequest struct {
	TransactionID string `json:"transactionId"`
	Method        string `json:"method"`
	Status        string `json:"status"`
}

type UpdateOrderStatusRequest struct {
	Status            string `json:"status"`
	TrackingNumber    string `json:"trackingNumber"`
	TrackingURL       string `json:"trackingUrl"`
	ConsignmentNumber string `json:"consignmentNumber"`
	VRLInvoiceLink    string `json:"vrlInvoiceLink"`
	Location          string `json:"location"`
	Description       string `json:"description"`
}

type TrackingEventRequest struct {
	Status      string `json:"status"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// OrderFilter is the admin search surface. Malformed values are ignored,
// never rejected.
type OrderFilter struct {
	OrderNumber   string `query:"orderId"`
	CustomerName  string `query:"customerName"`
	CustomerEmail string `query:"customerEmail"`
	ProductName   string `query:"productName"`
	MinAmount     string `query:"minAmount"`
	MaxAmount     string `query:"maxAmount"`
	Status        string `query:"status"`
	StartDate     string `query:"startDate"`
	EndDate       string `query:"endDate"`
	PaymentMethod string `query:"paymentMethod"`
	SortBy        string `query:"sortBy"`
	Page          int    `query:"page"`
	Limit         int    `query:"limit"`
}

type PaymentNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
}
