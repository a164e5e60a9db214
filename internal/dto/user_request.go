package dto

type UserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName"`
	GSTNumber   string `json:"gstNumber"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CompleteOAuthRequest struct {
	Token       string `json:"token"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName"`
	GSTNumber   string `json:"gstNumber"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type AddressRequest struct {
	Label   string `json:"label"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
	Phone   string `json:"phone"`
}
