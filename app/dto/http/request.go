package http

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Token    string `json:"token" validate:"required"`
}

type SendVerificationEmailRequest struct {
	Email     string `json:"email" query:"email" validate:"required,email"`
	TokenType string `json:"token_type" query:"token_type" validate:"required"`
}

type LoginWithTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type VerifyTokenRequest struct {
	Access string `json:"access" validate:"required"`
}
