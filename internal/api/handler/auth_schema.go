package handler

// tokenRequest is the OAuth2 password-grant form posted to /auth/token/.
type tokenRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type" example:"bearer"`
}

// detailResponse mirrors the error envelope for informational replies.
type detailResponse struct {
	Detail string `json:"detail"`
}
