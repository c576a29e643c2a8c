package domain

// TokenTypeBearer is the only token scheme the service issues.
const TokenTypeBearer = "bearer"

// TokenPair is the access/refresh pair produced at login and on refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}
