package handler

type createUserRequest struct {
	FirstName string `json:"first_name" validate:"required,max=40"`
	LastName  string `json:"last_name"  validate:"max=40"`
	Username  string `json:"username"   validate:"required,max=50"`
	Email     string `json:"email"      validate:"required,max=255,email"`
	Password  string `json:"password"   validate:"required"`
	IsActive  bool   `json:"is_active"`
	Role      string `json:"role"       validate:"omitempty,oneof=user admin"`
}

type changePasswordRequest struct {
	Username    string `json:"username"     validate:"required"`
	Password    string `json:"password"     validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	Role      string `json:"role"`
}

// meResponse is the profile view of the calling user.
type meResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}
