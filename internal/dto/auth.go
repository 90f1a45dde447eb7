package dto

// LoginRequest carries user credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateUserRequest carries a new staff or journalist user account.
type CreateUserRequest struct {
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	FirstName    string  `json:"firstName" binding:"required"`
	LastName     string  `json:"lastName" binding:"required"`
	IsStaff      bool    `json:"isStaff"`
	JournalistID *string `json:"journalistID"`
}

// UserResponse is the API shape of a user account.
type UserResponse struct {
	UserID       string  `json:"userID"`
	Email        string  `json:"email"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	IsStaff      bool    `json:"isStaff"`
	JournalistID *string `json:"journalistID,omitempty"`
}
