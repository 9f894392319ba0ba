package models

// User roles
const (
	RoleAdmin      = "ADMIN"
	RoleAccountant = "ACCOUNTANT"
)

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"` // empty once remote-authenticated; may be a bcrypt hash locally
	Role      string `json:"role"`               // ADMIN or ACCOUNTANT
	CreatedAt string `json:"createdAt"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
