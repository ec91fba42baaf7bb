package request

// CreateUserRequest represents a staff account creation request
type CreateUserRequest struct {
	FirstName string  `json:"first_name" binding:"required,min=2,max=255"`
	LastName  string  `json:"last_name" binding:"max=255"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Password  string  `json:"password" binding:"required,min=8"`
	Role      string  `json:"role" binding:"required,oneof=admin keeper seller"`
}

// UpdateUserRequest represents a role or status change
type UpdateUserRequest struct {
	Role   *string `json:"role" binding:"omitempty,oneof=admin keeper seller"`
	Active *bool   `json:"active"`
}
