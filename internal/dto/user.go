package dto

// CreateUserRequest is the accepted payload for POST /users/.
type CreateUserRequest struct {
	FirstName *string `json:"first_name" validate:"required"`
	LastName  *string `json:"last_name" validate:"required"`
	Email     *string `json:"email" validate:"required"`
	Password  *string `json:"password" validate:"required"`
}

// UserResponse represents a user as exposed via transport layers. The password never leaves
// the service.
type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
