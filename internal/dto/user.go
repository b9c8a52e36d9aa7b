package dto

import "github.com/yukikurage/blog-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if user.Email != nil {
		dto.Email = *user.Email
	}
	return dto
}

// ToPublicUserDTO converts a User for pages visible to anyone. The email
// address is left out.
func ToPublicUserDTO(user models.User) UserDTO {
	dto := ToUserDTO(user)
	dto.Email = ""
	return dto
}
