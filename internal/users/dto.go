package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/bakecake/bakecake-backend/pkg/db/models"
)

// CreateUserInput registers a new customer.
type CreateUserInput struct {
	Name        string
	Surname     string
	Address     string
	PhoneNumber string
}

// UserDetail is the API representation of a customer.
type UserDetail struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDetail maps a user model to its API shape.
func ToDetail(user *models.User) UserDetail {
	return UserDetail{
		ID:          user.ID,
		Name:        user.Name,
		Surname:     user.Surname,
		Address:     user.Address,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
	}
}
