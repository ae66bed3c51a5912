package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a bakery customer. Phone number is the identity key.
type User struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Surname     string    `gorm:"column:surname;not null"`
	Address     string    `gorm:"column:address;not null"`
	PhoneNumber string    `gorm:"column:phone_number;not null;uniqueIndex"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
