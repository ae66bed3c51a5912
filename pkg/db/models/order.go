package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order references a customer and up to two cakes (one standard, one
// custom). Price is derived on every save; the delivery address defaults to
// the customer's address when left blank.
type Order struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID       `gorm:"column:user_id;type:uuid;not null"`
	User           User            `gorm:"foreignKey:UserID"`
	StandardCakeID *uuid.UUID      `gorm:"column:standard_cake_id;type:uuid"`
	StandardCake   *Cake           `gorm:"foreignKey:StandardCakeID"`
	CustomCakeID   *uuid.UUID      `gorm:"column:custom_cake_id;type:uuid"`
	CustomCake     *Cake           `gorm:"foreignKey:CustomCakeID"`
	Address        string          `gorm:"column:address;not null"`
	OrderDate      time.Time       `gorm:"column:order_date;type:date;not null"`
	DeliveryDate   time.Time       `gorm:"column:delivery_date;type:date;not null"`
	DeliveryTime   string          `gorm:"column:delivery_time;type:time;not null"`
	Comment        string          `gorm:"column:comment;type:text;not null;default:''"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	Surcharged     bool            `gorm:"column:surcharged;not null;default:false"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
