package models

import "time"

const (
	ListingStatusAvailable = "available"
	ListingStatusSold      = "sold"
)

type Listing struct {
	ID          int64     `json:"id" db:"id"`
	SellerName  string    `json:"seller_name" db:"seller_name"`
	Phone       string    `json:"phone" db:"phone"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       int       `json:"price" db:"price"`
	Payment     string    `json:"payment" db:"payment"`
	Image       string    `json:"image" db:"image"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
