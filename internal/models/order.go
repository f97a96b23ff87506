package models

import (
	"strings"
	"time"
)

const (
	PaymentStatusUnset       = ""
	PaymentStatusApproved    = "approved"
	PaymentStatusDisapproved = "disapproved"

	OrderStatusPending   = ""
	OrderStatusDelivered = "delivered"
)

type Order struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Phone         string    `json:"phone" db:"phone"`
	Pickup        string    `json:"pickup" db:"pickup"`
	Drop          string    `json:"drop" db:"drop_loc"`
	Items         string    `json:"items" db:"items"`
	PreferredTime string    `json:"preferred_time" db:"preferred_time"`
	Payment       string    `json:"payment" db:"payment"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	Fee           int       `json:"fee" db:"fee"`
	Extras        []string  `json:"extras" db:"extras"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// ExtrasString serializes surcharge tags for storage as a single column.
func (o *Order) ExtrasString() string {
	return strings.Join(o.Extras, ",")
}

func ParseExtras(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
