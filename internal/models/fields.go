package models

import (
	"strconv"

	"github.com/favhome/deliveries/internal/apperrors"
)

// OrderField and ListingField enumerate the columns the admin dashboard may
// edit in place. Anything outside these sets is rejected before it reaches
// the repository, so a field name is never interpolated into SQL.

type OrderField string

const (
	OrderFieldPickup OrderField = "pickup"
	OrderFieldDrop   OrderField = "drop_loc"
)

func ParseOrderField(s string) (OrderField, error) {
	switch OrderField(s) {
	case OrderFieldPickup, OrderFieldDrop:
		return OrderField(s), nil
	}
	return "", apperrors.ErrInvalidField
}

func (f OrderField) Validate(value string) error {
	if value == "" {
		return apperrors.ErrInvalidFieldValue
	}
	return nil
}

type ListingField string

const (
	ListingFieldTitle       ListingField = "title"
	ListingFieldDescription ListingField = "description"
	ListingFieldPrice       ListingField = "price"
)

func ParseListingField(s string) (ListingField, error) {
	switch ListingField(s) {
	case ListingFieldTitle, ListingFieldDescription, ListingFieldPrice:
		return ListingField(s), nil
	}
	return "", apperrors.ErrInvalidField
}

func (f ListingField) Validate(value string) error {
	if f == ListingFieldPrice {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return apperrors.ErrInvalidFieldValue
		}
		return nil
	}
	if value == "" {
		return apperrors.ErrInvalidFieldValue
	}
	return nil
}
