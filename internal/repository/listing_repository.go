package repository

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/favhome/deliveries/internal/apperrors"
	"github.com/favhome/deliveries/internal/logger"
	"github.com/favhome/deliveries/internal/models"
	"go.uber.org/zap"
)

type ListingRepository interface {
	CreateListing(ctx context.Context, listing *models.Listing) (int64, error)
	GetListings(ctx context.Context, publicOnly bool) ([]models.Listing, error)
	UpdateListing(ctx context.Context, id int64, title, description string, price int, payment string) error
	ApplyEdit(ctx context.Context, id int64, field models.ListingField, value string) error
	MarkSold(ctx context.Context, id int64) error
	DeleteListing(ctx context.Context, id int64) error
}

type listingRepo struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) CreateListing(ctx context.Context, listing *models.Listing) (int64, error) {
	query := `INSERT INTO market (seller_name, phone, title, description, price, payment, image, status, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		listing.SellerName, listing.Phone, listing.Title, listing.Description,
		listing.Price, listing.Payment, listing.Image, listing.Status, listing.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *listingRepo) GetListings(ctx context.Context, publicOnly bool) ([]models.Listing, error) {
	query := `SELECT id, seller_name, phone, title, description, price, payment, image, status, created_at FROM market`
	if publicOnly {
		query += ` WHERE status=?`
	}
	query += ` ORDER BY id DESC`

	var (
		rows *sql.Rows
		err  error
	)
	if publicOnly {
		rows, err = r.db.QueryContext(ctx, query, models.ListingStatusAvailable)
	} else {
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		logger.Log.Error("failed to initiate query", zap.Error(err))
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Log.Error("failed to close rows", zap.Error(err))
		}
	}(rows)

	var listings []models.Listing
	for rows.Next() {
		var listing models.Listing
		err := rows.Scan(&listing.ID, &listing.SellerName, &listing.Phone, &listing.Title,
			&listing.Description, &listing.Price, &listing.Payment, &listing.Image,
			&listing.Status, &listing.CreatedAt)
		if err != nil {
			logger.Log.Error("failed to scan listing row", zap.Error(err))
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func (r *listingRepo) UpdateListing(ctx context.Context, id int64, title, description string, price int, payment string) error {
	query := `UPDATE market SET title=?, description=?, price=?, payment=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, query, title, description, price, payment, id)
	if err != nil {
		return err
	}
	return checkAffected(res, apperrors.ErrListingNotFound)
}

// ApplyEdit maps each editable field variant onto its own fixed statement.
func (r *listingRepo) ApplyEdit(ctx context.Context, id int64, field models.ListingField, value string) error {
	var (
		query string
		arg   any = value
	)
	switch field {
	case models.ListingFieldTitle:
		query = `UPDATE market SET title=? WHERE id=?`
	case models.ListingFieldDescription:
		query = `UPDATE market SET description=? WHERE id=?`
	case models.ListingFieldPrice:
		price, err := strconv.Atoi(value)
		if err != nil {
			return apperrors.ErrInvalidFieldValue
		}
		query = `UPDATE market SET price=? WHERE id=?`
		arg = price
	default:
		return apperrors.ErrInvalidField
	}

	res, err := r.db.ExecContext(ctx, query, arg, id)
	if err != nil {
		return err
	}
	return checkAffected(res, apperrors.ErrListingNotFound)
}

func (r *listingRepo) MarkSold(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE market SET status=? WHERE id=?`, models.ListingStatusSold, id)
	if err != nil {
		return err
	}
	return checkAffected(res, apperrors.ErrListingNotFound)
}

func (r *listingRepo) DeleteListing(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM market WHERE id=?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, apperrors.ErrListingNotFound)
}
