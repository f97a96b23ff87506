package repository

import (
	"context"
	"database/sql"

	"github.com/favhome/deliveries/internal/apperrors"
	"github.com/favhome/deliveries/internal/logger"
	"github.com/favhome/deliveries/internal/models"
	"go.uber.org/zap"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) (int64, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdatePaymentStatus(ctx context.Context, id int64, status string) error
	ApplyEdit(ctx context.Context, id int64, field models.OrderField, value string) error
	DeleteOrder(ctx context.Context, id int64) error
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateOrder(ctx context.Context, order *models.Order) (int64, error) {
	query := `INSERT INTO orders (name, phone, pickup, drop_loc, items, preferred_time, payment, payment_status, fee, extras, status, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		order.Name, order.Phone, order.Pickup, order.Drop, order.Items,
		order.PreferredTime, order.Payment, order.PaymentStatus,
		order.Fee, order.ExtrasString(), order.Status, order.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *orderRepo) GetOrders(ctx context.Context) ([]models.Order, error) {
	query := `SELECT id, name, phone, pickup, drop_loc, items, preferred_time, payment, payment_status, fee, extras, status, created_at
			  FROM orders ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Log.Error("failed to initiate query", zap.Error(err))
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Log.Error("failed to close rows", zap.Error(err))
		}
	}(rows)

	var orders []models.Order
	for rows.Next() {
		var (
			order  models.Order
			extras string
		)
		err := rows.Scan(&order.ID, &order.Name, &order.Phone, &order.Pickup, &order.Drop,
			&order.Items, &order.PreferredTime, &order.Payment, &order.PaymentStatus,
			&order.Fee, &extras, &order.Status, &order.CreatedAt)
		if err != nil {
			logger.Log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		order.Extras = models.ParseExtras(extras)
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	return checkAffected(res, apperrors.ErrOrderNotFound)
}

func (r *orderRepo) UpdatePaymentStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET payment_status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	return checkAffected(res, apperrors.ErrOrderNotFound)
}

// ApplyEdit maps each editable field variant onto its own fixed statement.
func (r *orderRepo) ApplyEdit(ctx context.Context, id int64, field models.OrderField, value string) error {
	var query string
	switch field {
	case models.OrderFieldPickup:
		query = `UPDATE orders SET pickup=? WHERE id=?`
	case models.OrderFieldDrop:
		query = `UPDATE orders SET drop_loc=? WHERE id=?`
	default:
		return apperrors.ErrInvalidField
	}

	res, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return err
	}
	return checkAffected(res, apperrors.ErrOrderNotFound)
}

func (r *orderRepo) DeleteOrder(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id=?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, apperrors.ErrOrderNotFound)
}

func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
