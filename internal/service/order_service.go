package service

import (
	"context"
	"time"

	"github.com/favhome/deliveries/internal/fees"
	"github.com/favhome/deliveries/internal/models"
	"github.com/favhome/deliveries/internal/repository"
)

// Notifier schedules a mirror push after a successful local mutation.
type Notifier interface {
	Notify()
}

type OrderService interface {
	CreateOrder(ctx context.Context, order *models.Order) (int64, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	MarkDelivered(ctx context.Context, id int64) error
	ApprovePayment(ctx context.Context, id int64) error
	DisapprovePayment(ctx context.Context, id int64) error
	EditField(ctx context.Context, id int64, field, value string) error
	DeleteOrder(ctx context.Context, id int64) error
}

type orderService struct {
	repo   repository.OrderRepository
	pusher Notifier
}

func NewOrderService(repo repository.OrderRepository, pusher Notifier) OrderService {
	return &orderService{
		repo:   repo,
		pusher: pusher,
	}
}

// CreateOrder computes the delivery fee and surcharge tags once and stores
// them with the order; they are never recomputed afterwards.
func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) (int64, error) {
	fee, extras := fees.Compute(order.Pickup, order.Drop, order.Items, order.PreferredTime)
	order.Fee = fee
	order.Extras = extras
	order.Status = models.OrderStatusPending
	order.PaymentStatus = models.PaymentStatusUnset
	order.CreatedAt = time.Now()

	id, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return 0, err
	}
	order.ID = id
	s.pusher.Notify()
	return id, nil
}

func (s *orderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.GetOrders(ctx)
}

func (s *orderService) MarkDelivered(ctx context.Context, id int64) error {
	if err := s.repo.UpdateStatus(ctx, id, models.OrderStatusDelivered); err != nil {
		return err
	}
	s.pusher.Notify()
	return nil
}

func (s *orderService) ApprovePayment(ctx context.Context, id int64) error {
	if err := s.repo.UpdatePaymentStatus(ctx, id, models.PaymentStatusApproved); err != nil {
		return err
	}
	s.pusher.Notify()
	return nil
}

func (s *orderService) DisapprovePayment(ctx context.Context, id int64) error {
	if err := s.repo.UpdatePaymentStatus(ctx, id, models.PaymentStatusDisapproved); err != nil {
		return err
	}
	s.pusher.Notify()
	return nil
}

func (s *orderService) EditField(ctx context.Context, id int64, field, value string) error {
	f, err := models.ParseOrderField(field)
	if err != nil {
		return err
	}
	if err := f.Validate(value); err != nil {
		return err
	}
	if err := s.repo.ApplyEdit(ctx, id, f, value); err != nil {
		return err
	}
	s.pusher.Notify()
	return nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.pusher.Notify()
	return nil
}
