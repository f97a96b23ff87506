package service

import (
	"context"
	"time"

	"github.com/favhome/deliveries/internal/models"
	"github.com/favhome/deliveries/internal/repository"
)

type ListingService interface {
	CreateListing(ctx context.Context, listing *models.Listing) (int64, error)
	GetListings(ctx context.Context, publicOnly bool) ([]models.Listing, error)
	UpdateListing(ctx context.Context, id int64, title, description string, price int, payment string) error
	MarkSold(ctx context.Context, id int64) error
	EditField(ctx context.Context, id int64, field, value string) error
	DeleteListing(ctx context.Context, id int64) error
}

type listingService struct {
	repo   repository.ListingRepository
	pusher Notifier
}

func NewListingService(repo repository.ListingRepository, pusher Notifier) ListingService {
	return &listingService{
		repo:   repo,
		pusher: pusher,
	}
}

func (s *listingService) CreateListing(ctx context.Context, listing *models.Listing) (int64, error) {
	listing.Status = models.ListingStatusAvailable
	listing.CreatedAt = time.Now()

	id, err := s.repo.CreateListing(ctx, listing)
	if err != nil {
		return 0, err
	}
	listing.ID = id
	s.pusher.Notify()
	return id, nil
}

func (s *listingService) GetListings(ctx context.Context, publicOnly bool) ([]models.Listing, error) {
	return s.repo.GetListings(ctx, publicOnly)
}

func (s *listingService) UpdateListing(ctx context.Context, id int64, title, description string, price int, payment string) error {
	if err := s.repo.UpdateListing(ctx, id, title, description, price, payment); err != nil {
		return err
	}
	s.pusher.Notify()
	return nil
}

func (s *listingService) MarkSold(ctx context.Context, id int64) error {
	if err := s.repo.MarkSold(ctx, id); err != nil {
		return err
	}
	s.pusher.Notify()
	return nil
}

func (s *listingService) EditField(ctx context.Context, id int64, field, value string) error {
	f, err := models.ParseListingField(field)
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

func (s *listingService) DeleteListing(ctx context.Context, id int64) error {
	if err := s.repo.DeleteListing(ctx, id); err != nil {
		return err
	}
	s.pusher.Notify()
	return nil
}
