package service

import (
	"context"
	"errors"
	"testing"

	"github.com/favhome/deliveries/internal/apperrors"
	repoMocks "github.com/favhome/deliveries/internal/mocks/repository_mocks"
	"github.com/favhome/deliveries/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingService_CreateListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repoMocks.NewMockListingRepository(ctrl)
	notifier := &fakeNotifier{}
	s := NewListingService(repo, notifier)

	listing := &models.Listing{Title: "Desk lamp", Price: 500}
	repo.EXPECT().CreateListing(gomock.Any(), listing).Return(int64(2), nil)

	id, err := s.CreateListing(context.Background(), listing)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
	assert.Equal(t, models.ListingStatusAvailable, listing.Status)
	assert.False(t, listing.CreatedAt.IsZero())
	assert.Equal(t, 1, notifier.count)
}

func TestListingService_CreateListingRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repoMocks.NewMockListingRepository(ctrl)
	notifier := &fakeNotifier{}
	s := NewListingService(repo, notifier)

	repo.EXPECT().CreateListing(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db error"))

	_, err := s.CreateListing(context.Background(), &models.Listing{})
	assert.Error(t, err)
	assert.Zero(t, notifier.count)
}

func TestListingService_MarkSold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repoMocks.NewMockListingRepository(ctrl)
	notifier := &fakeNotifier{}
	s := NewListingService(repo, notifier)

	repo.EXPECT().MarkSold(gomock.Any(), int64(5)).Return(nil)
	require.NoError(t, s.MarkSold(context.Background(), 5))
	assert.Equal(t, 1, notifier.count)
}

func TestListingService_EditField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repoMocks.NewMockListingRepository(ctrl)
	notifier := &fakeNotifier{}
	s := NewListingService(repo, notifier)

	tests := []struct {
		name      string
		field     string
		value     string
		mockSetup func()
		wantErr   error
	}{
		{
			name:  "valid title edit",
			field: "title",
			value: "Bright lamp",
			mockSetup: func() {
				repo.EXPECT().ApplyEdit(gomock.Any(), int64(1), models.ListingFieldTitle, "Bright lamp").Return(nil)
			},
		},
		{
			name:  "valid price edit",
			field: "price",
			value: "800",
			mockSetup: func() {
				repo.EXPECT().ApplyEdit(gomock.Any(), int64(1), models.ListingFieldPrice, "800").Return(nil)
			},
		},
		{
			name:      "negative price rejected",
			field:     "price",
			value:     "-5",
			mockSetup: func() {},
			wantErr:   apperrors.ErrInvalidFieldValue,
		},
		{
			name:      "field outside allow-list",
			field:     "image",
			value:     "/x.png",
			mockSetup: func() {},
			wantErr:   apperrors.ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := s.EditField(context.Background(), 1, tt.field, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestListingService_UpdateAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repoMocks.NewMockListingRepository(ctrl)
	notifier := &fakeNotifier{}
	s := NewListingService(repo, notifier)

	repo.EXPECT().UpdateListing(gomock.Any(), int64(1), "t", "d", 10, "mpesa").Return(nil)
	require.NoError(t, s.UpdateListing(context.Background(), 1, "t", "d", 10, "mpesa"))

	repo.EXPECT().DeleteListing(gomock.Any(), int64(1)).Return(nil)
	require.NoError(t, s.DeleteListing(context.Background(), 1))

	assert.Equal(t, 2, notifier.count)
}
