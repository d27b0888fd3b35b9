package usecase

import (
	"context"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// AddressUseCase manages the shipping address book of a user.
type AddressUseCase struct {
	repo   repository.AddressRepository
	logger *zap.Logger
}

// NewAddressUseCase constructs AddressUseCase.
func NewAddressUseCase(repo repository.AddressRepository, logger *zap.Logger) *AddressUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressUseCase{repo: repo, logger: logger.Named("address")}
}

// List returns the user's addresses.
func (u *AddressUseCase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Save creates the address when it has no ID and updates it otherwise.
// Addresses of other users are never touched.
func (u *AddressUseCase) Save(ctx context.Context, userID int64, address model.Address) (*model.Address, error) {
	if !normalizeAddress(&address) {
		return nil, domainErrors.ErrInvalidAddress
	}
	address.UserID = userID

	if address.ID == 0 {
		created, err := u.repo.Create(ctx, address)
		if err != nil {
			return nil, err
		}
		u.logger.Info("address created", zap.Int64("user_id", userID), zap.Int64("address_id", created.ID))
		return created, nil
	}

	if _, err := u.owned(ctx, userID, address.ID); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, address); err != nil {
		return nil, err
	}
	return &address, nil
}

// Delete removes one of the user's addresses.
func (u *AddressUseCase) Delete(ctx context.Context, userID, id int64) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.logger.Info("address deleted", zap.Int64("user_id", userID), zap.Int64("address_id", id))
	return nil
}

func (u *AddressUseCase) owned(ctx context.Context, userID, id int64) (*model.Address, error) {
	address, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return address, nil
}
