package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stylemart/internal/common"
	"stylemart/internal/domain/model"
	"stylemart/internal/domain/repository"
)

// AddressService is user-scoped: every operation acts on behalf of the
// verified identity from the access guard, and touching another user's
// address is forbidden.
type AddressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

type AddressRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

func (s *AddressService) Create(ctx context.Context, userID string, req AddressRequest) (*model.Address, error) {
	if req.FullName == "" || req.Street == "" || req.City == "" || req.PostalCode == "" || req.Country == "" {
		return nil, fmt.Errorf("full_name, street, city, postal_code and country are required: %w", common.ErrValidation)
	}

	address := &model.Address{
		ID:         uuid.NewString(),
		UserID:     userID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

func (s *AddressService) List(ctx context.Context, userID string) ([]model.Address, error) {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

func (s *AddressService) Update(ctx context.Context, userID, addressID string, req AddressRequest) (*model.Address, error) {
	address, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	address.FullName = req.FullName
	address.Phone = req.Phone
	address.Street = req.Street
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = req.Country
	address.IsDefault = req.IsDefault

	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, addressID string) error {
	if _, err := s.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}
	if err := s.addressRepo.Delete(ctx, addressID); err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}

func (s *AddressService) ownedAddress(ctx context.Context, userID, addressID string) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, common.ErrForbidden
	}
	return address, nil
}
