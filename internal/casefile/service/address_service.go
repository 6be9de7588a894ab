package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/casefile/model"
)

type AddressService struct {
	addresses records[model.Address]
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{
		addresses: newRecords(db, "Address", func(a *model.Address) uuid.UUID { return a.ID }),
	}
}

func (s *AddressService) CreateAddress(ctx context.Context, req *model.CreateAddressDTO) (*model.Address, error) {
	if req == nil {
		return nil, apperr.Validation("create request cannot be nil")
	}
	country, err := countryCode(req.Country)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		Street:  req.Street,
		Unit:    req.Unit,
		City:    req.City,
		State:   req.State,
		Zip:     req.Zip,
		Country: country,
	}
	if err := s.addresses.create(ctx, address); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "address created", "addressId", address.ID)
	return address, nil
}

func (s *AddressService) GetAddress(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	return s.addresses.get(ctx, id)
}

func (s *AddressService) UpdateAddress(ctx context.Context, req *model.UpdateAddressDTO) (*model.Address, error) {
	if req == nil {
		return nil, apperr.Validation("update request cannot be nil")
	}

	fields := make(map[string]any)
	for column, value := range map[string]*string{
		"street": req.Street,
		"city":   req.City,
		"state":  req.State,
		"zip":    req.Zip,
	} {
		if err := setRequired(fields, column, value); err != nil {
			return nil, err
		}
	}
	if req.Unit != nil {
		fields["unit"] = *req.Unit
	}
	if req.Country != nil {
		country, err := countryCode(*req.Country)
		if err != nil {
			return nil, err
		}
		fields["country"] = country
	}
	return s.addresses.update(ctx, req.ID, fields)
}

func (s *AddressService) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	return s.addresses.delete(ctx, id)
}

func (s *AddressService) SearchAddresses(ctx context.Context, req *model.SearchAddressDTO) (*model.SearchResult[model.Address], error) {
	where := make(map[string]any)
	if req.City != nil {
		where["city"] = *req.City
	}
	if req.State != nil {
		where["state"] = *req.State
	}
	if req.Zip != nil {
		where["zip"] = *req.Zip
	}
	return s.addresses.search(ctx, where, req.Page)
}

// countryCode normalizes an ISO 3166-1 alpha-2 code to upper case.
func countryCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return "", apperr.Validation("country must be a two letter code")
	}
	return code, nil
}
