package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/casefile/model"
)

type PremisesService struct {
	premises  records[model.Premises]
	addresses records[model.Address]
}

func NewPremisesService(db *gorm.DB) *PremisesService {
	return &PremisesService{
		premises:  newRecords(db, "Premises", func(p *model.Premises) uuid.UUID { return p.ID }),
		addresses: newRecords(db, "Address", func(a *model.Address) uuid.UUID { return a.ID }),
	}
}

// CreatePremises stores a property. Its address must already exist.
func (s *PremisesService) CreatePremises(ctx context.Context, req *model.CreatePremisesDTO) (*model.Premises, error) {
	if req == nil {
		return nil, apperr.Validation("create request cannot be nil")
	}
	premisesType, err := castRequired(model.PremisesTypes, req.PremisesType)
	if err != nil {
		return nil, err
	}
	if req.AddressID == uuid.Nil {
		return nil, apperr.Validation("addressId is required")
	}
	if err := s.addresses.requireExists(ctx, req.AddressID, "AddressId"); err != nil {
		return nil, err
	}

	premises := &model.Premises{
		PremisesType: premisesType,
		AddressID:    req.AddressID,
		Description:  req.Description,
	}
	if err := s.premises.create(ctx, premises); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "premises created", "premisesId", premises.ID, "addressId", premises.AddressID)
	return premises, nil
}

func (s *PremisesService) GetPremises(ctx context.Context, id uuid.UUID) (*model.Premises, error) {
	return s.premises.get(ctx, id)
}

func (s *PremisesService) UpdatePremises(ctx context.Context, req *model.UpdatePremisesDTO) (*model.Premises, error) {
	if req == nil {
		return nil, apperr.Validation("update request cannot be nil")
	}

	fields := make(map[string]any)
	if req.PremisesType != nil {
		premisesType, err := cast(model.PremisesTypes, *req.PremisesType)
		if err != nil {
			return nil, err
		}
		fields["premises_type"] = premisesType
	}
	if req.AddressID != nil {
		if err := s.addresses.requireExists(ctx, *req.AddressID, "AddressId"); err != nil {
			return nil, err
		}
		fields["address_id"] = *req.AddressID
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	return s.premises.update(ctx, req.ID, fields)
}

func (s *PremisesService) DeletePremises(ctx context.Context, id uuid.UUID) error {
	return s.premises.delete(ctx, id)
}

func (s *PremisesService) SearchPremises(ctx context.Context, req *model.SearchPremisesDTO) (*model.SearchResult[model.Premises], error) {
	where := make(map[string]any)
	if req.PremisesType != nil {
		premisesType, err := cast(model.PremisesTypes, *req.PremisesType)
		if err != nil {
			return nil, err
		}
		where["premises_type"] = premisesType
	}
	if req.AddressID != nil {
		where["address_id"] = *req.AddressID
	}
	return s.premises.search(ctx, where, req.Page)
}
