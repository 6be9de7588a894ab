package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/casefile/model"
)

// OrganizationService manages the firms contacts work for.
type OrganizationService struct {
	organizations records[model.Organization]
	addresses     records[model.Address]
}

func NewOrganizationService(db *gorm.DB) *OrganizationService {
	return &OrganizationService{
		organizations: newRecords(db, "Organization", func(o *model.Organization) uuid.UUID { return o.ID }),
		addresses:     newRecords(db, "Address", func(a *model.Address) uuid.UUID { return a.ID }),
	}
}

func (s *OrganizationService) CreateOrganization(ctx context.Context, req *model.CreateOrganizationDTO) (*model.Organization, error) {
	if req == nil {
		return nil, apperr.Validation("create request cannot be nil")
	}
	organizationType, err := castRequired(model.OrganizationTypes, req.OrganizationType)
	if err != nil {
		return nil, err
	}
	if req.AddressID != nil {
		if err := s.addresses.requireExists(ctx, *req.AddressID, "AddressId"); err != nil {
			return nil, err
		}
	}

	organization := &model.Organization{
		OrganizationType: organizationType,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		AddressID:        req.AddressID,
	}
	if err := s.organizations.create(ctx, organization); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "organization created", "organizationId", organization.ID)
	return organization, nil
}

func (s *OrganizationService) GetOrganization(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return s.organizations.get(ctx, id)
}

func (s *OrganizationService) UpdateOrganization(ctx context.Context, req *model.UpdateOrganizationDTO) (*model.Organization, error) {
	if req == nil {
		return nil, apperr.Validation("update request cannot be nil")
	}

	fields := make(map[string]any)
	if req.OrganizationType != nil {
		organizationType, err := cast(model.OrganizationTypes, *req.OrganizationType)
		if err != nil {
			return nil, err
		}
		fields["organization_type"] = organizationType
	}
	if err := setRequired(fields, "name", req.Name); err != nil {
		return nil, err
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.AddressID != nil {
		if err := s.addresses.requireExists(ctx, *req.AddressID, "AddressId"); err != nil {
			return nil, err
		}
		fields["address_id"] = *req.AddressID
	}
	return s.organizations.update(ctx, req.ID, fields)
}

func (s *OrganizationService) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	return s.organizations.delete(ctx, id)
}

func (s *OrganizationService) SearchOrganizations(ctx context.Context, req *model.SearchOrganizationDTO) (*model.SearchResult[model.Organization], error) {
	where := make(map[string]any)
	if req.OrganizationType != nil {
		organizationType, err := cast(model.OrganizationTypes, *req.OrganizationType)
		if err != nil {
			return nil, err
		}
		where["organization_type"] = organizationType
	}
	if req.Name != nil {
		where["name"] = *req.Name
	}
	return s.organizations.search(ctx, where, req.Page)
}
