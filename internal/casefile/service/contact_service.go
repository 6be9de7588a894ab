package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/casefile/model"
)

// ContactService manages the counterparty professionals of a case.
type ContactService struct {
	contacts      records[model.Contact]
	organizations records[model.Organization]
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{
		contacts:      newRecords(db, "Contact", func(c *model.Contact) uuid.UUID { return c.ID }),
		organizations: newRecords(db, "Organization", func(o *model.Organization) uuid.UUID { return o.ID }),
	}
}

func (s *ContactService) CreateContact(ctx context.Context, req *model.CreateContactDTO) (*model.Contact, error) {
	if req == nil {
		return nil, apperr.Validation("create request cannot be nil")
	}
	contactType, err := castRequired(model.ContactTypes, req.ContactType)
	if err != nil {
		return nil, err
	}
	if req.OrganizationID != nil {
		if err := s.organizations.requireExists(ctx, *req.OrganizationID, "OrganizationId"); err != nil {
			return nil, err
		}
	}

	contact := &model.Contact{
		ContactType:    contactType,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		OrganizationID: req.OrganizationID,
	}
	if err := s.contacts.create(ctx, contact); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "contact created", "contactId", contact.ID, "contactType", contact.ContactType)
	return contact, nil
}

func (s *ContactService) GetContact(ctx context.Context, id uuid.UUID) (*model.Contact, error) {
	return s.contacts.get(ctx, id)
}

func (s *ContactService) UpdateContact(ctx context.Context, req *model.UpdateContactDTO) (*model.Contact, error) {
	if req == nil {
		return nil, apperr.Validation("update request cannot be nil")
	}

	fields := make(map[string]any)
	if req.ContactType != nil {
		contactType, err := cast(model.ContactTypes, *req.ContactType)
		if err != nil {
			return nil, err
		}
		fields["contact_type"] = contactType
	}
	if err := setRequired(fields, "first_name", req.FirstName); err != nil {
		return nil, err
	}
	if err := setRequired(fields, "last_name", req.LastName); err != nil {
		return nil, err
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.OrganizationID != nil {
		if err := s.organizations.requireExists(ctx, *req.OrganizationID, "OrganizationId"); err != nil {
			return nil, err
		}
		fields["organization_id"] = *req.OrganizationID
	}
	return s.contacts.update(ctx, req.ID, fields)
}

func (s *ContactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return s.contacts.delete(ctx, id)
}

func (s *ContactService) SearchContacts(ctx context.Context, req *model.SearchContactDTO) (*model.SearchResult[model.Contact], error) {
	where := make(map[string]any)
	if req.ContactType != nil {
		contactType, err := cast(model.ContactTypes, *req.ContactType)
		if err != nil {
			return nil, err
		}
		where["contact_type"] = contactType
	}
	if req.LastName != nil {
		where["last_name"] = *req.LastName
	}
	if req.OrganizationID != nil {
		where["organization_id"] = *req.OrganizationID
	}
	return s.contacts.search(ctx, where, req.Page)
}
