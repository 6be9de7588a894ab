package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/casefile/model"
)

// ClientService manages the buyers and sellers a case is handled for.
type ClientService struct {
	clients   records[model.Client]
	addresses records[model.Address]
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{
		clients:   newRecords(db, "Client", func(c *model.Client) uuid.UUID { return c.ID }),
		addresses: newRecords(db, "Address", func(a *model.Address) uuid.UUID { return a.ID }),
	}
}

func (s *ClientService) CreateClient(ctx context.Context, req *model.CreateClientDTO) (*model.Client, error) {
	if req == nil {
		return nil, apperr.Validation("create request cannot be nil")
	}
	clientType, err := castRequired(model.ClientTypes, req.ClientType)
	if err != nil {
		return nil, err
	}
	if req.AddressID != nil {
		if err := s.addresses.requireExists(ctx, *req.AddressID, "AddressId"); err != nil {
			return nil, err
		}
	}

	client := &model.Client{
		ClientType: clientType,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		AddressID:  req.AddressID,
	}
	if err := s.clients.create(ctx, client); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "client created", "clientId", client.ID, "clientType", client.ClientType)
	return client, nil
}

func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return s.clients.get(ctx, id)
}

// UpdateClient applies the present fields of req after validating all of them.
func (s *ClientService) UpdateClient(ctx context.Context, req *model.UpdateClientDTO) (*model.Client, error) {
	if req == nil {
		return nil, apperr.Validation("update request cannot be nil")
	}

	fields := make(map[string]any)
	if req.ClientType != nil {
		clientType, err := cast(model.ClientTypes, *req.ClientType)
		if err != nil {
			return nil, err
		}
		fields["client_type"] = clientType
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
	if req.AddressID != nil {
		if err := s.addresses.requireExists(ctx, *req.AddressID, "AddressId"); err != nil {
			return nil, err
		}
		fields["address_id"] = *req.AddressID
	}
	return s.clients.update(ctx, req.ID, fields)
}

func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.clients.delete(ctx, id)
}

func (s *ClientService) SearchClients(ctx context.Context, req *model.SearchClientDTO) (*model.SearchResult[model.Client], error) {
	where := make(map[string]any)
	if req.ClientType != nil {
		clientType, err := cast(model.ClientTypes, *req.ClientType)
		if err != nil {
			return nil, err
		}
		where["client_type"] = clientType
	}
	if req.LastName != nil {
		where["last_name"] = *req.LastName
	}
	if req.Email != nil {
		where["email"] = *req.Email
	}
	return s.clients.search(ctx, where, req.Page)
}
