package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/casefile/model"
)

// CaseService manages cases. Every reference a case holds is checked on write.
type CaseService struct {
	cases    records[model.Case]
	premises records[model.Premises]
	clients  records[model.Client]
	contacts records[model.Contact]
}

func NewCaseService(db *gorm.DB) *CaseService {
	return &CaseService{
		cases:    newRecords(db, "Case", func(c *model.Case) uuid.UUID { return c.ID }),
		premises: newRecords(db, "Premises", func(p *model.Premises) uuid.UUID { return p.ID }),
		clients:  newRecords(db, "Client", func(c *model.Client) uuid.UUID { return c.ID }),
		contacts: newRecords(db, "Contact", func(c *model.Contact) uuid.UUID { return c.ID }),
	}
}

// CreateCase opens a case. caseStatus defaults to OPEN.
func (s *CaseService) CreateCase(ctx context.Context, req *model.CreateCaseDTO) (*model.Case, error) {
	if req == nil {
		return nil, apperr.Validation("create request cannot be nil")
	}
	caseType, err := castRequired(model.CaseTypes, req.CaseType)
	if err != nil {
		return nil, err
	}
	caseStatus := model.CaseStatusOpen
	if req.CaseStatus != nil {
		if caseStatus, err = cast(model.CaseStatuses, *req.CaseStatus); err != nil {
			return nil, err
		}
	}
	if req.PremisesID == uuid.Nil {
		return nil, apperr.Validation("premisesId is required")
	}
	if err := s.premises.requireExists(ctx, req.PremisesID, "PremisesId"); err != nil {
		return nil, err
	}
	clientIDs, err := s.clients.requireAll(ctx, req.ClientIDs, "ClientId")
	if err != nil {
		return nil, err
	}
	contactIDs, err := s.contacts.requireAll(ctx, req.ContactIDs, "ContactId")
	if err != nil {
		return nil, err
	}

	c := &model.Case{
		CaseType:      caseType,
		CaseStatus:    caseStatus,
		PremisesID:    req.PremisesID,
		ClientIDs:     clientIDs,
		ContactIDs:    contactIDs,
		PurchasePrice: req.PurchasePrice,
		ClosingDate:   req.ClosingDate,
	}
	if err := s.cases.create(ctx, c); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "case created", "caseId", c.ID, "caseType", c.CaseType, "clients", len(c.ClientIDs))
	return c, nil
}

func (s *CaseService) GetCase(ctx context.Context, id uuid.UUID) (*model.Case, error) {
	return s.cases.get(ctx, id)
}

// CaseExists reports whether a case is stored under id. Stage creation uses it
// to check the case a stage is created for.
func (s *CaseService) CaseExists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := s.cases.table.Exists(ctx, id)
	if err != nil {
		return false, apperr.Internal(err, "failed to check case")
	}
	return exists, nil
}

// UpdateCase applies the present fields of req. Reference lists replace the
// stored ones.
func (s *CaseService) UpdateCase(ctx context.Context, req *model.UpdateCaseDTO) (*model.Case, error) {
	if req == nil {
		return nil, apperr.Validation("update request cannot be nil")
	}

	fields := make(map[string]any)
	if req.CaseType != nil {
		caseType, err := cast(model.CaseTypes, *req.CaseType)
		if err != nil {
			return nil, err
		}
		fields["case_type"] = caseType
	}
	if req.CaseStatus != nil {
		caseStatus, err := cast(model.CaseStatuses, *req.CaseStatus)
		if err != nil {
			return nil, err
		}
		fields["case_status"] = caseStatus
	}
	if req.PremisesID != nil {
		if err := s.premises.requireExists(ctx, *req.PremisesID, "PremisesId"); err != nil {
			return nil, err
		}
		fields["premises_id"] = *req.PremisesID
	}
	if req.ClientIDs != nil {
		clientIDs, err := s.clients.requireAll(ctx, *req.ClientIDs, "ClientId")
		if err != nil {
			return nil, err
		}
		fields["client_ids"] = clientIDs
	}
	if req.ContactIDs != nil {
		contactIDs, err := s.contacts.requireAll(ctx, *req.ContactIDs, "ContactId")
		if err != nil {
			return nil, err
		}
		fields["contact_ids"] = contactIDs
	}
	if req.PurchasePrice != nil {
		fields["purchase_price"] = *req.PurchasePrice
	}
	if req.ClosingDate != nil {
		fields["closing_date"] = req.ClosingDate.UTC()
	}
	return s.cases.update(ctx, req.ID, fields)
}

// DeleteCase removes the case record only. Stages created for it are left in
// place.
func (s *CaseService) DeleteCase(ctx context.Context, id uuid.UUID) error {
	return s.cases.delete(ctx, id)
}

func (s *CaseService) SearchCases(ctx context.Context, req *model.SearchCaseDTO) (*model.SearchResult[model.Case], error) {
	where := make(map[string]any)
	if req.CaseType != nil {
		caseType, err := cast(model.CaseTypes, *req.CaseType)
		if err != nil {
			return nil, err
		}
		where["case_type"] = caseType
	}
	if req.CaseStatus != nil {
		caseStatus, err := cast(model.CaseStatuses, *req.CaseStatus)
		if err != nil {
			return nil, err
		}
		where["case_status"] = caseStatus
	}
	if req.PremisesID != nil {
		where["premises_id"] = *req.PremisesID
	}
	return s.cases.search(ctx, where, req.Page)
}
