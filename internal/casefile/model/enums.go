package model

import "github.com/escrowline/backend/internal/enum"

type ClientType string

const (
	ClientTypeBuyer  ClientType = "BUYER"
	ClientTypeSeller ClientType = "SELLER"
)

type ContactType string

const (
	ContactTypeAttorney    ContactType = "ATTORNEY"
	ContactTypeBroker      ContactType = "BROKER"
	ContactTypeAgent       ContactType = "AGENT"
	ContactTypeLoanOfficer ContactType = "LOAN_OFFICER"
	ContactTypeTitleAgent  ContactType = "TITLE_AGENT"
	ContactTypeInspector   ContactType = "INSPECTOR"
)

type OrganizationType string

const (
	OrganizationTypeLawFirm           OrganizationType = "LAW_FIRM"
	OrganizationTypeBrokerage         OrganizationType = "BROKERAGE"
	OrganizationTypeLender            OrganizationType = "LENDER"
	OrganizationTypeTitleCompany      OrganizationType = "TITLE_COMPANY"
	OrganizationTypeInspectionCompany OrganizationType = "INSPECTION_COMPANY"
)

type PremisesType string

const (
	PremisesTypeSingleFamily PremisesType = "SINGLE_FAMILY"
	PremisesTypeCondo        PremisesType = "CONDO"
	PremisesTypeCoop         PremisesType = "COOP"
	PremisesTypeMultiFamily  PremisesType = "MULTI_FAMILY"
	PremisesTypeTownhouse    PremisesType = "TOWNHOUSE"
	PremisesTypeLand         PremisesType = "LAND"
)

// CaseType tells whether the firm represents the buying or the selling side.
type CaseType string

const (
	CaseTypePurchase CaseType = "PURCHASE"
	CaseTypeSale     CaseType = "SALE"
)

type CaseStatus string

const (
	CaseStatusOpen      CaseStatus = "OPEN"
	CaseStatusClosed    CaseStatus = "CLOSED"
	CaseStatusCancelled CaseStatus = "CANCELLED"
)

// Wire values. Clients send and receive these integers.
var (
	ClientTypes = enum.NewTable("clientType", map[ClientType]int{
		ClientTypeBuyer:  0,
		ClientTypeSeller: 1,
	})

	ContactTypes = enum.NewTable("contactType", map[ContactType]int{
		ContactTypeAttorney:    0,
		ContactTypeBroker:      1,
		ContactTypeAgent:       2,
		ContactTypeLoanOfficer: 3,
		ContactTypeTitleAgent:  4,
		ContactTypeInspector:   5,
	})

	OrganizationTypes = enum.NewTable("organizationType", map[OrganizationType]int{
		OrganizationTypeLawFirm:           0,
		OrganizationTypeBrokerage:         1,
		OrganizationTypeLender:            2,
		OrganizationTypeTitleCompany:      3,
		OrganizationTypeInspectionCompany: 4,
	})

	PremisesTypes = enum.NewTable("premisesType", map[PremisesType]int{
		PremisesTypeSingleFamily: 0,
		PremisesTypeCondo:        1,
		PremisesTypeCoop:         2,
		PremisesTypeMultiFamily:  3,
		PremisesTypeTownhouse:    4,
		PremisesTypeLand:         5,
	})

	CaseTypes = enum.NewTable("caseType", map[CaseType]int{
		CaseTypePurchase: 0,
		CaseTypeSale:     1,
	})

	CaseStatuses = enum.NewTable("caseStatus", map[CaseStatus]int{
		CaseStatusOpen:      0,
		CaseStatusClosed:    1,
		CaseStatusCancelled: 2,
	})
)

func (t ClientType) MarshalJSON() ([]byte, error) { return enum.MarshalJSON(ClientTypes, t) }

func (t *ClientType) UnmarshalJSON(data []byte) error {
	return enum.UnmarshalJSON(ClientTypes, data, t)
}

func (t ContactType) MarshalJSON() ([]byte, error) { return enum.MarshalJSON(ContactTypes, t) }

func (t *ContactType) UnmarshalJSON(data []byte) error {
	return enum.UnmarshalJSON(ContactTypes, data, t)
}

func (t OrganizationType) MarshalJSON() ([]byte, error) {
	return enum.MarshalJSON(OrganizationTypes, t)
}

func (t *OrganizationType) UnmarshalJSON(data []byte) error {
	return enum.UnmarshalJSON(OrganizationTypes, data, t)
}

func (t PremisesType) MarshalJSON() ([]byte, error) { return enum.MarshalJSON(PremisesTypes, t) }

func (t *PremisesType) UnmarshalJSON(data []byte) error {
	return enum.UnmarshalJSON(PremisesTypes, data, t)
}

func (t CaseType) MarshalJSON() ([]byte, error) { return enum.MarshalJSON(CaseTypes, t) }

func (t *CaseType) UnmarshalJSON(data []byte) error {
	return enum.UnmarshalJSON(CaseTypes, data, t)
}

func (s CaseStatus) MarshalJSON() ([]byte, error) { return enum.MarshalJSON(CaseStatuses, s) }

func (s *CaseStatus) UnmarshalJSON(data []byte) error {
	return enum.UnmarshalJSON(CaseStatuses, data, s)
}
