package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/escrowline/backend/internal/store"
	wfmodel "github.com/escrowline/backend/internal/workflow/model"
)

// BaseModel gives every case file record a generated UUID and timestamps.
type BaseModel = wfmodel.BaseModel

type Address struct {
	BaseModel
	Street  string `gorm:"type:varchar(255);column:street;not null" json:"street"`
	Unit    string `gorm:"type:varchar(50);column:unit" json:"unit,omitempty"`
	City    string `gorm:"type:varchar(100);column:city;not null" json:"city"`
	State   string `gorm:"type:varchar(50);column:state;not null" json:"state"`
	Zip     string `gorm:"type:varchar(20);column:zip;not null" json:"zip"`
	Country string `gorm:"type:varchar(2);column:country;not null" json:"country"` // ISO 3166-1 alpha-2
}

func (a *Address) TableName() string {
	return "addresses"
}

type Client struct {
	BaseModel
	ClientType ClientType `gorm:"type:varchar(20);column:client_type;not null" json:"clientType"`
	FirstName  string     `gorm:"type:varchar(100);column:first_name;not null" json:"firstName"`
	LastName   string     `gorm:"type:varchar(100);column:last_name;not null;index" json:"lastName"`
	Email      string     `gorm:"type:varchar(255);column:email;index" json:"email,omitempty"`
	Phone      string     `gorm:"type:varchar(50);column:phone" json:"phone,omitempty"`
	AddressID  *uuid.UUID `gorm:"type:uuid;column:address_id" json:"addressId,omitempty"` // Reference to Address
}

func (c *Client) TableName() string {
	return "clients"
}

type Organization struct {
	BaseModel
	OrganizationType OrganizationType `gorm:"type:varchar(30);column:organization_type;not null" json:"organizationType"`
	Name             string           `gorm:"type:varchar(255);column:name;not null;index" json:"name"`
	Email            string           `gorm:"type:varchar(255);column:email" json:"email,omitempty"`
	Phone            string           `gorm:"type:varchar(50);column:phone" json:"phone,omitempty"`
	AddressID        *uuid.UUID       `gorm:"type:uuid;column:address_id" json:"addressId,omitempty"` // Reference to Address
}

func (o *Organization) TableName() string {
	return "organizations"
}

// Contact is a counterparty professional working on a case.
type Contact struct {
	BaseModel
	ContactType    ContactType `gorm:"type:varchar(20);column:contact_type;not null" json:"contactType"`
	FirstName      string      `gorm:"type:varchar(100);column:first_name;not null" json:"firstName"`
	LastName       string      `gorm:"type:varchar(100);column:last_name;not null;index" json:"lastName"`
	Email          string      `gorm:"type:varchar(255);column:email" json:"email,omitempty"`
	Phone          string      `gorm:"type:varchar(50);column:phone" json:"phone,omitempty"`
	OrganizationID *uuid.UUID  `gorm:"type:uuid;column:organization_id;index" json:"organizationId,omitempty"` // Reference to Organization
}

func (c *Contact) TableName() string {
	return "contacts"
}

// Premises is the property a case is about.
type Premises struct {
	BaseModel
	PremisesType PremisesType `gorm:"type:varchar(20);column:premises_type;not null" json:"premisesType"`
	AddressID    uuid.UUID    `gorm:"type:uuid;column:address_id;not null" json:"addressId"` // Reference to Address
	Description  string       `gorm:"type:text;column:description" json:"description,omitempty"`
}

func (p *Premises) TableName() string {
	return "premises"
}

// Case is one real-estate transaction. Its workflow stages reference it by ID.
type Case struct {
	BaseModel
	CaseType      CaseType        `gorm:"type:varchar(20);column:case_type;not null" json:"caseType"`
	CaseStatus    CaseStatus      `gorm:"type:varchar(20);column:case_status;not null;index" json:"caseStatus"`
	PremisesID    uuid.UUID       `gorm:"type:uuid;column:premises_id;not null;index" json:"premisesId"` // Reference to Premises
	ClientIDs     store.UUIDArray `gorm:"type:jsonb;column:client_ids;not null" json:"clientIds"`
	ContactIDs    store.UUIDArray `gorm:"type:jsonb;column:contact_ids;not null" json:"contactIds"`
	PurchasePrice *float64        `gorm:"column:purchase_price" json:"purchasePrice,omitempty"`
	ClosingDate   *time.Time      `gorm:"column:closing_date" json:"closingDate,omitempty"`
}

func (c *Case) TableName() string {
	return "cases"
}

// Models lists the case file tables for migration.
func Models() []any {
	return []any{&Address{}, &Client{}, &Organization{}, &Contact{}, &Premises{}, &Case{}}
}
