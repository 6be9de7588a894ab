package model

import (
	"time"

	"github.com/google/uuid"
)

// Enum-valued fields arrive as *int and are cast by the services. Update DTOs
// only change the fields that are present.

// IDDTO is the request body of delete operations.
type IDDTO struct {
	ID uuid.UUID `json:"id" binding:"required"`
}

// Page selects a window of search results.
type Page struct {
	Offset *int `json:"offset,omitempty"`
	Limit  *int `json:"limit,omitempty"`
}

// SearchResult is one page of matching records.
type SearchResult[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

type CreateAddressDTO struct {
	Street  string `json:"street" binding:"required"`
	Unit    string `json:"unit"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Country string `json:"country" binding:"required,len=2"`
}

type UpdateAddressDTO struct {
	ID      uuid.UUID `json:"id" binding:"required"`
	Street  *string   `json:"street,omitempty"`
	Unit    *string   `json:"unit,omitempty"`
	City    *string   `json:"city,omitempty"`
	State   *string   `json:"state,omitempty"`
	Zip     *string   `json:"zip,omitempty"`
	Country *string   `json:"country,omitempty" binding:"omitempty,len=2"`
}

type SearchAddressDTO struct {
	Page
	City  *string `json:"city,omitempty"`
	State *string `json:"state,omitempty"`
	Zip   *string `json:"zip,omitempty"`
}

type CreateClientDTO struct {
	ClientType *int       `json:"clientType" binding:"required"`
	FirstName  string     `json:"firstName" binding:"required"`
	LastName   string     `json:"lastName" binding:"required"`
	Email      string     `json:"email" binding:"omitempty,email"`
	Phone      string     `json:"phone"`
	AddressID  *uuid.UUID `json:"addressId,omitempty"`
}

type UpdateClientDTO struct {
	ID         uuid.UUID  `json:"id" binding:"required"`
	ClientType *int       `json:"clientType,omitempty"`
	FirstName  *string    `json:"firstName,omitempty"`
	LastName   *string    `json:"lastName,omitempty"`
	Email      *string    `json:"email,omitempty" binding:"omitempty,email"`
	Phone      *string    `json:"phone,omitempty"`
	AddressID  *uuid.UUID `json:"addressId,omitempty"`
}

type SearchClientDTO struct {
	Page
	ClientType *int    `json:"clientType,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty"`
}

type CreateOrganizationDTO struct {
	OrganizationType *int       `json:"organizationType" binding:"required"`
	Name             string     `json:"name" binding:"required"`
	Email            string     `json:"email" binding:"omitempty,email"`
	Phone            string     `json:"phone"`
	AddressID        *uuid.UUID `json:"addressId,omitempty"`
}

type UpdateOrganizationDTO struct {
	ID               uuid.UUID  `json:"id" binding:"required"`
	OrganizationType *int       `json:"organizationType,omitempty"`
	Name             *string    `json:"name,omitempty"`
	Email            *string    `json:"email,omitempty" binding:"omitempty,email"`
	Phone            *string    `json:"phone,omitempty"`
	AddressID        *uuid.UUID `json:"addressId,omitempty"`
}

type SearchOrganizationDTO struct {
	Page
	OrganizationType *int    `json:"organizationType,omitempty"`
	Name             *string `json:"name,omitempty"`
}

type CreateContactDTO struct {
	ContactType    *int       `json:"contactType" binding:"required"`
	FirstName      string     `json:"firstName" binding:"required"`
	LastName       string     `json:"lastName" binding:"required"`
	Email          string     `json:"email" binding:"omitempty,email"`
	Phone          string     `json:"phone"`
	OrganizationID *uuid.UUID `json:"organizationId,omitempty"`
}

type UpdateContactDTO struct {
	ID             uuid.UUID  `json:"id" binding:"required"`
	ContactType    *int       `json:"contactType,omitempty"`
	FirstName      *string    `json:"firstName,omitempty"`
	LastName       *string    `json:"lastName,omitempty"`
	Email          *string    `json:"email,omitempty" binding:"omitempty,email"`
	Phone          *string    `json:"phone,omitempty"`
	OrganizationID *uuid.UUID `json:"organizationId,omitempty"`
}

type SearchContactDTO struct {
	Page
	ContactType    *int       `json:"contactType,omitempty"`
	LastName       *string    `json:"lastName,omitempty"`
	OrganizationID *uuid.UUID `json:"organizationId,omitempty"`
}

type CreatePremisesDTO struct {
	PremisesType *int      `json:"premisesType" binding:"required"`
	AddressID    uuid.UUID `json:"addressId" binding:"required"`
	Description  string    `json:"description"`
}

type UpdatePremisesDTO struct {
	ID           uuid.UUID  `json:"id" binding:"required"`
	PremisesType *int       `json:"premisesType,omitempty"`
	AddressID    *uuid.UUID `json:"addressId,omitempty"`
	Description  *string    `json:"description,omitempty"`
}

type SearchPremisesDTO struct {
	Page
	PremisesType *int       `json:"premisesType,omitempty"`
	AddressID    *uuid.UUID `json:"addressId,omitempty"`
}

type CreateCaseDTO struct {
	CaseType      *int        `json:"caseType" binding:"required"`
	CaseStatus    *int        `json:"caseStatus,omitempty"` // Defaults to OPEN
	PremisesID    uuid.UUID   `json:"premisesId" binding:"required"`
	ClientIDs     []uuid.UUID `json:"clientIds"`
	ContactIDs    []uuid.UUID `json:"contactIds"`
	PurchasePrice *float64    `json:"purchasePrice,omitempty" binding:"omitempty,gte=0"`
	ClosingDate   *time.Time  `json:"closingDate,omitempty"`
}

type UpdateCaseDTO struct {
	ID            uuid.UUID    `json:"id" binding:"required"`
	CaseType      *int         `json:"caseType,omitempty"`
	CaseStatus    *int         `json:"caseStatus,omitempty"`
	PremisesID    *uuid.UUID   `json:"premisesId,omitempty"`
	ClientIDs     *[]uuid.UUID `json:"clientIds,omitempty"`
	ContactIDs    *[]uuid.UUID `json:"contactIds,omitempty"`
	PurchasePrice *float64     `json:"purchasePrice,omitempty" binding:"omitempty,gte=0"`
	ClosingDate   *time.Time   `json:"closingDate,omitempty"`
}

type SearchCaseDTO struct {
	Page
	CaseType   *int       `json:"caseType,omitempty"`
	CaseStatus *int       `json:"caseStatus,omitempty"`
	PremisesID *uuid.UUID `json:"premisesId,omitempty"`
}
