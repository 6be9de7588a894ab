package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/casefile/model"
	"github.com/escrowline/backend/internal/testutil"
)

type casefileFixture struct {
	addresses     *AddressService
	clients       *ClientService
	organizations *OrganizationService
	contacts      *ContactService
	premises      *PremisesService
	cases         *CaseService
}

func setupCasefile(t *testing.T) *casefileFixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t, model.Models()...)
	return &casefileFixture{
		addresses:     NewAddressService(db),
		clients:       NewClientService(db),
		organizations: NewOrganizationService(db),
		contacts:      NewContactService(db),
		premises:      NewPremisesService(db),
		cases:         NewCaseService(db),
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func (f *casefileFixture) address(t *testing.T) *model.Address {
	t.Helper()
	address, err := f.addresses.CreateAddress(context.Background(), &model.CreateAddressDTO{
		Street: "12 Harbor Lane", City: "Hoboken", State: "NJ", Zip: "07030", Country: "us",
	})
	require.NoError(t, err)
	return address
}

func (f *casefileFixture) client(t *testing.T) *model.Client {
	t.Helper()
	client, err := f.clients.CreateClient(context.Background(), &model.CreateClientDTO{
		ClientType: intPtr(0), FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)
	return client
}

func (f *casefileFixture) caseWithPremises(t *testing.T) *model.Case {
	t.Helper()
	ctx := context.Background()
	premises, err := f.premises.CreatePremises(ctx, &model.CreatePremisesDTO{PremisesType: intPtr(1), AddressID: f.address(t).ID})
	require.NoError(t, err)
	c, err := f.cases.CreateCase(ctx, &model.CreateCaseDTO{CaseType: intPtr(0), PremisesID: premises.ID})
	require.NoError(t, err)
	return c
}

func TestAddressService_Create_NormalizesCountry(t *testing.T) {
	f := setupCasefile(t)
	address := f.address(t)
	assert.Equal(t, "US", address.Country)

	_, err := f.addresses.CreateAddress(context.Background(), &model.CreateAddressDTO{
		Street: "1 Main St", City: "Albany", State: "NY", Zip: "12207", Country: "USA",
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestAddressService_UpdateAndDelete(t *testing.T) {
	f := setupCasefile(t)
	ctx := context.Background()
	address := f.address(t)

	updated, err := f.addresses.UpdateAddress(ctx, &model.UpdateAddressDTO{ID: address.ID, Unit: strPtr("4B")})
	require.NoError(t, err)
	assert.Equal(t, "4B", updated.Unit)
	assert.Equal(t, "Hoboken", updated.City)

	_, err = f.addresses.UpdateAddress(ctx, &model.UpdateAddressDTO{ID: address.ID, City: strPtr("  ")})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, f.addresses.DeleteAddress(ctx, address.ID))
	err = f.addresses.DeleteAddress(ctx, address.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Address not found", apperr.Message(err))
}

func TestClientService_Create(t *testing.T) {
	f := setupCasefile(t)
	ctx := context.Background()

	t.Run("WithAddress", func(t *testing.T) {
		addressID := f.address(t).ID
		client, err := f.clients.CreateClient(ctx, &model.CreateClientDTO{
			ClientType: intPtr(1), FirstName: "Grace", LastName: "Hopper", AddressID: &addressID,
		})
		require.NoError(t, err)
		assert.Equal(t, model.ClientTypeSeller, client.ClientType)
	})

	t.Run("InvalidClientType", func(t *testing.T) {
		_, err := f.clients.CreateClient(ctx, &model.CreateClientDTO{ClientType: intPtr(2), FirstName: "A", LastName: "B"})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("MissingClientType", func(t *testing.T) {
		_, err := f.clients.CreateClient(ctx, &model.CreateClientDTO{FirstName: "A", LastName: "B"})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("UnknownAddress", func(t *testing.T) {
		missing := uuid.New()
		_, err := f.clients.CreateClient(ctx, &model.CreateClientDTO{ClientType: intPtr(0), FirstName: "A", LastName: "B", AddressID: &missing})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		assert.Equal(t, "AddressId not found", apperr.Message(err))
	})
}

func TestClientService_Update_ValidatesBeforeWriting(t *testing.T) {
	f := setupCasefile(t)
	ctx := context.Background()
	client := f.client(t)

	_, err := f.clients.UpdateClient(ctx, &model.UpdateClientDTO{ID: client.ID, FirstName: strPtr("Augusta"), ClientType: intPtr(9)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	stored, err := f.clients.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.FirstName)

	updated, err := f.clients.UpdateClient(ctx, &model.UpdateClientDTO{ID: client.ID, FirstName: strPtr("Augusta"), Email: strPtr("ada@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "ada@example.com", updated.Email)

	_, err = f.clients.UpdateClient(ctx, &model.UpdateClientDTO{ID: uuid.New(), FirstName: strPtr("X")})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestClientService_Search(t *testing.T) {
	f := setupCasefile(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		f.client(t)
	}
	_, err := f.clients.CreateClient(ctx, &model.CreateClientDTO{ClientType: intPtr(1), FirstName: "Grace", LastName: "Hopper"})
	require.NoError(t, err)

	buyers, err := f.clients.SearchClients(ctx, &model.SearchClientDTO{ClientType: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), buyers.Total)
	assert.Len(t, buyers.Items, 3)
	assert.Equal(t, 20, buyers.Limit)

	page, err := f.clients.SearchClients(ctx, &model.SearchClientDTO{Page: model.Page{Offset: intPtr(1), Limit: intPtr(2)}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Len(t, page.Items, 2)

	byName, err := f.clients.SearchClients(ctx, &model.SearchClientDTO{LastName: strPtr("Hopper")})
	require.NoError(t, err)
	require.Len(t, byName.Items, 1)
	assert.Equal(t, "Grace", byName.Items[0].FirstName)

	_, err = f.clients.SearchClients(ctx, &model.SearchClientDTO{ClientType: intPtr(-1)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestContactService_RequiresOrganization(t *testing.T) {
	f := setupCasefile(t)
	ctx := context.Background()

	missing := uuid.New()
	_, err := f.contacts.CreateContact(ctx, &model.CreateContactDTO{ContactType: intPtr(0), FirstName: "Saul", LastName: "Goodman", OrganizationID: &missing})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "OrganizationId not found", apperr.Message(err))

	org, err := f.organizations.CreateOrganization(ctx, &model.CreateOrganizationDTO{OrganizationType: intPtr(0), Name: "Goodman & Partners"})
	require.NoError(t, err)
	assert.Equal(t, model.OrganizationTypeLawFirm, org.OrganizationType)

	contact, err := f.contacts.CreateContact(ctx, &model.CreateContactDTO{ContactType: intPtr(0), FirstName: "Saul", LastName: "Goodman", OrganizationID: &org.ID})
	require.NoError(t, err)
	assert.Equal(t, model.ContactTypeAttorney, contact.ContactType)

	found, err := f.contacts.SearchContacts(ctx, &model.SearchContactDTO{OrganizationID: &org.ID})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, contact.ID, found.Items[0].ID)
}

func TestOrganizationService_Update(t *testing.T) {
	f := setupCasefile(t)
	ctx := context.Background()
	org, err := f.organizations.CreateOrganization(ctx, &model.CreateOrganizationDTO{OrganizationType: intPtr(2), Name: "First Mortgage Bank"})
	require.NoError(t, err)

	updated, err := f.organizations.UpdateOrganization(ctx, &model.UpdateOrganizationDTO{ID: org.ID, OrganizationType: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, model.OrganizationTypeTitleCompany, updated.OrganizationType)
	assert.Equal(t, "First Mortgage Bank", updated.Name)

	_, err = f.organizations.UpdateOrganization(ctx, &model.UpdateOrganizationDTO{ID: org.ID, Name: strPtr("")})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestPremisesService_Create(t *testing.T) {
	f := setupCasefile(t)
	ctx := context.Background()

	_, err := f.premises.CreatePremises(ctx, &model.CreatePremisesDTO{PremisesType: intPtr(0)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.premises.CreatePremises(ctx, &model.CreatePremisesDTO{PremisesType: intPtr(0), AddressID: uuid.New()})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = f.premises.CreatePremises(ctx, &model.CreatePremisesDTO{PremisesType: intPtr(6), AddressID: f.address(t).ID})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	premises, err := f.premises.CreatePremises(ctx, &model.CreatePremisesDTO{PremisesType: intPtr(1), AddressID: f.address(t).ID, Description: "Two bedroom condo"})
	require.NoError(t, err)
	assert.Equal(t, model.PremisesTypeCondo, premises.PremisesType)
}

func TestCaseService_Create(t *testing.T) {
	f := setupCasefile(t)
	ctx := context.Background()
	premises, err := f.premises.CreatePremises(ctx, &model.CreatePremisesDTO{PremisesType: intPtr(0), AddressID: f.address(t).ID})
	require.NoError(t, err)
	client := f.client(t)

	t.Run("DefaultsToOpen", func(t *testing.T) {
		price := 650000.0
		closing := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
		c, err := f.cases.CreateCase(ctx, &model.CreateCaseDTO{
			CaseType:      intPtr(0),
			PremisesID:    premises.ID,
			ClientIDs:     []uuid.UUID{client.ID, client.ID},
			PurchasePrice: &price,
			ClosingDate:   &closing,
		})
		require.NoError(t, err)
		assert.Equal(t, model.CaseStatusOpen, c.CaseStatus)
		assert.Equal(t, model.CaseTypePurchase, c.CaseType)
		assert.Len(t, c.ClientIDs, 1)
		assert.Empty(t, c.ContactIDs)

		stored, err := f.cases.GetCase(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ClientIDs, stored.ClientIDs)
		require.NotNil(t, stored.PurchasePrice)
		assert.InDelta(t, price, *stored.PurchasePrice, 0.001)
	})

	t.Run("UnknownPremises", func(t *testing.T) {
		_, err := f.cases.CreateCase(ctx, &model.CreateCaseDTO{CaseType: intPtr(0), PremisesID: uuid.New()})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		assert.Equal(t, "PremisesId not found", apperr.Message(err))
	})

	t.Run("UnknownClient", func(t *testing.T) {
		_, err := f.cases.CreateCase(ctx, &model.CreateCaseDTO{CaseType: intPtr(1), PremisesID: premises.ID, ClientIDs: []uuid.UUID{client.ID, uuid.New()}})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		assert.Equal(t, "ClientId not found", apperr.Message(err))
	})

	t.Run("UnknownContact", func(t *testing.T) {
		_, err := f.cases.CreateCase(ctx, &model.CreateCaseDTO{CaseType: intPtr(1), PremisesID: premises.ID, ContactIDs: []uuid.UUID{uuid.New()}})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		_, err := f.cases.CreateCase(ctx, &model.CreateCaseDTO{CaseType: intPtr(0), CaseStatus: intPtr(3), PremisesID: premises.ID})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})
}

func TestCaseService_UpdateExistsDelete(t *testing.T) {
	f := setupCasefile(t)
	ctx := context.Background()
	c := f.caseWithPremises(t)
	client := f.client(t)

	exists, err := f.cases.CaseExists(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	clientIDs := []uuid.UUID{client.ID}
	updated, err := f.cases.UpdateCase(ctx, &model.UpdateCaseDTO{ID: c.ID, CaseStatus: intPtr(1), ClientIDs: &clientIDs})
	require.NoError(t, err)
	assert.Equal(t, model.CaseStatusClosed, updated.CaseStatus)
	assert.True(t, updated.ClientIDs.Contains(client.ID))

	require.NoError(t, f.cases.DeleteCase(ctx, c.ID))
	exists, err = f.cases.CaseExists(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	err = f.cases.DeleteCase(ctx, c.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Case not found", apperr.Message(err))
}
