// Package router exposes the case file entities over HTTP. Every entity gets
// the same five routes under /v1/<entity>: create, update, delete, search and
// GET by id.
package router

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escrowline/backend/internal/api"
	"github.com/escrowline/backend/internal/casefile/model"
	"github.com/escrowline/backend/internal/casefile/service"
)

// Services bundles the entity services the router dispatches to.
type Services struct {
	Addresses     *service.AddressService
	Clients       *service.ClientService
	Organizations *service.OrganizationService
	Contacts      *service.ContactService
	Premises      *service.PremisesService
	Cases         *service.CaseService
}

type CasefileRouter struct {
	svc Services
}

func NewCasefileRouter(svc Services) *CasefileRouter {
	return &CasefileRouter{svc: svc}
}

// Register mounts the case file routes on v1.
func (cr *CasefileRouter) Register(v1 *gin.RouterGroup) {
	address := v1.Group("/address")
	{
		address.POST("/create", handleSave(cr.svc.Addresses.CreateAddress, "Address created"))
		address.POST("/update", handleSave(cr.svc.Addresses.UpdateAddress, "Address updated"))
		address.POST("/delete", handleDelete(cr.svc.Addresses.DeleteAddress, "Address deleted"))
		address.POST("/search", handleSearch(cr.svc.Addresses.SearchAddresses))
		address.GET("/:id", handleGet(cr.svc.Addresses.GetAddress, "Address found"))
	}

	client := v1.Group("/client")
	{
		client.POST("/create", handleSave(cr.svc.Clients.CreateClient, "Client created"))
		client.POST("/update", handleSave(cr.svc.Clients.UpdateClient, "Client updated"))
		client.POST("/delete", handleDelete(cr.svc.Clients.DeleteClient, "Client deleted"))
		client.POST("/search", handleSearch(cr.svc.Clients.SearchClients))
		client.GET("/:id", handleGet(cr.svc.Clients.GetClient, "Client found"))
	}

	organization := v1.Group("/organization")
	{
		organization.POST("/create", handleSave(cr.svc.Organizations.CreateOrganization, "Organization created"))
		organization.POST("/update", handleSave(cr.svc.Organizations.UpdateOrganization, "Organization updated"))
		organization.POST("/delete", handleDelete(cr.svc.Organizations.DeleteOrganization, "Organization deleted"))
		organization.POST("/search", handleSearch(cr.svc.Organizations.SearchOrganizations))
		organization.GET("/:id", handleGet(cr.svc.Organizations.GetOrganization, "Organization found"))
	}

	contact := v1.Group("/contact")
	{
		contact.POST("/create", handleSave(cr.svc.Contacts.CreateContact, "Contact created"))
		contact.POST("/update", handleSave(cr.svc.Contacts.UpdateContact, "Contact updated"))
		contact.POST("/delete", handleDelete(cr.svc.Contacts.DeleteContact, "Contact deleted"))
		contact.POST("/search", handleSearch(cr.svc.Contacts.SearchContacts))
		contact.GET("/:id", handleGet(cr.svc.Contacts.GetContact, "Contact found"))
	}

	premises := v1.Group("/premises")
	{
		premises.POST("/create", handleSave(cr.svc.Premises.CreatePremises, "Premises created"))
		premises.POST("/update", handleSave(cr.svc.Premises.UpdatePremises, "Premises updated"))
		premises.POST("/delete", handleDelete(cr.svc.Premises.DeletePremises, "Premises deleted"))
		premises.POST("/search", handleSearch(cr.svc.Premises.SearchPremises))
		premises.GET("/:id", handleGet(cr.svc.Premises.GetPremises, "Premises found"))
	}

	cases := v1.Group("/case")
	{
		cases.POST("/create", handleSave(cr.svc.Cases.CreateCase, "Case created"))
		cases.POST("/update", handleSave(cr.svc.Cases.UpdateCase, "Case updated"))
		cases.POST("/delete", handleDelete(cr.svc.Cases.DeleteCase, "Case deleted"))
		cases.POST("/search", handleSearch(cr.svc.Cases.SearchCases))
		cases.GET("/:id", handleGet(cr.svc.Cases.GetCase, "Case found"))
	}
}

// handleSave serves create and update routes. Update DTOs carry the record id.
func handleSave[Req, T any](save func(context.Context, *Req) (*T, error), message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bind[Req](c)
		if !ok {
			return
		}
		item, err := save(c.Request.Context(), req)
		if err != nil {
			api.Fail(c, err)
			return
		}
		api.Success(c, message, item)
	}
}

func handleDelete(remove func(context.Context, uuid.UUID) error, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bind[model.IDDTO](c)
		if !ok {
			return
		}
		if err := remove(c.Request.Context(), req.ID); err != nil {
			api.Fail(c, err)
			return
		}
		api.Success(c, message, nil)
	}
}

func handleGet[T any](get func(context.Context, uuid.UUID) (*T, error), message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			api.BadRequest(c, errors.New("id must be a UUID"))
			return
		}
		item, err := get(c.Request.Context(), id)
		if err != nil {
			api.Fail(c, err)
			return
		}
		api.Success(c, message, item)
	}
}

// handleSearch answers with one SearchResult. An empty body searches without
// filters.
func handleSearch[Req, T any](search func(context.Context, *Req) (*model.SearchResult[T], error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := new(Req)
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(req); err != nil {
				api.BadRequest(c, err)
				return
			}
		}
		result, err := search(c.Request.Context(), req)
		if err != nil {
			api.Fail(c, err)
			return
		}
		api.Success(c, "Search completed", result)
	}
}

func bind[T any](c *gin.Context) (*T, bool) {
	req := new(T)
	if err := c.ShouldBindJSON(req); err != nil {
		api.BadRequest(c, err)
		return nil, false
	}
	return req, true
}
