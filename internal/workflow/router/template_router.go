package router

import (
	"github.com/gin-gonic/gin"

	"github.com/escrowline/backend/internal/api"
	"github.com/escrowline/backend/internal/workflow/model"
)

func (wr *WorkflowRouter) HandleCreateTemplate(c *gin.Context) {
	req, ok := bind[model.CreateTemplateDTO](c)
	if !ok {
		return
	}

	template, err := wr.templates.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Template created", template)
}

func (wr *WorkflowRouter) HandleReadTemplate(c *gin.Context) {
	req, ok := bind[model.TemplateTitleDTO](c)
	if !ok {
		return
	}

	template, err := wr.templates.GetTemplate(c.Request.Context(), req.Title)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Template found", template)
}

func (wr *WorkflowRouter) HandleUpdateTemplate(c *gin.Context) {
	req, ok := bind[model.UpdateTemplateDTO](c)
	if !ok {
		return
	}

	template, err := wr.templates.UpdateTemplate(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Template updated", template)
}

func (wr *WorkflowRouter) HandleDeleteTemplate(c *gin.Context) {
	req, ok := bind[model.TemplateTitleDTO](c)
	if !ok {
		return
	}

	if err := wr.templates.DeleteTemplate(c.Request.Context(), req.Title); err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Template deleted", nil)
}

func (wr *WorkflowRouter) HandleRenderTemplate(c *gin.Context) {
	req, ok := bind[model.RenderTemplateDTO](c)
	if !ok {
		return
	}

	rendered, err := wr.templates.RenderTemplate(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Template rendered", rendered)
}
