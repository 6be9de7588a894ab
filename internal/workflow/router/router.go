package router

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escrowline/backend/internal/api"
	"github.com/escrowline/backend/internal/workflow/service"
)

// WorkflowRouter exposes stages, tasks and templates over HTTP.
type WorkflowRouter struct {
	stages    *service.StageService
	tasks     *service.TaskService
	templates *service.TemplateService
}

func NewWorkflowRouter(stages *service.StageService, tasks *service.TaskService, templates *service.TemplateService) *WorkflowRouter {
	return &WorkflowRouter{stages: stages, tasks: tasks, templates: templates}
}

// Register mounts the workflow routes on v1.
func (wr *WorkflowRouter) Register(v1 *gin.RouterGroup) {
	stage := v1.Group("/stage")
	{
		stage.POST("/create", wr.HandleCreateStage)
		stage.POST("/update", wr.HandleUpdateStage)
		stage.POST("/delete", wr.HandleDeleteStage)
		stage.POST("/sync", wr.HandleSyncStage)
		stage.GET("/:caseId", wr.HandleListStages)
		stage.GET("/:caseId/:stageType", wr.HandleGetStage)
	}

	task := v1.Group("/task")
	{
		task.POST("/create", wr.HandleCreateTask)
		task.POST("/update", wr.HandleUpdateTask)
		task.POST("/delete", wr.HandleDeleteTask)
		task.GET("/:taskId", wr.HandleGetTask)
	}

	template := v1.Group("/template")
	{
		template.POST("/create", wr.HandleCreateTemplate)
		template.POST("/read", wr.HandleReadTemplate)
		template.POST("/update", wr.HandleUpdateTemplate)
		template.POST("/delete", wr.HandleDeleteTemplate)
		template.POST("/render", wr.HandleRenderTemplate)
	}
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		api.BadRequest(c, errors.New(name+" must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		api.BadRequest(c, errors.New(name+" must be an integer"))
		return 0, false
	}
	return v, true
}

// bind decodes the JSON body into req, answering 400 when it does not fit.
func bind[T any](c *gin.Context) (*T, bool) {
	req := new(T)
	if err := c.ShouldBindJSON(req); err != nil {
		api.BadRequest(c, err)
		return nil, false
	}
	return req, true
}
