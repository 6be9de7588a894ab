package router

import (
	"github.com/gin-gonic/gin"

	"github.com/escrowline/backend/internal/api"
	"github.com/escrowline/backend/internal/workflow/model"
)

// HandleCreateTask handles POST /v1/task/create
func (wr *WorkflowRouter) HandleCreateTask(c *gin.Context) {
	req, ok := bind[model.CreateTaskDTO](c)
	if !ok {
		return
	}

	task, err := wr.tasks.CreateTask(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Task created", task)
}

// HandleGetTask handles GET /v1/task/:taskId
func (wr *WorkflowRouter) HandleGetTask(c *gin.Context) {
	taskID, ok := uuidParam(c, "taskId")
	if !ok {
		return
	}

	task, err := wr.tasks.GetTask(c.Request.Context(), taskID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Task found", task)
}

// HandleUpdateTask handles POST /v1/task/update
func (wr *WorkflowRouter) HandleUpdateTask(c *gin.Context) {
	req, ok := bind[model.UpdateTaskDTO](c)
	if !ok {
		return
	}

	task, err := wr.tasks.UpdateTask(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Task updated", task)
}

// HandleDeleteTask handles POST /v1/task/delete
func (wr *WorkflowRouter) HandleDeleteTask(c *gin.Context) {
	req, ok := bind[model.TaskIDDTO](c)
	if !ok {
		return
	}

	if err := wr.tasks.DeleteTask(c.Request.Context(), req.TaskID); err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Task deleted", nil)
}
