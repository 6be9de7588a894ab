package router

import (
	"github.com/gin-gonic/gin"

	"github.com/escrowline/backend/internal/api"
	"github.com/escrowline/backend/internal/workflow/model"
)

// HandleCreateStage handles POST /v1/stage/create
// Request body: CreateStageDTO
func (wr *WorkflowRouter) HandleCreateStage(c *gin.Context) {
	req, ok := bind[model.CreateStageDTO](c)
	if !ok {
		return
	}

	stage, err := wr.stages.CreateStage(c.Request.Context(), req.CaseID, *req.StageType)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Stage created", stage)
}

// HandleGetStage handles GET /v1/stage/:caseId/:stageType
func (wr *WorkflowRouter) HandleGetStage(c *gin.Context) {
	caseID, ok := uuidParam(c, "caseId")
	if !ok {
		return
	}
	stageType, ok := intParam(c, "stageType")
	if !ok {
		return
	}

	stage, err := wr.stages.ReadStage(c.Request.Context(), caseID, stageType)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Stage found", stage)
}

// HandleListStages handles GET /v1/stage/:caseId
func (wr *WorkflowRouter) HandleListStages(c *gin.Context) {
	caseID, ok := uuidParam(c, "caseId")
	if !ok {
		return
	}

	stages, err := wr.stages.ListStages(c.Request.Context(), caseID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Stages found", stages)
}

// HandleUpdateStage handles POST /v1/stage/update
// Request body: UpdateStageDTO
func (wr *WorkflowRouter) HandleUpdateStage(c *gin.Context) {
	req, ok := bind[model.UpdateStageDTO](c)
	if !ok {
		return
	}

	stage, err := wr.stages.UpdateStage(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Stage updated", stage)
}

// HandleDeleteStage handles POST /v1/stage/delete
// Request body: StageIDDTO
func (wr *WorkflowRouter) HandleDeleteStage(c *gin.Context) {
	req, ok := bind[model.StageIDDTO](c)
	if !ok {
		return
	}

	if err := wr.stages.DeleteStage(c.Request.Context(), req.StageID); err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Stage deleted", nil)
}

// HandleSyncStage handles POST /v1/stage/sync
// Request body: StageIDDTO
func (wr *WorkflowRouter) HandleSyncStage(c *gin.Context) {
	req, ok := bind[model.StageIDDTO](c)
	if !ok {
		return
	}

	stage, err := wr.stages.SyncStageStatus(c.Request.Context(), req.StageID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Stage status synced", stage)
}
