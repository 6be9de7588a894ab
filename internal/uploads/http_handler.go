package uploads

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/escrowline/backend/internal/api"
	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/workflow/model"
)

// TaskCompleter finishes an UPLOAD task once its document is stored
type TaskCompleter interface {
	GetTask(ctx context.Context, taskID uuid.UUID) (*model.Task, error)
	CompleteUpload(ctx context.Context, taskID uuid.UUID, fileURL string) (*model.Task, error)
}

type HTTPHandler struct {
	documents *DocumentService
	tasks     TaskCompleter
}

func NewHTTPHandler(documents *DocumentService, tasks TaskCompleter) *HTTPHandler {
	return &HTTPHandler{documents: documents, tasks: tasks}
}

// UploadResult is the payload of a successful task upload
type UploadResult struct {
	Task     *model.Task `json:"task"`
	Document *Document   `json:"document"`
}

// HandleUploadTaskDocument handles POST /v1/task/:taskId/upload
// Multipart field: file. Nothing is stored unless the task is an UPLOAD task.
func (h *HTTPHandler) HandleUploadTaskDocument(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		api.BadRequest(c, errors.New("taskId must be a UUID"))
		return
	}

	ctx := c.Request.Context()
	task, err := h.tasks.GetTask(ctx, taskID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	if task.TaskType != model.TaskTypeUpload {
		api.Fail(c, apperr.Validation("task %s is not an UPLOAD task", taskID))
		return
	}

	// Leave room for the multipart framing around the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxDocumentSize+1<<20)
	header, err := c.FormFile("file")
	if err != nil {
		api.BadRequest(c, errors.New("file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		api.BadRequest(c, errors.New("file could not be read"))
		return
	}
	defer file.Close()

	doc, err := h.documents.Store(ctx, taskID, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		api.Fail(c, err)
		return
	}

	task, err = h.tasks.CompleteUpload(ctx, taskID, doc.URL)
	if err != nil {
		h.documents.Remove(ctx, doc.Key)
		api.Fail(c, err)
		return
	}

	api.Success(c, "Document uploaded", UploadResult{Task: task, Document: doc})
}

// HandleDownload handles GET /v1/uploads/:key
func (h *HTTPHandler) HandleDownload(c *gin.Context) {
	reader, contentType, err := h.documents.Open(c.Request.Context(), c.Param("key"))
	if err != nil {
		api.Fail(c, err)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, reader, nil)
}
