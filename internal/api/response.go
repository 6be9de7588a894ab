// Package api shapes every HTTP response into the common envelope
// {status, data, message} and maps service errors to status codes.
package api

import (
	"log/slog"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"github.com/escrowline/backend/internal/apperr"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

const internalErrorMessage = "internal server error"

// Response is the envelope of every API response. Data is always a list.
type Response struct {
	Status  string `json:"status"`
	Data    []any  `json:"data"`
	Message string `json:"message"`
}

// Success writes a 200 envelope carrying data. A nil data value yields an
// empty list; a slice is copied element-wise.
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Data: asList(data), Message: message})
}

// Fail writes the envelope for err with the status code of its kind.
// Internal errors are logged and answered with a generic message.
func Fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	code := StatusCode(kind)
	message := apperr.Message(err)

	if kind == apperr.KindInternal {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		message = internalErrorMessage
	}
	c.AbortWithStatusJSON(code, Response{Status: StatusFailed, Data: []any{}, Message: message})
}

// BadRequest reports a request that failed binding or schema validation.
func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Status:  StatusFailed,
		Data:    []any{},
		Message: "invalid request: " + err.Error(),
	})
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindNotFound, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func asList(data any) []any {
	switch v := data.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	}

	// Typed slices are spread so that the envelope always holds a flat list.
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return []any{data}
	}
	list := make([]any, v.Len())
	for i := range list {
		list[i] = v.Index(i).Interface()
	}
	return list
}
