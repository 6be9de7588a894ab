package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/escrowline/backend/internal/api"
	"github.com/escrowline/backend/internal/apperr"
)

type Router struct {
	service *AuthService
}

func NewRouter(service *AuthService) *Router {
	return &Router{service: service}
}

// Register mounts /auth on v1. /me, /update and /delete need an access token.
func (r *Router) Register(v1 *gin.RouterGroup) {
	group := v1.Group("/auth")
	group.POST("/register", r.HandleRegister)
	group.POST("/login", r.HandleLogin)
	group.POST("/refresh", r.HandleRefresh)
	group.POST("/password-reset-request", r.HandlePasswordResetRequest)
	group.POST("/password-reset", r.HandlePasswordReset)

	protected := group.Group("", RequireAuth(r.service))
	protected.GET("/me", r.HandleMe)
	protected.POST("/update", r.HandleUpdate)
	protected.POST("/delete", r.HandleDelete)
}

// HandleRegister handles POST /v1/auth/register
func (r *Router) HandleRegister(c *gin.Context) {
	var req RegisterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	user, err := r.service.Register(c.Request.Context(), &req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "User registered", user)
}

// HandleLogin handles POST /v1/auth/login
func (r *Router) HandleLogin(c *gin.Context) {
	var req LoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	tokens, err := r.service.Login(c.Request.Context(), &req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Logged in", tokens)
}

// HandleRefresh handles POST /v1/auth/refresh
func (r *Router) HandleRefresh(c *gin.Context) {
	var req RefreshDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	tokens, err := r.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Token refreshed", tokens)
}

// HandlePasswordResetRequest handles POST /v1/auth/password-reset-request.
// The answer is the same whether or not the email is registered.
func (r *Router) HandlePasswordResetRequest(c *gin.Context) {
	var req PasswordResetRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	r.service.RequestPasswordReset(c.Request.Context(), req.Email)
	api.Success(c, "If the email is registered, a reset link has been sent", nil)
}

// HandlePasswordReset handles POST /v1/auth/password-reset
func (r *Router) HandlePasswordReset(c *gin.Context) {
	var req PasswordResetDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	if err := r.service.ResetPassword(c.Request.Context(), &req); err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "Password reset", nil)
}

// HandleMe handles GET /v1/auth/me
func (r *Router) HandleMe(c *gin.Context) {
	authCtx, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := r.service.GetUser(c.Request.Context(), authCtx.UserID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "User found", user)
}

// HandleUpdate handles POST /v1/auth/update
func (r *Router) HandleUpdate(c *gin.Context) {
	authCtx, ok := currentUser(c)
	if !ok {
		return
	}
	var req UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	user, err := r.service.UpdateUser(c.Request.Context(), authCtx.UserID, &req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "User updated", user)
}

// HandleDelete handles POST /v1/auth/delete
func (r *Router) HandleDelete(c *gin.Context) {
	authCtx, ok := currentUser(c)
	if !ok {
		return
	}
	if err := r.service.DeleteUser(c.Request.Context(), authCtx.UserID); err != nil {
		api.Fail(c, err)
		return
	}
	api.Success(c, "User deleted", nil)
}

func currentUser(c *gin.Context) (*AuthContext, bool) {
	authCtx := GetAuthContext(c.Request.Context())
	if authCtx == nil {
		api.Fail(c, apperr.Unauthorized("authentication required"))
		return nil, false
	}
	return authCtx, true
}
