package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aqitech/claimflow/internal/auth"
	"github.com/aqitech/claimflow/internal/domain/claim"
	"github.com/aqitech/claimflow/internal/service"
	"github.com/aqitech/claimflow/internal/workflow"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	authService  *auth.Service
	claimService *service.ClaimService
	statsService *service.StatsService
	engine       *workflow.Engine
	logger       *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	authService *auth.Service,
	claimService *service.ClaimService,
	statsService *service.StatsService,
	engine *workflow.Engine,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		authService:  authService,
		claimService: claimService,
		statsService: statsService,
		engine:       engine,
		logger:       logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateClaimRequest carries a new claim's fields
type CreateClaimRequest struct {
	Title          string  `json:"title" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	Amount         float64 `json:"amount" binding:"min=0"`
	AttachmentPath string  `json:"attachment_path"`
}

// ChangeStatusRequest carries the requested target status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// Login handles POST /api/login
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: "email and password are required"})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, Response{Success: false, Error: "invalid email or password"})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "login successful",
		Data: gin.H{
			"user":         user,
			"access_token": token,
			"token_type":   "Bearer",
		},
	})
}

// CreateClaim handles POST /api/claims
func (h *Handlers) CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: err.Error()})
		return
	}

	created, err := h.claimService.Create(c.Request.Context(), mustActor(c).ID, service.CreateClaimInput{
		Title:          req.Title,
		Description:    req.Description,
		Amount:         req.Amount,
		AttachmentPath: req.AttachmentPath,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Message: "claim created", Data: created})
}

// MyClaims handles GET /api/claims/my
func (h *Handlers) MyClaims(c *gin.Context) {
	claims, err := h.claimService.ListOwn(c.Request.Context(), mustActor(c).ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: claims})
}

// ListSubmitted handles GET /api/claims/submitted
func (h *Handlers) ListSubmitted(c *gin.Context) {
	h.listByStatus(c, claim.StatusSubmitted)
}

// ListReviewed handles GET /api/claims/reviewed
func (h *Handlers) ListReviewed(c *gin.Context) {
	h.listByStatus(c, claim.StatusReviewed)
}

func (h *Handlers) listByStatus(c *gin.Context, status claim.Status) {
	claims, err := h.claimService.ListByStatus(c.Request.Context(), status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: claims})
}

// ChangeStatus handles the PATCH /api/claims/:id/{submit,verify,approve,reject}
// routes. The target status comes from the body; role and edge validation
// belong to the engine.
func (h *Handlers) ChangeStatus(c *gin.Context) {
	claimID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: "invalid claim id"})
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: "status is required"})
		return
	}

	updated, err := h.engine.RequestTransition(
		c.Request.Context(), claimID, claim.Status(req.Status), mustActor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "status changed to " + updated.Status.String(),
		Data:    updated,
	})
}

// GetStats handles GET /api/claims/stats
func (h *Handlers) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context(), mustActor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: stats})
}

// writeError maps the domain error taxonomy onto HTTP status codes so
// callers can distinguish every failure mode.
func (h *Handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, claim.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: err.Error()})
	case errors.Is(err, claim.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case errors.Is(err, claim.ErrForbidden):
		c.JSON(http.StatusForbidden, Response{Success: false, Error: err.Error()})
	case errors.Is(err, claim.ErrInvalidTransition):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	default:
		h.internalError(c, err)
	}
}

func (h *Handlers) internalError(c *gin.Context, err error) {
	h.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal server error"})
}
