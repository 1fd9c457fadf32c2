package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aqitech/claimflow/internal/auth"
	"github.com/aqitech/claimflow/internal/domain/claim"
)

const actorContextKey = "actor"

// authRequired validates the bearer token and stores the actor on the context
func authRequired(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing bearer token",
			})
			return
		}

		actor, err := authService.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "invalid or expired token",
			})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// roleRequired rejects requests whose actor does not carry the given role
func roleRequired(role claim.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mustActor(c).Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, Response{
				Success: false,
				Error:   "unauthorized access",
			})
			return
		}
		c.Next()
	}
}

// mustActor returns the actor set by authRequired; routes using it are
// always registered behind that middleware.
func mustActor(c *gin.Context) claim.Actor {
	return c.MustGet(actorContextKey).(claim.Actor)
}

func registerRoutes(router *gin.Engine, h *Handlers, authService *auth.Service) {
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	api.POST("/login", h.Login)

	authed := api.Group("")
	authed.Use(authRequired(authService))

	authed.GET("/claims/stats", h.GetStats)

	user := authed.Group("", roleRequired(claim.RoleUser))
	user.POST("/claims", h.CreateClaim)
	user.GET("/claims/my", h.MyClaims)
	user.PATCH("/claims/:id/submit", h.ChangeStatus)

	verifier := authed.Group("", roleRequired(claim.RoleVerifier))
	verifier.GET("/claims/submitted", h.ListSubmitted)
	verifier.PATCH("/claims/:id/verify", h.ChangeStatus)

	approver := authed.Group("", roleRequired(claim.RoleApprover))
	approver.GET("/claims/reviewed", h.ListReviewed)
	approver.PATCH("/claims/:id/approve", h.ChangeStatus)
	approver.PATCH("/claims/:id/reject", h.ChangeStatus)
}
