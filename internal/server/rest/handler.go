package rest

import (
	"net/http"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type profileResponse struct {
	User models.PublicUser `json:"user"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.recordRegistration(common.ErrorValidation)
		s.writeError(c, common.NewValidationError(msgBadBody))
		return
	}

	res, err := s.users.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     models.Role(req.Role),
	})
	s.metrics.recordRegistration(err)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: res.Token, User: res.User.Public()})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.recordLogin(common.ErrorValidation)
		s.writeError(c, common.NewValidationError(msgBadBody))
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	s.metrics.recordLogin(err)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User.Public()})
}

func (s *Server) profile(c *gin.Context) {
	claims, ok := auth.ClaimsFromContext(c.Request.Context())
	if !ok {
		s.writeError(c, common.ErrorUnauthenticated)
		return
	}

	user, err := s.users.Profile(c.Request.Context(), claims.Subject)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse{User: user.Public()})
}

// logout has nothing to invalidate; the client drops its token.
func (s *Server) logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (s *Server) health(c *gin.Context) {
	if err := s.users.Health(c.Request.Context()); err != nil {
		s.logger.Warn(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Database: "connected"})
}
