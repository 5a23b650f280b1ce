package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgDuplicateEmail     = "Email already registered"
	msgInvalidCredentials = "Invalid email or password"
	msgUnauthorized       = "Invalid or missing token"
	msgNotFound           = "User not found"
	msgInternal           = "Internal server error"
	msgBadBody            = "invalid request body"
)

type errorResponse struct {
	Error string `json:"error"`
}

// publicError is the only place that turns an error into something a client
// sees. Variants that must stay indistinguishable (unknown user vs wrong
// password, missing vs forged vs expired token) map to the same pair, and
// anything unrecognised becomes a bare 500.
func publicError(err error) (int, string) {
	var ve *common.ValidationError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, msgDuplicateEmail
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, common.ErrorUnauthenticated), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, msg := publicError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"path", c.FullPath(), "request_id", c.GetString(requestIDKey), "error", err)
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}
