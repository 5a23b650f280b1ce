package rest

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// authGate admits requests carrying a valid "Bearer <token>" and stores the
// verified claims in the request context. It never touches the database.
func (s *Server) authGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			s.metrics.recordGateRejection(reasonMissing)
			s.writeError(c, common.ErrorUnauthenticated)
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			s.metrics.recordGateRejection(reasonInvalid)
			s.writeError(c, common.ErrorUnauthenticated)
			return
		}

		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// requestID reuses the caller's X-Request-Id or assigns a new one.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(c.Request.Context(), "panic recovered",
					"error", fmt.Sprintf("%v", p),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"request_id", c.GetString(requestIDKey),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
			}
		}()
		c.Next()
	}
}

// requestLogger logs one line per request; probes are skipped. Headers and
// bodies are never logged.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString(requestIDKey),
		}
		s.metrics.observeRequest(c.Request.Method, c.FullPath(), status, time.Since(start))

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			s.logger.Error(ctx, "Request completed", args...)
		case status >= 400:
			s.logger.Warn(ctx, "Request completed", args...)
		default:
			s.logger.Debug(ctx, "Request completed", args...)
		}
	}
}
