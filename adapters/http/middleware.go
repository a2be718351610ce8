package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/auth"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

const (
	GinContextKeyUserID    = "userID"
	GinContextKeyRequestID = "requestID"
	headerRequestID        = "X-Request-Id"
)

type requestIDKey struct{}

// AuthMiddleware resolves the bearer token to a user id. The legacy x-auth-token header is
// accepted as well.
func AuthMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			log.Debug("Rejected token", zap.Error(err), zap.String("request_id", c.GetString(GinContextKeyRequestID)))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return strings.TrimSpace(c.GetHeader("x-auth-token"))
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// RequestLogger tags each request with an id (reusing X-Request-Id when sent) and writes
// one access log line when it completes.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(headerRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(GinContextKeyRequestID, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, rid))
		c.Writer.Header().Set(headerRequestID, rid)

		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func GetRequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}

// ErrorMiddleware renders the last error a handler attached with c.Error. Internal causes
// are logged and never sent to the client.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unhandled error", err)
		}
		status := apperror.ToHTTPStatus(appErr)

		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err,
				zap.String("request_id", c.GetString(GinContextKeyRequestID)),
				zap.String("path", c.FullPath()))
		} else {
			log.Debug("Request rejected", zap.Error(err), zap.Int("status", status))
		}

		c.JSON(status, appErr.ToJSON())
	}
}
