package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/internal/domain/user"
	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/auth"
	"github.com/khoahotran/cvhub/pkg/logger"
)

const (
	GinContextKeyPrincipal = "principal"
)

// PrincipalResolver loads the identity behind a verified token.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, id uuid.UUID) (user.Principal, error)
}

func AuthMiddleware(jwtSvc *auth.JWTService, resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, apperror.NewUnauthorized("Authorization header is required", nil))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortWith(c, apperror.NewUnauthorized("Invalid token format", nil))
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			abortWith(c, apperror.NewUnauthorized("Invalid or expired token", err))
			return
		}

		principal, err := resolver.ResolvePrincipal(c.Request.Context(), claims.UserID)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(GinContextKeyPrincipal, principal)

		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func GetPrincipalFromGinContext(c *gin.Context) (user.Principal, bool) {
	value, ok := c.Get(GinContextKeyPrincipal)
	if !ok {
		return user.Principal{}, false
	}
	principal, ok := value.(user.Principal)
	return principal, ok
}

// ErrorMiddleware renders the last error attached to the context.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err,
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
			)
		}
		c.JSON(status, appErr.ToJSON())
	}
}
