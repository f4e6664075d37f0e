package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jagatraya2508/absensi/internal/domain"
	"github.com/jagatraya2508/absensi/internal/shared/apperror"
	"github.com/jagatraya2508/absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token tidak ditemukan", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New(apperror.CodeUnauthorized, "Token tidak valid", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New(apperror.CodeUnauthorized, "Token kedaluwarsa", http.StatusUnauthorized)
)

// AuthMiddleware verifies an HMAC bearer token (or the access_token cookie) and
// stores the caller's user_id and role. Tokens are issued elsewhere.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.Abort(c, ErrTokenNotFound)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Abort(c, ErrTokenExpired)
				return
			}
			response.Abort(c, ErrInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Abort(c, ErrInvalidToken)
			return
		}

		userID := claimString(claims["user_id"])
		if userID == "" {
			response.Abort(c, ErrInvalidToken.WithMessage("User ID tidak ada di token"))
			return
		}
		role := claimString(claims["role"])
		if role == "" {
			role = domain.RoleEmployee
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// claimString accepts both string and numeric ids.
func claimString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return ""
	}
}

// CurrentIdentity reads the identity stored by AuthMiddleware.
func CurrentIdentity(c *gin.Context) domain.Identity {
	return domain.Identity{
		UserID: c.GetString(ContextUserID),
		Role:   c.GetString(ContextRole),
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		response.Abort(c, apperror.ErrForbidden)
	}
}
