package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jagatraya2508/absensi/internal/domain"
	"github.com/jagatraya2508/absensi/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

type envelope struct {
	Ok    bool `json:"ok"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return s
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		id := middleware.CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID, "role": id.Role})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("success bearer token", func(t *testing.T) {
		r := newAuthRouter()
		token := signToken(t, jwt.MapClaims{
			"user_id": "7",
			"role":    domain.RoleAdmin,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "7", body["user_id"])
		assert.Equal(t, domain.RoleAdmin, body["role"])
	})

	t.Run("success numeric user id from cookie defaults role", func(t *testing.T) {
		r := newAuthRouter()
		token := signToken(t, jwt.MapClaims{"user_id": 42, "exp": time.Now().Add(time.Hour).Unix()})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "42", body["user_id"])
		assert.Equal(t, domain.RoleEmployee, body["role"])
	})

	t.Run("negative token missing", func(t *testing.T) {
		r := newAuthRouter()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Ok)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("negative token expired", func(t *testing.T) {
		r := newAuthRouter()
		token := signToken(t, jwt.MapClaims{"user_id": "7", "exp": time.Now().Add(-time.Hour).Unix()})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), middleware.ErrTokenExpired.Message)
	})

	t.Run("negative wrong secret", func(t *testing.T) {
		r := newAuthRouter()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "7"})
		signed, _ := token.SignedString([]byte("other"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), middleware.ErrInvalidToken.Message)
	})
}

type fakeEnforcer struct {
	allowed bool
	got     domain.EnforceRequest
}

func (f *fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, nil
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(enf *fakeEnforcer, role string) *gin.Engine {
		r := gin.New()
		r.DELETE("/attendance/:id", func(c *gin.Context) {
			if role != "" {
				c.Set(middleware.ContextRole, role)
			}
			c.Next()
		}, middleware.RBACAuthorize(enf, "attendance", "delete"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	t.Run("success allowed", func(t *testing.T) {
		enf := &fakeEnforcer{allowed: true}
		w := httptest.NewRecorder()
		newRouter(enf, domain.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/attendance/1", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.EnforceRequest{Role: domain.RoleAdmin, Resource: "attendance", Action: "delete"}, enf.got)
	})

	t.Run("negative forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(&fakeEnforcer{}, domain.RoleEmployee).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/attendance/1", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "attendance:delete")
	})

	t.Run("negative missing role", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(&fakeEnforcer{allowed: true}, "").ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/attendance/1", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, c.GetHeader("X-User"))
		c.Next()
	}, middleware.RateLimitByUser(1, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-User", user)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusTooManyRequests, do("a"))
	assert.Equal(t, http.StatusOK, do("b"))
	assert.Equal(t, http.StatusOK, do(""))
	assert.Equal(t, http.StatusOK, do(""))
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const cacheKey = "idemp:/attendance/check-in:7:abc"

	newRouter := func(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := gin.New()
		r.POST("/attendance/check-in", func(c *gin.Context) {
			c.Set(middleware.ContextUserID, "7")
			c.Next()
		}, middleware.Idempotency(rdb), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})
		return r, mock, &calls
	}

	t.Run("success replays cached response", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"ok":true,"data":{"id":"x"}}}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Contains(t, w.Body.String(), `"id":"x"`)
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative concurrent duplicate", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success without key passes through", func(t *testing.T) {
		r, mock, calls := newRouter(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader("{}")))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
