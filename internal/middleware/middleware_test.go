package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"portfolio-server/internal/utils"
)

type fakeVerifier map[string]*utils.SessionClaims

func (f fakeVerifier) Verify(_ context.Context, token string) (*utils.SessionClaims, error) {
	if claims, ok := f[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

var verifier = fakeVerifier{
	"admin-token": {UserID: "u-1", Email: "admin@example.com", IsAdmin: true},
	"user-token":  {UserID: "u-2", Email: "user@example.com"},
}

func adminRouter() (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.Use(Authenticate(verifier))
	admin := r.Group("/api/admin", RequireAdmin())
	admin.DELETE("/things/:id", func(c *gin.Context) {
		calls++
		p, _ := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"by": p.Email})
	})
	return r, &calls
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"anonymous", func(*http.Request) {}, http.StatusForbidden},
		{"invalid token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer forged") }, http.StatusForbidden},
		{"non admin", func(r *http.Request) { r.Header.Set("Authorization", "Bearer user-token") }, http.StatusForbidden},
		{"admin bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer admin-token") }, http.StatusOK},
		{"admin cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "admin-token"}) }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, calls := adminRouter()
			req := httptest.NewRequest(http.MethodDelete, "/api/admin/things/1", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusForbidden {
				assert.JSONEq(t, `{"error":"Accès refusé"}`, w.Body.String())
				assert.Zero(t, *calls)
			} else {
				assert.Equal(t, 1, *calls)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/book", RateLimit(NewRateLimiter(0.001, 2)), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/book", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/book", nil)
	req.RemoteAddr = "198.51.100.1:5000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, "other clients keep their own bucket")
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
