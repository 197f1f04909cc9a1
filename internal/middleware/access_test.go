package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almondloverr/CRM/internal/domain"
	"github.com/almondloverr/CRM/internal/repository"
)

type fakeResolver struct {
	level    int
	notFound bool
}

func (f *fakeResolver) GetByUserID(ctx context.Context, userID uint) (*domain.Employee, error) {
	if f.notFound {
		return nil, repository.ErrNotFound
	}
	lvl := f.level
	return &domain.Employee{
		ID:       42,
		Position: domain.JobTitle{Name: "x", AccessLvl: &lvl},
	}, nil
}

func newGateRouter(resolver *fakeResolver, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/main/",
		func(c *gin.Context) {
			if authenticated {
				c.Set("user_id", uint(1))
			}
		},
		RequireAccessLevel(resolver, ManagerAccessLevel),
		func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		},
	)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGateAllowsManagerLevel(t *testing.T) {
	r := newGateRouter(&fakeResolver{level: 2}, true)
	w := get(r, "/main/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestGateRedirectsLowLevel(t *testing.T) {
	r := newGateRouter(&fakeResolver{level: 1}, true)
	w := get(r, "/main/")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, RestrictedPath, w.Header().Get("Location"))
}

func TestGateMissingEmployeeCard(t *testing.T) {
	r := newGateRouter(&fakeResolver{notFound: true}, true)
	w := get(r, "/main/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGateUnauthenticated(t *testing.T) {
	r := newGateRouter(&fakeResolver{level: 2}, false)
	w := get(r, "/main/")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateRechecksEveryRequest(t *testing.T) {
	resolver := &fakeResolver{level: 2}
	r := newGateRouter(resolver, true)

	assert.Equal(t, http.StatusOK, get(r, "/main/").Code)

	// demotion between requests takes effect immediately
	resolver.level = 1
	assert.Equal(t, http.StatusFound, get(r, "/main/").Code)

	resolver.level = 2
	assert.Equal(t, http.StatusOK, get(r, "/main/").Code)
}
