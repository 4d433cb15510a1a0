package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"royalcert/internal/models"
	"royalcert/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuth struct {
	tokens   map[string]*models.User
	sessions map[string]*models.User
	fail     error
}

func (f *fakeAuth) Login(context.Context, string, string) (*service.LoginResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if u, ok := f.tokens[token]; ok {
		return u, nil
	}
	return nil, service.ErrUnauthorized
}

func (f *fakeAuth) Resolve(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.sessions[id]; ok {
		return u, nil
	}
	return nil, service.ErrUnauthorized
}

func newRouter(auth service.AuthService, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	r.GET("/login-as/:id", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set(SessionUserKey, c.Param("id"))
		_ = s.Save()
	})
	r.GET("/private", RequireAuth(auth), RequireRole(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Username)
	})
	return r
}

func TestRequireAuthBearer(t *testing.T) {
	auth := &fakeAuth{tokens: map[string]*models.User{"tok": {ID: "1", Username: "ali", Role: models.RolePlanner}}}
	r := newRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ali", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail": "Kimlik doğrulanamadı"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthSessionFallback(t *testing.T) {
	auth := &fakeAuth{sessions: map[string]*models.User{"7": {ID: "7", Username: "veli", Role: models.RoleInspector}}}
	r := newRouter(auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login-as/7", nil))
	cookies := w.Result().Cookies()
	assert.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "veli", w.Body.String())
}

func TestRequireAuthInternalError(t *testing.T) {
	r := newRouter(&fakeAuth{fail: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireRole(t *testing.T) {
	auth := &fakeAuth{tokens: map[string]*models.User{
		"planner": {ID: "1", Username: "p", Role: models.RolePlanner},
		"admin":   {ID: "2", Username: "a", Role: models.RoleAdmin},
		"manager": {ID: "3", Username: "m", Role: models.RoleTechnicalMgr},
	}}
	r := newRouter(auth, models.RolePlanner)

	for tok, want := range map[string]int{"planner": http.StatusOK, "admin": http.StatusOK, "manager": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, tok)
		if want == http.StatusForbidden {
			assert.JSONEq(t, `{"detail": "Bu işlem için yetkiniz yok"}`, w.Body.String())
		}
	}
}
