package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aerozone_backend/internal/models"
	"aerozone_backend/internal/services"
	"aerozone_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type fakeResolver struct {
	storeID int64
	err     error
}

func (f fakeResolver) ResolveStoreScope(_ context.Context, p models.Principal) (models.Principal, error) {
	if f.err != nil {
		return p, f.err
	}
	id := f.storeID
	p.StoreID = &id
	return p, nil
}

func newEngine(tokens *utils.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := PrincipalFromContext(c)
		if p.StoreID != nil {
			c.Header("X-Store-ID", utils.Int64ToStr(*p.StoreID))
		}
		c.String(http.StatusOK, p.Username)
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("mw-secret", time.Hour)
	r := newEngine(tokens)

	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing header: status = %d, want 401", w.Code)
	}
	if w := doRequest(r, "garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}

	token, err := tokens.GenerateAccessToken(7, "lucia", models.RolePlayer)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	w := doRequest(r, token)
	if w.Code != http.StatusOK || w.Body.String() != "lucia" {
		t.Errorf("valid token: status = %d body = %q", w.Code, w.Body.String())
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("mw-secret", time.Hour)
	r := newEngine(tokens, RoleAuthMiddleware(models.RoleAdmin))

	playerToken, _ := tokens.GenerateAccessToken(1, "player1", models.RolePlayer)
	if w := doRequest(r, playerToken); w.Code != http.StatusForbidden {
		t.Errorf("player: status = %d, want 403", w.Code)
	}
	adminToken, _ := tokens.GenerateAccessToken(2, "root", models.RoleAdmin)
	if w := doRequest(r, adminToken); w.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", w.Code)
	}
}

func TestStoreScopeMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("mw-secret", time.Hour)
	token, _ := tokens.GenerateAccessToken(3, "owner", models.RoleStoreOwner)

	scoped := newEngine(tokens, StoreScopeMiddleware(fakeResolver{storeID: 42}))
	w := doRequest(scoped, token)
	if w.Code != http.StatusOK || w.Header().Get("X-Store-ID") != "42" {
		t.Errorf("approved store: status = %d store = %q", w.Code, w.Header().Get("X-Store-ID"))
	}

	pending := newEngine(tokens, StoreScopeMiddleware(fakeResolver{err: services.ErrStoreNotApproved}))
	if w := doRequest(pending, token); w.Code != http.StatusForbidden {
		t.Errorf("pending store: status = %d, want 403", w.Code)
	}

	broken := newEngine(tokens, StoreScopeMiddleware(fakeResolver{err: services.ErrPersistence}))
	if w := doRequest(broken, token); w.Code != http.StatusServiceUnavailable {
		t.Errorf("db failure: status = %d, want 503", w.Code)
	}
}
