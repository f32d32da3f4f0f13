package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jiradash/internal/session"
	"jiradash/internal/token"
)

// Mock session store for testing
type mockStore struct {
	createFunc     func(ctx context.Context, key session.AccountKey, encryptedAPIToken string, ttl time.Duration) (*session.Session, error)
	findActiveFunc func(ctx context.Context, sessionID string) (*session.Session, error)
	deactivateFunc func(ctx context.Context, sessionID string) error
}

func (m *mockStore) Create(ctx context.Context, key session.AccountKey, encryptedAPIToken string, ttl time.Duration) (*session.Session, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, key, encryptedAPIToken, ttl)
	}
	return nil, session.ErrSessionNotFound
}

func (m *mockStore) FindActive(ctx context.Context, sessionID string) (*session.Session, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, sessionID)
	}
	return nil, session.ErrSessionNotFound
}

func (m *mockStore) Deactivate(ctx context.Context, sessionID string) error {
	if m.deactivateFunc != nil {
		return m.deactivateFunc(ctx, sessionID)
	}
	return nil
}

func (m *mockStore) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func protectedRouter(signer *token.Signer, store session.Store) *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireAuth(signer, store), func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": sess.Email})
	})
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	signer := token.NewSigner("test-secret", time.Hour)
	tokenString, err := signer.Issue("session-123", "user@example.com", "https://company.atlassian.net", 0)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	store := &mockStore{
		findActiveFunc: func(ctx context.Context, sessionID string) (*session.Session, error) {
			if sessionID != "session-123" {
				t.Errorf("Expected lookup for session-123, got %s", sessionID)
			}
			return &session.Session{
				ID:         sessionID,
				Email:      "user@example.com",
				JiraDomain: "https://company.atlassian.net",
				ExpiresAt:  time.Now().Add(time.Hour),
				Active:     true,
			}, nil
		},
	}

	r := protectedRouter(signer, store)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuth_NoToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	signer := token.NewSigner("test-secret", time.Hour)
	r := protectedRouter(signer, &mockStore{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Error("Expected WWW-Authenticate: Bearer header")
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	signer := token.NewSigner("test-secret", time.Hour)
	r := protectedRouter(signer, &mockStore{})

	headers := []string{
		"Bearer",
		"Bearer ",
		"Basic dXNlcjpwYXNz",
		"garbage",
	}

	for _, header := range headers {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Authorization %q: expected status 401, got %d", header, w.Code)
		}
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	signer := token.NewSigner("test-secret", time.Hour)
	tokenString, err := signer.Issue("session-123", "user@example.com", "https://company.atlassian.net", -time.Second)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	storeCalled := false
	store := &mockStore{
		findActiveFunc: func(ctx context.Context, sessionID string) (*session.Session, error) {
			storeCalled = true
			return nil, session.ErrSessionNotFound
		},
	}

	r := protectedRouter(signer, store)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	if storeCalled {
		t.Error("Expected expired token to be rejected before the store lookup")
	}
}

func TestRequireAuth_SessionNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	signer := token.NewSigner("test-secret", time.Hour)
	tokenString, err := signer.Issue("session-gone", "user@example.com", "https://company.atlassian.net", 0)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	r := protectedRouter(signer, &mockStore{})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 when the session is gone, got %d", w.Code)
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	otherSigner := token.NewSigner("other-secret", time.Hour)
	tokenString, err := otherSigner.Issue("session-123", "user@example.com", "https://company.atlassian.net", 0)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	signer := token.NewSigner("test-secret", time.Hour)
	r := protectedRouter(signer, &mockStore{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for a foreign signature, got %d", w.Code)
	}
}
