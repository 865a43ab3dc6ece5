package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"albumapi/apperr"
	"albumapi/authz"
	"albumapi/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func testUser() *models.User {
	return &models.User{ID: 42, Email: "user@example.com", Name: "Test User"}
}

func TestIssueAndVerify(t *testing.T) {
	token, err := IssueToken(testSecret, testUser())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	claims, err := VerifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.ID != 42 || claims.Email != "user@example.com" || claims.Role != RoleUser {
		t.Errorf("unexpected claims: %+v", claims)
	}
	validFor := time.Until(claims.ExpiresAt.Time)
	if validFor < TokenValidity-time.Minute || validFor > TokenValidity {
		t.Errorf("validity window is %v, want ~%v", validFor, TokenValidity)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _ := IssueToken(testSecret, testUser())
	if _, err := VerifyToken([]byte("other-secret"), token); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("got %v, want unauthenticated", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	claims := Claims{
		ID:    42,
		Email: "user@example.com",
		Role:  RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyToken(testSecret, token); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("expired token must fail verification, got %v", err)
	}
}

func TestVerifyRejectsUnsignedAlgorithm(t *testing.T) {
	claims := Claims{ID: 42, Role: RoleUser}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyToken(testSecret, token); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("alg=none token must fail verification, got %v", err)
	}
}

func TestTokenFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer header", "Bearer abc", "", "abc"},
		{"cookie", "", "xyz", "xyz"},
		{"header wins over cookie", "Bearer abc", "xyz", "abc"},
		{"malformed header falls back to cookie", "abc", "xyz", "xyz"},
		{"nothing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			if got := TokenFromRequest(c); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// Both transports must resolve through the same verification path.
func TestRouterAcceptsBothTransports(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token, _ := IssueToken(testSecret, testUser())

	for _, transport := range []string{"bearer", "cookie"} {
		t.Run(transport, func(t *testing.T) {
			engine := gin.New()
			router := &Router{Base: engine, Secret: testSecret}
			var gotID uint64
			router.GET("/probe", func(c *gin.Context, caller *authz.Caller) {
				gotID = caller.ID
				c.Status(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if transport == "bearer" {
				req.Header.Set("Authorization", "Bearer "+token)
			} else {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("status %d, body %s", w.Code, w.Body.String())
			}
			if gotID != 42 {
				t.Errorf("caller id = %d, want 42", gotID)
			}
		})
	}
}
