package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"careerhub/internal/auth"
	"careerhub/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:middleware_%d?mode=memory&cache=shared&_busy_timeout=5000", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestAuthService(t *testing.T) *auth.AuthService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	svc, err := auth.NewAuthService(privPEM, pubPEM, 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc
}

func newRouterWithProbe(svc *auth.AuthService, db *gorm.DB, required bool) *gin.Engine {
	router := gin.New()
	guard := RequireAuth(svc, db)
	if !required {
		guard = OptionalAuth(svc, db)
	}
	router.GET("/probe", guard, func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{
			"authenticated": ok,
			"userId":        identity.UserID,
			"role":          identity.Role,
		})
	})
	return router
}

func probe(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body["error"]
}

func TestRequireAuthFailureMessages(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t)
	router := newRouterWithProbe(svc, db, true)

	// 无令牌。
	w := probe(router, "")
	if w.Code != http.StatusUnauthorized || errorMessage(t, w) != "no token provided" {
		t.Fatalf("missing token: got %d %s", w.Code, w.Body.String())
	}
	// 非 Bearer 格式同样视为无令牌。
	w = probe(router, "Basic abc")
	if w.Code != http.StatusUnauthorized || errorMessage(t, w) != "no token provided" {
		t.Fatalf("non-bearer header: got %d %s", w.Code, w.Body.String())
	}

	// 令牌非法。
	w = probe(router, "Bearer not.a.jwt")
	if w.Code != http.StatusUnauthorized || errorMessage(t, w) != "token invalid" {
		t.Fatalf("garbage token: got %d %s", w.Code, w.Body.String())
	}

	// 刷新令牌不能当访问令牌用。
	pair, err := svc.GenerateTokenPair(1, false)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	w = probe(router, "Bearer "+pair.RefreshToken)
	if w.Code != http.StatusUnauthorized || errorMessage(t, w) != "token invalid" {
		t.Fatalf("refresh as access: got %d %s", w.Code, w.Body.String())
	}

	// 令牌有效但账号已不存在。
	w = probe(router, "Bearer "+pair.AccessToken)
	if w.Code != http.StatusUnauthorized || errorMessage(t, w) != "user not found" {
		t.Fatalf("missing account: got %d %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthInjectsIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t)
	user := database.User{Name: "Reader", Email: "reader@example.com", Role: database.RoleAdmin}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	router := newRouterWithProbe(svc, db, true)

	pair, err := svc.GenerateTokenPair(user.ID, false)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	w := probe(router, "Bearer "+pair.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["authenticated"] != true {
		t.Fatalf("identity must be injected: %v", body)
	}
	// 角色来自账号回查而非令牌。
	if body["role"] != database.RoleAdmin {
		t.Fatalf("expected role from account, got %v", body["role"])
	}
}

func TestOptionalAuthDegradesToAnonymous(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t)
	router := newRouterWithProbe(svc, db, false)

	for _, header := range []string{"", "Bearer not.a.jwt"} {
		w := probe(router, header)
		if w.Code != http.StatusOK {
			t.Fatalf("header %q: expected 200, got %d", header, w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["authenticated"] != false {
			t.Fatalf("header %q: must stay anonymous, got %v", header, body)
		}
	}
}
