package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"
)

func testKeyPair(t *testing.T) (privPEM, pubPEM []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	privPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return privPEM, pubPEM
}

func newTestService(t *testing.T, accessTTL, refreshTTL time.Duration) *AuthService {
	t.Helper()
	privPEM, pubPEM := testKeyPair(t)
	svc, err := NewAuthService(privPEM, pubPEM, accessTTL, refreshTTL)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 24*time.Hour)

	pair, err := svc.GenerateTokenPair(42, true)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("token pair must not be empty")
	}

	access, err := svc.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if access.UserID != 42 {
		t.Fatalf("expected user 42, got %d", access.UserID)
	}
	if access.TokenType != "access" {
		t.Fatalf("expected access token type, got %q", access.TokenType)
	}
	if !access.MustChangePassword {
		t.Fatal("must_change_password claim must survive the round trip")
	}

	refresh, err := svc.ValidateToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
	if refresh.TokenType != "refresh" {
		t.Fatalf("expected refresh token type, got %q", refresh.TokenType)
	}
	if refresh.ID == "" {
		t.Fatal("refresh token must carry a jti for the blacklist")
	}
	if refresh.MustChangePassword {
		t.Fatal("refresh token must not carry the password flag")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestService(t, -time.Minute, 24*time.Hour)

	pair, err := svc.GenerateTokenPair(1, false)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}
	if _, err := svc.ValidateToken(pair.AccessToken); err == nil {
		t.Fatal("expired token must not validate")
	}
}

func TestValidateTokenRejectsForeignKey(t *testing.T) {
	issuer := newTestService(t, 15*time.Minute, 24*time.Hour)
	verifier := newTestService(t, 15*time.Minute, 24*time.Hour)

	pair, err := issuer.GenerateTokenPair(1, false)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}
	if _, err := verifier.ValidateToken(pair.AccessToken); err == nil {
		t.Fatal("token signed with another key must not validate")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 24*time.Hour)

	if _, err := svc.ValidateToken(""); err == nil {
		t.Fatal("empty token must not validate")
	}
	if _, err := svc.ValidateToken("not.a.jwt"); err == nil {
		t.Fatal("malformed token must not validate")
	}
}

func TestNewAuthServiceRequiresKeys(t *testing.T) {
	privPEM, pubPEM := testKeyPair(t)

	if _, err := NewAuthService(nil, pubPEM, time.Minute, time.Hour); err == nil {
		t.Fatal("missing private key must fail")
	}
	if _, err := NewAuthService(privPEM, nil, time.Minute, time.Hour); err == nil {
		t.Fatal("missing public key must fail")
	}
	if _, err := NewAuthService([]byte("garbage"), pubPEM, time.Minute, time.Hour); err == nil {
		t.Fatal("unparseable private key must fail")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !CheckPasswordHash("s3cret-password", hash) {
		t.Fatal("correct password must match")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatal("wrong password must not match")
	}
}
